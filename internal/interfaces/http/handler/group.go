package handler

import (
	"github.com/gin-gonic/gin"

	circleapp "github.com/lockin/backend/internal/application/circle"
)

// GroupHandler handles group-related API endpoints
type GroupHandler struct {
	BaseHandler
	groupService    *circleapp.GroupService
	progressService *circleapp.ProgressService
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groupService *circleapp.GroupService, progressService *circleapp.ProgressService) *GroupHandler {
	return &GroupHandler{
		groupService:    groupService,
		progressService: progressService,
	}
}

// RegisterRoutes registers group routes
func (h *GroupHandler) RegisterRoutes(rg *gin.RouterGroup) {
	groups := rg.Group("/groups")
	{
		groups.POST("", h.Create)
		groups.GET("", h.List)
		groups.GET("/:id", h.Get)
		groups.PATCH("/:id", h.Update)
		groups.POST("/:id/archive", h.Archive)
		groups.POST("/:id/invite", h.Invite)
		groups.GET("/:id/progress/current", h.Progress)
		groups.GET("/:id/members", h.ListMembers)
		groups.POST("/:id/members", h.AddMember)
		groups.PATCH("/:id/members/:user_id", h.UpdateMember)
		groups.DELETE("/:id/members/:user_id", h.RemoveMember)
	}
}

// Create creates a new group owned by the caller
func (h *GroupHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user identity")
		return
	}

	var req circleapp.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	group, err := h.groupService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, group)
}

// List returns the caller's groups, optionally filtered by status
func (h *GroupHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user identity")
		return
	}

	groups, err := h.groupService.List(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, groups)
}

// Get returns a group with its members
func (h *GroupHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user identity")
		return
	}
	groupID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid group ID")
		return
	}

	group, err := h.groupService.Get(c.Request.Context(), groupID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, group)
}

// ListMembers returns the group roster
func (h *GroupHandler) ListMembers(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user identity")
		return
	}
	groupID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid group ID")
		return
	}

	members, err := h.groupService.ListMembers(c.Request.Context(), groupID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, members)
}

// Update changes a group's name or description
func (h *GroupHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user identity")
		return
	}
	groupID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid group ID")
		return
	}

	var req circleapp.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	group, err := h.groupService.Update(c.Request.Context(), groupID, userID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, group)
}

// Archive force-archives a group
func (h *GroupHandler) Archive(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user identity")
		return
	}
	groupID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid group ID")
		return
	}

	group, err := h.groupService.Archive(c.Request.Context(), groupID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, group)
}

// Invite creates a group invite notification for another user
func (h *GroupHandler) Invite(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user identity")
		return
	}
	groupID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid group ID")
		return
	}

	var req circleapp.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.groupService.Invite(c.Request.Context(), groupID, userID, &req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Progress returns per-member and team progress for the current goal window
func (h *GroupHandler) Progress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user identity")
		return
	}
	groupID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid group ID")
		return
	}

	progress, err := h.progressService.ComputeProgress(c.Request.Context(), groupID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, progress)
}

// AddMember adds a user to the group directly
func (h *GroupHandler) AddMember(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user identity")
		return
	}
	groupID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid group ID")
		return
	}

	var req circleapp.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	member, err := h.groupService.AddMember(c.Request.Context(), groupID, userID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, member)
}

// UpdateMember changes a member's role or target override
func (h *GroupHandler) UpdateMember(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user identity")
		return
	}
	groupID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid group ID")
		return
	}
	targetUserID, err := parseIDParam(c, "user_id")
	if err != nil {
		h.BadRequest(c, "Invalid member user ID")
		return
	}

	var req circleapp.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	member, err := h.groupService.UpdateMember(c.Request.Context(), groupID, userID, targetUserID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, member)
}

// RemoveMember removes a member from the group (or lets a member leave)
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user identity")
		return
	}
	groupID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid group ID")
		return
	}
	targetUserID, err := parseIDParam(c, "user_id")
	if err != nil {
		h.BadRequest(c, "Invalid member user ID")
		return
	}

	if err := h.groupService.RemoveMember(c.Request.Context(), groupID, userID, targetUserID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
