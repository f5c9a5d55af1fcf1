package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	focusapp "github.com/lockin/backend/internal/application/focus"
)

// SessionHandler handles focus session API endpoints
type SessionHandler struct {
	BaseHandler
	sessionService *focusapp.SessionService
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessionService *focusapp.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// RegisterRoutes registers session routes
func (h *SessionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sessions := rg.Group("/sessions")
	{
		sessions.POST("", h.Create)
		sessions.GET("", h.ListMine)
		sessions.GET("/:id", h.Get)
		sessions.POST("/:id/status", h.UpdateStatus)
		sessions.POST("/:id/participants", h.EnsureParticipant)
		sessions.POST("/:id/logs", h.AddTimeLog)
	}

	rg.GET("/groups/:id/sessions", h.ListByGroup)
}

// Create creates a solo or group focus session
func (h *SessionHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user identity")
		return
	}

	var req focusapp.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	session, err := h.sessionService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, session)
}

// ListMine returns the caller's sessions, newest first
func (h *SessionHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user identity")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	sessions, err := h.sessionService.ListByUser(c.Request.Context(), userID, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sessions)
}

// Get returns a session with its participants
func (h *SessionHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user identity")
		return
	}
	sessionID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	session, err := h.sessionService.Get(c.Request.Context(), sessionID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// UpdateStatus moves a session through its lifecycle
func (h *SessionHandler) UpdateStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user identity")
		return
	}
	sessionID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	var req focusapp.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	session, err := h.sessionService.UpdateStatus(c.Request.Context(), sessionID, userID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// EnsureParticipant attaches the caller to a session, idempotently
func (h *SessionHandler) EnsureParticipant(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user identity")
		return
	}
	sessionID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	participant, err := h.sessionService.EnsureParticipant(c.Request.Context(), sessionID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, participant)
}

// ListByGroup returns all sessions of a group
func (h *SessionHandler) ListByGroup(c *gin.Context) {
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

	sessions, err := h.sessionService.ListByGroup(c.Request.Context(), groupID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sessions)
}

// AddTimeLog records a client-measured interval against a session
func (h *SessionHandler) AddTimeLog(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user identity")
		return
	}
	sessionID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	var req focusapp.AddTimeLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if _, err := h.sessionService.AddTimeLog(c.Request.Context(), userID, sessionID, &req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
