package handler

import (
	"github.com/gin-gonic/gin"

	notifapp "github.com/lockin/backend/internal/application/notification"
)

// NotificationHandler handles notification API endpoints
type NotificationHandler struct {
	BaseHandler
	notificationService *notifapp.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *notifapp.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// RegisterRoutes registers notification routes
func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.List)
		notifications.POST("", h.Create)
		notifications.GET("/:id", h.Get)
		notifications.POST("/:id/read", h.MarkRead)
		notifications.POST("/:id/accept", h.Accept)
		notifications.POST("/:id/decline", h.Decline)
	}
}

// List returns a page of the caller's notifications
func (h *NotificationHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user identity")
		return
	}

	var req notifapp.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.notificationService.List(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, page)
}

// Create stores a reminder or generic notification
func (h *NotificationHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user identity")
		return
	}

	var req notifapp.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	n, err := h.notificationService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, n)
}

// Get returns one notification
func (h *NotificationHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user identity")
		return
	}
	notificationID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid notification ID")
		return
	}

	n, err := h.notificationService.Get(c.Request.Context(), notificationID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, n)
}

// MarkRead marks a notification as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user identity")
		return
	}
	notificationID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid notification ID")
		return
	}

	n, err := h.notificationService.MarkRead(c.Request.Context(), notificationID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, n)
}

// Accept accepts a group invite
func (h *NotificationHandler) Accept(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user identity")
		return
	}
	notificationID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid notification ID")
		return
	}

	n, err := h.notificationService.Accept(c.Request.Context(), notificationID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, n)
}

// Decline declines a group invite
func (h *NotificationHandler) Decline(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user identity")
		return
	}
	notificationID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid notification ID")
		return
	}

	n, err := h.notificationService.Decline(c.Request.Context(), notificationID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, n)
}
