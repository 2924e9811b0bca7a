package handlers

import (
	"net/http"

	"aniverse/internal/db"
	"aniverse/internal/middleware"
	"aniverse/internal/models"
	"aniverse/internal/services"
	"aniverse/internal/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{
		notifications: services.NewNotificationService(db.DB),
	}
}

func (h *NotificationHandler) List(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	onlyUnread := c.Query("filter") == "unread"

	notifications, err := h.notifications.List(user.ID, onlyUnread, 50)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "通知加载失败")
		return
	}

	Render(c, http.StatusOK, "notification/list.html", gin.H{
		"Title":         "通知",
		"Notifications": notifications,
		"OnlyUnread":    onlyUnread,
		"Active":        "notifications",
	})
}

func (h *NotificationHandler) Read(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	id := utils.StringToUint(c.Param("id"))

	ok, err := h.notifications.MarkRead(id, user.ID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if !ok {
		// 不存在，或者不是本人的通知
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusOK)
}

func (h *NotificationHandler) ReadAll(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	if err := h.notifications.MarkAllRead(user.ID); err != nil {
		RenderError(c, http.StatusInternalServerError, "操作失败")
		return
	}
	c.Redirect(http.StatusFound, "/notifications")
}
