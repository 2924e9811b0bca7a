package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"aniverse/internal/db"
	"aniverse/internal/middleware"
	"aniverse/internal/models"
	"aniverse/internal/services"
	"aniverse/internal/utils"

	"github.com/gin-gonic/gin"
)

type SocialHandler struct {
	friends  *services.FriendshipService
	messages *services.MessageService
	activity *services.ActivityService
}

func NewSocialHandler() *SocialHandler {
	notifier := services.NewNotificationService(db.DB)
	friends := services.NewFriendshipService(db.DB, notifier)
	return &SocialHandler{
		friends:  friends,
		messages: services.NewMessageService(db.DB),
		activity: services.NewActivityService(db.DB, friends),
	}
}

// SearchUsers 按用户名找人
func (h *SocialHandler) SearchUsers(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("q"))

	var users []models.User
	if keyword != "" {
		db.DB.Where("username LIKE ?", "%"+keyword+"%").Limit(30).Find(&users)
	}

	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	statuses := make(map[uint]string, len(users))
	for _, u := range users {
		if u.ID == user.ID {
			continue
		}
		if st, err := h.friends.Status(user.ID, u.ID); err == nil {
			statuses[u.ID] = st
		}
	}

	Render(c, http.StatusOK, "social/search.html", gin.H{
		"Title":    "找人",
		"Keyword":  keyword,
		"Users":    users,
		"Statuses": statuses,
	})
}

// FriendsPage 好友列表 + 待处理请求
func (h *SocialHandler) FriendsPage(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	friends, _ := h.friends.Friends(user.ID)
	incoming, _ := h.friends.PendingIncoming(user.ID)
	sent, _ := h.friends.PendingSent(user.ID)

	Render(c, http.StatusOK, "social/friends.html", gin.H{
		"Title":    "我的好友",
		"Friends":  friends,
		"Incoming": incoming,
		"Sent":     sent,
	})
}

// SendRequest 发好友请求
func (h *SocialHandler) SendRequest(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	targetID := utils.StringToUint(c.PostForm("user_id"))

	if err := h.friends.SendRequest(user.ID, targetID); err != nil {
		RenderError(c, statusFor(err), friendshipMsg(err))
		return
	}
	c.Redirect(http.StatusFound, "/social/friends")
}

// Accept 接受好友请求
func (h *SocialHandler) Accept(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	otherID := utils.StringToUint(c.PostForm("user_id"))

	if err := h.friends.Accept(user.ID, otherID); err != nil {
		RenderError(c, statusFor(err), friendshipMsg(err))
		return
	}
	c.Redirect(http.StatusFound, "/social/friends")
}

// Reject 拒绝好友请求
func (h *SocialHandler) Reject(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	otherID := utils.StringToUint(c.PostForm("user_id"))

	if err := h.friends.Reject(user.ID, otherID); err != nil {
		RenderError(c, statusFor(err), friendshipMsg(err))
		return
	}
	c.Redirect(http.StatusFound, "/social/friends")
}

// Remove 删除好友
func (h *SocialHandler) Remove(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	otherID := utils.StringToUint(c.PostForm("user_id"))

	if err := h.friends.Remove(user.ID, otherID); err != nil {
		RenderError(c, statusFor(err), friendshipMsg(err))
		return
	}
	c.Redirect(http.StatusFound, "/social/friends")
}

// Block 拉黑
func (h *SocialHandler) Block(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	targetID := utils.StringToUint(c.PostForm("user_id"))

	if err := h.friends.Block(user.ID, targetID); err != nil {
		RenderError(c, statusFor(err), friendshipMsg(err))
		return
	}
	c.Redirect(http.StatusFound, "/social/blocked")
}

// Unblock 解除拉黑，只有拉黑发起方能操作
func (h *SocialHandler) Unblock(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	otherID := utils.StringToUint(c.PostForm("user_id"))

	if err := h.friends.Unblock(user.ID, otherID); err != nil {
		RenderError(c, statusFor(err), friendshipMsg(err))
		return
	}
	c.Redirect(http.StatusFound, "/social/blocked")
}

// BlockedPage 黑名单
func (h *SocialHandler) BlockedPage(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	blocked, _ := h.friends.Blocked(user.ID)

	Render(c, http.StatusOK, "social/blocked.html", gin.H{
		"Title":   "黑名单",
		"Blocked": blocked,
	})
}

// ActivityFeed 好友动态：最近的打分和评测
func (h *SocialHandler) ActivityFeed(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	items, err := h.activity.FriendsFeed(user.ID, 50)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "动态加载失败")
		return
	}
	Render(c, http.StatusOK, "social/activity.html", gin.H{
		"Title": "好友动态",
		"Items": items,
	})
}

// MessagesHome 会话列表
func (h *SocialHandler) MessagesHome(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	previews, err := h.messages.Conversations(user.ID)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "私信加载失败")
		return
	}
	Render(c, http.StatusOK, "social/messages.html", gin.H{
		"Title":         "私信",
		"Conversations": previews,
	})
}

// Conversation 与某人的完整对话，打开即标记已读
func (h *SocialHandler) Conversation(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	otherID := utils.StringToUint(c.Param("id"))

	var other models.User
	if err := db.DB.First(&other, otherID).Error; err != nil {
		RenderError(c, http.StatusNotFound, "用户不存在")
		return
	}

	if err := h.messages.MarkConversationRead(user.ID, other.ID); err != nil {
		RenderError(c, http.StatusInternalServerError, "私信加载失败")
		return
	}
	msgs, err := h.messages.Conversation(user.ID, other.ID, 100)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "私信加载失败")
		return
	}

	Render(c, http.StatusOK, "social/conversation.html", gin.H{
		"Title":    "与 " + other.Username + " 的对话",
		"Other":    other,
		"Messages": msgs,
	})
}

// SendMessage 发私信
func (h *SocialHandler) SendMessage(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	receiverID := utils.StringToUint(c.Param("id"))
	content := c.PostForm("content")

	if _, err := h.messages.Send(user.ID, receiverID, content); err != nil {
		RenderError(c, statusFor(err), "发送失败")
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/social/messages/%d", receiverID))
}
