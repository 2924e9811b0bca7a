package handlers

import (
	"errors"
	"maps"
	"net/http"

	"aniverse/internal/middleware"
	"aniverse/internal/services"

	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables like 'current user'.
// obj 可能被调用方放进页面缓存跨请求复用，注入只发生在副本上。
func Render(c *gin.Context, code int, name string, obj gin.H) {
	data := gin.H{}
	if obj != nil {
		data = maps.Clone(obj)
	}

	// Inject Current User
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		data["CurrentUser"] = user
		if count, ok := c.Get(middleware.UnreadCountKey); ok {
			data["UnreadCount"] = int(count.(int64))
		} else {
			data["UnreadCount"] = 0
		}
		if count, ok := c.Get(middleware.UnreadDMCountKey); ok {
			data["UnreadDMCount"] = int(count.(int64))
		} else {
			data["UnreadDMCount"] = 0
		}
	}

	data["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, data)
}

// RenderError 渲染错误页
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}

// statusFor 把引擎错误映射到 HTTP 状态码
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// friendshipMsg 好友操作的精确提示，让前端能区分"已发过请求"和"已是好友"这类情况
func friendshipMsg(err error) string {
	switch {
	case errors.Is(err, services.ErrSelfAction):
		return "不能对自己执行该操作"
	case errors.Is(err, services.ErrRequestPending):
		return "好友请求已发送，等待对方处理"
	case errors.Is(err, services.ErrAlreadyFriends):
		return "你们已经是好友了"
	case errors.Is(err, services.ErrBlocked):
		return "当前关系已被拉黑，无法操作"
	case errors.Is(err, services.ErrNoPendingRequest):
		return "没有待处理的好友请求"
	case errors.Is(err, services.ErrNotFriends):
		return "你们还不是好友"
	case errors.Is(err, services.ErrNotBlocked):
		return "当前没有拉黑关系"
	case errors.Is(err, services.ErrNotBlocker):
		return "只有拉黑发起方可以解除拉黑"
	case errors.Is(err, services.ErrNotFound):
		return "用户不存在"
	default:
		return "操作失败，请稍后再试"
	}
}
