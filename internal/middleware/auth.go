package middleware

import (
	"net/http"

	"aniverse/internal/db"
	"aniverse/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"
const UnreadCountKey = "unread_count"
const UnreadDMCountKey = "unread_dm_count"

// AuthRequired ensures a user is logged in
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")
		if userID == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoadUser retrieves user from session and sets to context
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")

		if userID != nil {
			var user models.User
			result := db.DB.First(&user, userID)
			if result.Error == nil {
				c.Set(CheckUserKey, &user)

				// Fetch unread notification / DM counts for the navbar badges
				var count int64
				db.DB.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", user.ID, false).Count(&count)
				c.Set(UnreadCountKey, count)

				var dmCount int64
				db.DB.Model(&models.DirectMessage{}).Where("receiver_id = ? AND is_read = ?", user.ID, false).Count(&dmCount)
				c.Set(UnreadDMCountKey, dmCount)
			}
		}
		c.Next()
	}
}
