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

type UserHandler struct {
	watchlist *services.WatchlistService
}

func NewUserHandler() *UserHandler {
	return &UserHandler{
		watchlist: services.NewWatchlistService(db.DB),
	}
}

// Profile - 用户主页 /u/:id
func (h *UserHandler) Profile(c *gin.Context) {
	userID := c.Param("id")

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		RenderError(c, http.StatusNotFound, "用户不存在")
		return
	}

	// 获取 tab 参数，默认为 ratings
	tab := c.DefaultQuery("tab", "ratings")

	var ratings []models.Rating
	var reviews []models.Review
	var posts []models.Post

	if tab == "ratings" {
		db.DB.Preload("Anime").
			Where("user_id = ?", user.ID).
			Order("updated_at DESC").
			Limit(50).
			Find(&ratings)
	} else if tab == "reviews" {
		db.DB.Preload("Anime").
			Where("user_id = ?", user.ID).
			Order("created_at DESC").
			Limit(50).
			Find(&reviews)
	} else if tab == "posts" {
		db.DB.Preload("Subcommunity").
			Preload("User").
			Where("user_id = ?", user.ID).
			Order("created_at DESC").
			Limit(50).
			Find(&posts)
		fillCommentCounts(posts)
	}

	Render(c, http.StatusOK, "user/public.html", gin.H{
		"Title":     user.Username + " 的主页",
		"User":      user,
		"Ratings":   ratings,
		"Reviews":   reviews,
		"Posts":     posts,
		"ActiveTab": tab,
	})
}

// Dashboard - 个人后台概览
func (h *UserHandler) Dashboard(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	// 统计数据
	var ratingCount, reviewCount, postCount int64
	db.DB.Model(&models.Rating{}).Where("user_id = ?", user.ID).Count(&ratingCount)
	db.DB.Model(&models.Review{}).Where("user_id = ?", user.ID).Count(&reviewCount)
	db.DB.Model(&models.Post{}).Where("user_id = ?", user.ID).Count(&postCount)

	Render(c, http.StatusOK, "dashboard/overview.html", gin.H{
		"Title":       "个人后台",
		"User":        user,
		"RatingCount": ratingCount,
		"ReviewCount": reviewCount,
		"PostCount":   postCount,
	})
}

// Watchlist - 追番列表，可按状态过滤
func (h *UserHandler) Watchlist(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	status := c.Query("status")

	items, err := h.watchlist.List(user.ID, status)
	if err != nil {
		RenderError(c, statusFor(err), "追番列表加载失败")
		return
	}

	Render(c, http.StatusOK, "dashboard/watchlist.html", gin.H{
		"Title":  "我的追番",
		"Items":  items,
		"Status": status,
	})
}

// ShowSettings - 显示设置页面
func (h *UserHandler) ShowSettings(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	Render(c, http.StatusOK, "dashboard/settings.html", gin.H{
		"Title": "设置",
		"User":  user,
	})
}

// UpdateSettings - 更新设置
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	avatar := c.PostForm("avatar_url")
	bio := c.PostForm("bio")
	email := c.PostForm("email")
	oldPassword := c.PostForm("old_password")
	newPassword := c.PostForm("new_password")

	updates := make(map[string]interface{})

	if email != "" && email != user.Email {
		// 检查邮箱是否已被使用
		var existing models.User
		if err := db.DB.Where("email = ? AND id != ?", email, user.ID).First(&existing).Error; err == nil {
			Render(c, http.StatusBadRequest, "dashboard/settings.html", gin.H{
				"Error": "该邮箱已被使用",
				"User":  user,
			})
			return
		}
		updates["email"] = email
	}
	if avatar != "" {
		updates["avatar_url"] = avatar
	}
	if bio != user.Bio {
		updates["bio"] = bio
	}

	// 如果要修改密码
	if oldPassword != "" && newPassword != "" {
		if !utils.CheckPassword(oldPassword, user.Password) {
			Render(c, http.StatusBadRequest, "dashboard/settings.html", gin.H{
				"Error": "原密码错误",
				"User":  user,
			})
			return
		}
		if len(newPassword) < 6 {
			Render(c, http.StatusBadRequest, "dashboard/settings.html", gin.H{
				"Error": "新密码至少6位",
				"User":  user,
			})
			return
		}
		hash, err := utils.HashPassword(newPassword)
		if err != nil {
			Render(c, http.StatusInternalServerError, "dashboard/settings.html", gin.H{
				"Error": "系统错误",
				"User":  user,
			})
			return
		}
		updates["password"] = hash
	}

	if len(updates) > 0 {
		if err := db.DB.Model(user).Updates(updates).Error; err != nil {
			Render(c, http.StatusInternalServerError, "dashboard/settings.html", gin.H{
				"Error": "更新失败",
				"User":  user,
			})
			return
		}
	}

	c.Redirect(http.StatusFound, "/dashboard/settings?success=1")
}
