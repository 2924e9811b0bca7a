package router

import (
	"aniverse/internal/handlers"
	"aniverse/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	animeHandler := handlers.NewAnimeHandler()
	communityHandler := handlers.NewCommunityHandler()
	socialHandler := handlers.NewSocialHandler()
	userHandler := handlers.NewUserHandler()
	notificationHandler := handlers.NewNotificationHandler()

	// 公共路由 (Public Routes)
	r.GET("/", animeHandler.List)               // 首页 - 番剧目录
	r.GET("/anime", animeHandler.List)          // 番剧目录（带筛选）
	r.GET("/anime/random", animeHandler.Random) // 随机来一部
	r.GET("/anime/:id", animeHandler.Detail)    // 番剧详情页
	r.GET("/u/:id", userHandler.Profile)        // 用户主页

	r.GET("/community", communityHandler.ListSubcommunities)   // 子社区列表
	r.GET("/community/posts", communityHandler.ListPosts)      // 帖子列表
	r.GET("/community/posts/:id", communityHandler.PostDetail) // 帖子详情

	r.GET("/signup", authHandler.ShowRegister) // 注册页面
	r.POST("/signup", authHandler.Register)    // 提交注册
	r.GET("/login", authHandler.ShowLogin)     // 登录页面
	r.POST("/login", authHandler.Login)        // 提交登录
	r.GET("/logout", authHandler.Logout)       // 退出登录

	// 受保护路由 (Protected Routes)
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		// 番剧互动
		authorized.POST("/anime/:id/rate", animeHandler.Rate)                   // 打分
		authorized.POST("/anime/:id/review", animeHandler.Review)               // 写评测
		authorized.POST("/reviews/:id/vote", animeHandler.VoteReview)           // 评测投票
		authorized.POST("/anime/:id/watch", animeHandler.SetWatchStatus)        // 设置追番状态
		authorized.DELETE("/anime/:id/watch", animeHandler.RemoveFromWatchlist) // 移出追番列表

		// 社区
		authorized.POST("/community", communityHandler.CreateSubcommunity)              // 创建子社区
		authorized.POST("/community/posts", communityHandler.CreatePost)                // 发帖
		authorized.POST("/community/posts/:id/comment", communityHandler.CreateComment) // 发评论
		authorized.POST("/community/posts/:id/vote", communityHandler.VotePost)         // 帖子投票

		// 通知
		authorized.GET("/notifications", notificationHandler.List)              // 通知列表
		authorized.POST("/notifications/:id/read", notificationHandler.Read)    // 标记单条通知为已读
		authorized.POST("/notifications/read-all", notificationHandler.ReadAll) // 全部通知标记为已读
	}

	// 社交路由 (Social Routes)
	social := r.Group("/social")
	social.Use(middleware.AuthRequired())
	{
		social.GET("/search", socialHandler.SearchUsers)  // 找人
		social.GET("/friends", socialHandler.FriendsPage) // 好友列表 + 待处理请求
		social.POST("/friends/request", socialHandler.SendRequest)
		social.POST("/friends/accept", socialHandler.Accept)
		social.POST("/friends/reject", socialHandler.Reject)
		social.POST("/friends/remove", socialHandler.Remove)
		social.POST("/friends/block", socialHandler.Block)
		social.POST("/friends/unblock", socialHandler.Unblock)
		social.GET("/blocked", socialHandler.BlockedPage)   // 黑名单
		social.GET("/activity", socialHandler.ActivityFeed) // 好友动态

		social.GET("/messages", socialHandler.MessagesHome)     // 会话列表
		social.GET("/messages/:id", socialHandler.Conversation) // 对话详情
		social.POST("/messages/:id", socialHandler.SendMessage) // 发私信
	}

	// 仪表盘路由 (Dashboard Routes)
	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.AuthRequired())
	{
		dashboard.GET("", userHandler.Dashboard)                // 仪表盘概览
		dashboard.GET("/watchlist", userHandler.Watchlist)      // 我的追番
		dashboard.GET("/settings", userHandler.ShowSettings)    // 用户设置页面
		dashboard.POST("/settings", userHandler.UpdateSettings) // 提交用户设置更新
	}
}
