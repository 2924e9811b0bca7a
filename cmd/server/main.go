package main

import (
	"fmt"
	"html/template"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"aniverse/internal/db"
	"aniverse/internal/middleware"
	"aniverse/internal/router"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	db.Init()

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("aniverse_session", store))

	// Load Templates using Multitemplate to avoid collision and allow handler names
	r.HTMLRender = loadTemplates("./web/templates")

	// Static Assets
	r.Static("/static", "./web/static")

	// Middleware
	r.Use(middleware.LoadUser())

	// Routes
	router.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Aniverse server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	includes, err := filepath.Glob(templatesDir + "/includes/*.html")
	if err != nil {
		panic(err)
	}

	components, err := filepath.Glob(templatesDir + "/components/*.html")
	if err != nil {
		panic(err)
	}

	// Helper to assemble files
	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, components...)
		files = append(files, view)
		return files
	}

	// FuncMap
	funcMap := template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"add": func(a, b int) int {
			return a + b
		},
		"timeAgo": func(t interface{}) string {
			var timeVal time.Time
			switch v := t.(type) {
			case time.Time:
				timeVal = v
			default:
				return ""
			}

			duration := time.Since(timeVal)
			seconds := int(duration.Seconds())

			if seconds < 60 {
				return fmt.Sprintf("%d秒前", seconds)
			} else if seconds < 3600 {
				return fmt.Sprintf("%d分钟前", seconds/60)
			} else if seconds < 86400 {
				return fmt.Sprintf("%d小时前", seconds/3600)
			} else if seconds < 2592000 {
				return fmt.Sprintf("%d天前", seconds/86400)
			} else if seconds < 31536000 {
				return fmt.Sprintf("%d个月前", seconds/2592000)
			}
			return fmt.Sprintf("%d年前", seconds/31536000)
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
		"urlquery": func(s string) string {
			return url.QueryEscape(s)
		},
		"score": func(v float64) string {
			// 评分保留一位小数，0 显示为 "-"
			if v == 0 {
				return "-"
			}
			return fmt.Sprintf("%.1f", v)
		},
	}

	// Manual registration to ensure keys match handler expectation
	// Auth
	r.AddFromFilesFuncs("auth/login.html", funcMap, assemble(templatesDir+"/views/auth/login.html")...)
	r.AddFromFilesFuncs("auth/register.html", funcMap, assemble(templatesDir+"/views/auth/register.html")...)

	// Anime
	r.AddFromFilesFuncs("anime/list.html", funcMap, assemble(templatesDir+"/views/anime/list.html")...)
	r.AddFromFilesFuncs("anime/detail.html", funcMap, assemble(templatesDir+"/views/anime/detail.html")...)

	// Community
	r.AddFromFilesFuncs("community/subcommunities.html", funcMap, assemble(templatesDir+"/views/community/subcommunities.html")...)
	r.AddFromFilesFuncs("community/posts.html", funcMap, assemble(templatesDir+"/views/community/posts.html")...)
	r.AddFromFilesFuncs("community/post_detail.html", funcMap, assemble(templatesDir+"/views/community/post_detail.html")...)

	// Social
	r.AddFromFilesFuncs("social/search.html", funcMap, assemble(templatesDir+"/views/social/search.html")...)
	r.AddFromFilesFuncs("social/friends.html", funcMap, assemble(templatesDir+"/views/social/friends.html")...)
	r.AddFromFilesFuncs("social/blocked.html", funcMap, assemble(templatesDir+"/views/social/blocked.html")...)
	r.AddFromFilesFuncs("social/activity.html", funcMap, assemble(templatesDir+"/views/social/activity.html")...)
	r.AddFromFilesFuncs("social/messages.html", funcMap, assemble(templatesDir+"/views/social/messages.html")...)
	r.AddFromFilesFuncs("social/conversation.html", funcMap, assemble(templatesDir+"/views/social/conversation.html")...)

	// User
	r.AddFromFilesFuncs("user/public.html", funcMap, assemble(templatesDir+"/views/user/public.html")...)

	// Dashboard
	r.AddFromFilesFuncs("dashboard/overview.html", funcMap, assemble(templatesDir+"/views/dashboard/overview.html")...)
	r.AddFromFilesFuncs("dashboard/watchlist.html", funcMap, assemble(templatesDir+"/views/dashboard/watchlist.html")...)
	r.AddFromFilesFuncs("dashboard/settings.html", funcMap, assemble(templatesDir+"/views/dashboard/settings.html")...)

	// Notification
	r.AddFromFilesFuncs("notification/list.html", funcMap, assemble(templatesDir+"/views/notification/list.html")...)

	// Error
	r.AddFromFilesFuncs("error.html", funcMap, assemble(templatesDir+"/views/error.html")...)

	return r
}
