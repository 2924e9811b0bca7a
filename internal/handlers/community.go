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

type CommunityHandler struct {
	comments *services.CommentService
	votes    *services.VoteService
}

func NewCommunityHandler() *CommunityHandler {
	notifier := services.NewNotificationService(db.DB)
	return &CommunityHandler{
		comments: services.NewCommentService(db.DB, notifier),
		votes:    services.NewVoteService(db.DB),
	}
}

// fillCommentCounts 批量填充帖子的评论数量
func fillCommentCounts(posts []models.Post) {
	if len(posts) == 0 {
		return
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type CountResult struct {
		PostID uint
		Count  int
	}
	var results []CountResult
	db.DB.Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.PostID] = r.Count
	}
	for i := range posts {
		posts[i].CommentCount = countMap[posts[i].ID]
	}
}

// renderCommentHTML 逐层把楼层树里的 Markdown 渲染成净化后的 HTML
func renderCommentHTML(comments []*models.Comment) {
	for _, comment := range comments {
		comment.ContentHTML = utils.RenderMarkdown(comment.Content)
		renderCommentHTML(comment.Replies)
	}
}

// ListSubcommunities 全部子社区
func (h *CommunityHandler) ListSubcommunities(c *gin.Context) {
	var subs []models.Subcommunity
	db.DB.Preload("Creator").Order("created_at DESC").Find(&subs)
	Render(c, http.StatusOK, "community/subcommunities.html", gin.H{
		"Title":          "子社区",
		"Subcommunities": subs,
	})
}

// CreateSubcommunity 创建子社区
func (h *CommunityHandler) CreateSubcommunity(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	name := strings.TrimSpace(c.PostForm("name"))
	description := c.PostForm("description")

	if name == "" {
		RenderError(c, http.StatusBadRequest, "社区名称不能为空")
		return
	}

	sub := models.Subcommunity{
		Name:        name,
		Description: description,
		CreatorID:   user.ID,
	}
	if err := db.DB.Create(&sub).Error; err != nil {
		// unique 冲突：重名社区
		RenderError(c, http.StatusBadRequest, "同名社区已存在")
		return
	}
	c.Redirect(http.StatusFound, "/community")
}

// ListPosts 帖子列表（全站或按子社区），分页
func (h *CommunityHandler) ListPosts(c *gin.Context) {
	page := utils.StringToInt(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage := 20

	query := db.DB.Preload("User").Preload("Subcommunity").Model(&models.Post{})

	subID := utils.StringToUint(c.Query("sub"))
	if subID != 0 {
		query = query.Where("subcommunity_id = ?", subID)
	}

	var posts []models.Post
	query.Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&posts)
	fillCommentCounts(posts)

	Render(c, http.StatusOK, "community/posts.html", gin.H{
		"Title": "社区",
		"Posts": posts,
		"Page":  page,
	})
}

// CreatePost 发帖
func (h *CommunityHandler) CreatePost(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	title := strings.TrimSpace(c.PostForm("title"))
	content := c.PostForm("content")
	postType := c.DefaultPostForm("post_type", models.PostTypeDiscussion)

	if title == "" {
		RenderError(c, http.StatusBadRequest, "标题不能为空")
		return
	}
	if postType != models.PostTypeDiscussion && postType != models.PostTypeMeme && postType != models.PostTypeTheory {
		postType = models.PostTypeDiscussion
	}

	post := models.Post{
		UserID:   user.ID,
		Title:    title,
		Content:  content,
		PostType: postType,
	}
	if subID := utils.StringToUint(c.PostForm("subcommunity_id")); subID != 0 {
		post.SubcommunityID = &subID
	}

	if err := db.DB.Create(&post).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "发布失败，请稍后再试")
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/community/posts/%d", post.ID))
}

// PostDetail 帖子详情：正文 + 楼层树 + 当前用户的投票方向
func (h *CommunityHandler) PostDetail(c *gin.Context) {
	postID := utils.StringToUint(c.Param("id"))

	var post models.Post
	if err := db.DB.Preload("User").Preload("Subcommunity").First(&post, postID).Error; err != nil {
		RenderError(c, http.StatusNotFound, "帖子不存在")
		return
	}

	thread, err := h.comments.Thread(post.ID)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "评论加载失败")
		return
	}
	renderCommentHTML(thread)
	count, _ := h.comments.Count(post.ID)
	post.CommentCount = int(count)

	data := gin.H{
		"Title":       post.Title,
		"Post":        post,
		"PostContent": utils.RenderMarkdown(post.Content),
		"Comments":    thread,
	}
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		currentUser := user.(*models.User)
		if polarity, err := h.votes.UserPolarity(currentUser.ID, post.ID, models.VoteKindPost); err == nil {
			data["MyPolarity"] = polarity
		}
	}

	Render(c, http.StatusOK, "community/post_detail.html", data)
}

// CreateComment 发评论/楼中楼回复
func (h *CommunityHandler) CreateComment(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	postID := utils.StringToUint(c.Param("id"))
	content := c.PostForm("content")

	var parentID *uint
	if pid := utils.StringToUint(c.PostForm("parent_id")); pid != 0 {
		parentID = &pid
	}

	commentID, err := h.comments.Create(user.ID, postID, content, parentID)
	if err != nil {
		RenderError(c, statusFor(err), "评论发布失败")
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/community/posts/%d#comment-%d", postID, commentID))
}

// VotePost 给帖子投票
func (h *CommunityHandler) VotePost(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	postID := utils.StringToUint(c.Param("id"))
	polarity := c.PostForm("polarity")

	tally, resulting, err := h.votes.Apply(user.ID, postID, models.VoteKindPost, polarity)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": "投票失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"upvotes":   tally.Upvotes,
		"downvotes": tally.Downvotes,
		"polarity":  resulting,
	})
}
