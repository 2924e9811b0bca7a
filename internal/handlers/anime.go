package handlers

import (
	"fmt"
	"net/http"
	"time"

	"aniverse/internal/db"
	"aniverse/internal/middleware"
	"aniverse/internal/models"
	"aniverse/internal/services"
	"aniverse/internal/utils"

	"github.com/gin-gonic/gin"
)

type AnimeHandler struct {
	ratings   *services.RatingService
	reviews   *services.ReviewService
	votes     *services.VoteService
	watchlist *services.WatchlistService
}

func NewAnimeHandler() *AnimeHandler {
	ratings := services.NewRatingService(db.DB)
	return &AnimeHandler{
		ratings:   ratings,
		reviews:   services.NewReviewService(db.DB, ratings),
		votes:     services.NewVoteService(db.DB),
		watchlist: services.NewWatchlistService(db.DB),
	}
}

// List 番剧目录，支持 genre/tag/year/language 筛选
func (h *AnimeHandler) List(c *gin.Context) {
	genreID := utils.StringToUint(c.Query("genre"))
	tagID := utils.StringToUint(c.Query("tag"))
	year := utils.StringToInt(c.Query("year"))
	language := c.Query("language")

	// 无筛选的首页走缓存
	cacheKey := "anime:list:all"
	cacheable := genreID == 0 && tagID == 0 && year == 0 && language == ""
	if cacheable {
		if cached := utils.GetCache().Get(cacheKey); cached != nil {
			if hData, ok := cached.(gin.H); ok {
				Render(c, http.StatusOK, "anime/list.html", hData)
				return
			}
		}
	}

	query := db.DB.Preload("Genres").Preload("Tags").Model(&models.Anime{})
	if genreID != 0 {
		query = query.Joins("JOIN anime_genres ON anime_genres.anime_id = anime.id").
			Where("anime_genres.genre_id = ?", genreID)
	}
	if tagID != 0 {
		query = query.Joins("JOIN anime_tags ON anime_tags.anime_id = anime.id").
			Where("anime_tags.tag_id = ?", tagID)
	}
	if year != 0 {
		query = query.Where("release_year = ?", year)
	}
	if language != "" {
		query = query.Where("language = ?", language)
	}

	var animeList []models.Anime
	query.Order("title").Find(&animeList)

	var genres []models.Genre
	var tags []models.Tag
	db.DB.Order("name").Find(&genres)
	db.DB.Order("name").Find(&tags)

	data := gin.H{
		"Title":     "番剧目录",
		"AnimeList": animeList,
		"Genres":    genres,
		"Tags":      tags,
	}
	if cacheable {
		utils.GetCache().Set(cacheKey, data, 5*time.Minute)
	}
	Render(c, http.StatusOK, "anime/list.html", data)
}

// Detail 番剧详情页：条目信息、评测、当前用户的评分和追番状态
func (h *AnimeHandler) Detail(c *gin.Context) {
	animeID := utils.StringToUint(c.Param("id"))

	var anime models.Anime
	if err := db.DB.Preload("Genres").Preload("Tags").First(&anime, animeID).Error; err != nil {
		RenderError(c, http.StatusNotFound, "番剧不存在")
		return
	}

	reviews, _ := h.reviews.ForAnime(anime.ID)
	for i := range reviews {
		reviews[i].ContentHTML = utils.RenderMarkdown(reviews[i].Content)
	}

	data := gin.H{
		"Title":   anime.Title,
		"Anime":   anime,
		"Reviews": reviews,
	}

	if user, exists := c.Get(middleware.CheckUserKey); exists {
		currentUser := user.(*models.User)
		if rating, err := h.ratings.Get(currentUser.ID, anime.ID); err == nil && rating != nil {
			data["MyScore"] = rating.Score
		}
		if status, err := h.watchlist.Status(currentUser.ID, anime.ID); err == nil {
			data["MyWatchStatus"] = status
		}
	}

	Render(c, http.StatusOK, "anime/detail.html", data)
}

// Random 随机抽一部番
func (h *AnimeHandler) Random(c *gin.Context) {
	var anime models.Anime
	if err := db.DB.Order("RANDOM()").First(&anime).Error; err != nil {
		c.Redirect(http.StatusFound, "/anime")
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/anime/%d", anime.ID))
}

// Rate 提交评分（1-10，重复提交为更新）
func (h *AnimeHandler) Rate(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	animeID := utils.StringToUint(c.Param("id"))
	score := utils.StringToInt(c.PostForm("score"))

	if _, err := h.ratings.Submit(user.ID, animeID, score); err != nil {
		RenderError(c, statusFor(err), "评分失败：分数应在 1-10 之间")
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/anime/%d", animeID))
}

// Review 发布评测
func (h *AnimeHandler) Review(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	animeID := utils.StringToUint(c.Param("id"))
	content := c.PostForm("content")
	isSpoiler := c.PostForm("is_spoiler") != ""

	if _, err := h.reviews.Create(user.ID, animeID, content, isSpoiler); err != nil {
		RenderError(c, statusFor(err), "评测发布失败：内容不能为空")
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/anime/%d", animeID))
}

// VoteReview 给评测投票（赞/踩，重复同向为撤销）
func (h *AnimeHandler) VoteReview(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	reviewID := utils.StringToUint(c.Param("id"))
	polarity := c.PostForm("polarity")

	tally, resulting, err := h.votes.Apply(user.ID, reviewID, models.VoteKindReview, polarity)
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

// SetWatchStatus 更新追番状态
func (h *AnimeHandler) SetWatchStatus(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	animeID := utils.StringToUint(c.Param("id"))
	status := c.PostForm("status")

	if _, err := h.watchlist.Set(user.ID, animeID, status); err != nil {
		RenderError(c, statusFor(err), "追番状态更新失败")
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/anime/%d", animeID))
}

// RemoveFromWatchlist 从追番清单移除
func (h *AnimeHandler) RemoveFromWatchlist(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	animeID := utils.StringToUint(c.Param("id"))

	if err := h.watchlist.Remove(user.ID, animeID); err != nil {
		RenderError(c, http.StatusInternalServerError, "操作失败")
		return
	}
	c.Redirect(http.StatusFound, "/dashboard/watchlist")
}
