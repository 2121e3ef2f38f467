package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/momentum-app/momentum/models"
	"github.com/momentum-app/momentum/services"
	"github.com/momentum-app/momentum/utils"
)

// PostController serves the timeline: manual posts plus the engagement
// operations on any post.
type PostController struct {
	db      *gorm.DB
	store   services.Store
	emitter *services.TimelineEventEmitter
	ledger  *services.EngagementLedger
}

// NewPostController creates a new controller instance.
func NewPostController(db *gorm.DB, store services.Store, emitter *services.TimelineEventEmitter, ledger *services.EngagementLedger) *PostController {
	return &PostController{db: db, store: store, emitter: emitter, ledger: ledger}
}

// CreatePost publishes a manual knowledge post. At least one category is
// required; check-in posts are emitted by the streak tracker, never here.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req struct {
		UserID     uint     `json:"user_id" binding:"required"`
		Title      string   `json:"title"`
		Body       string   `json:"body" binding:"required"`
		Categories []string `json:"categories"`
		MediaURL   string   `json:"media_url"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	body := utils.Sanitize(req.Body)
	if body == "" {
		utils.Error(ctx, http.StatusBadRequest, 40021, "body cannot be empty")
		return
	}

	post, err := p.emitter.Emit(req.UserID, models.PostKindManual, utils.Sanitize(req.Title), body, req.Categories, req.MediaURL)
	if err != nil {
		if errors.Is(err, services.ErrCategoryRequired) {
			utils.Error(ctx, http.StatusBadRequest, 40022, "category is required")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to create post")
		return
	}

	if err := p.store.CreatePost(ctx.Request.Context(), post); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to create post")
		return
	}

	utils.InvalidateByPrefix("cache:posts:list:")
	utils.InvalidateByPrefix("cache:ranking:")

	utils.Success(ctx, gin.H{"post": postPayload(post)})
}

// ListPosts returns paginated posts including author information.
func (p *PostController) ListPosts(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	cacheKey := fmt.Sprintf("cache:posts:list:page=%d:size=%d", page, pageSize)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	var posts []models.Post
	var total int64
	query := p.db.Preload("Author").Preload("Comments.User").Order("created_at DESC, id DESC")
	if err := query.Model(&models.Post{}).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to count posts")
		return
	}
	if err := query.Offset((page - 1) * pageSize).Limit(pageSize).Find(&posts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to list posts")
		return
	}

	items := make([]gin.H, 0, len(posts))
	for i := range posts {
		items = append(items, postPayload(&posts[i]))
	}

	payload := gin.H{
		"items": items,
		"pagination": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": int((total + int64(pageSize) - 1) / int64(pageSize)),
		},
	}
	wrapper := struct {
		Code    int         `json:"code"`
		Message string      `json:"message"`
		Data    interface{} `json:"data"`
	}{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(cacheKey, wrapper, time.Hour)
	utils.Success(ctx, payload)
}

// GetPost returns a single post with comments.
func (p *PostController) GetPost(ctx *gin.Context) {
	postID := ctx.Param("id")

	if b, ok := utils.CacheGetBytes("cache:post:detail:" + postID); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	post, err := p.store.GetPost(ctx.Request.Context(), postID)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40420, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to load post")
		return
	}

	payload := gin.H{"post": postPayload(post)}
	wrapper := struct {
		Code    int         `json:"code"`
		Message string      `json:"message"`
		Data    interface{} `json:"data"`
	}{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON("cache:post:detail:"+postID, wrapper, time.Hour)
	utils.Success(ctx, payload)
}

// Upvote toggles the caller's upvote on a post.
func (p *PostController) Upvote(ctx *gin.Context) {
	p.toggle(ctx, p.ledger.Upvote)
}

// Downvote toggles the caller's downvote on a post.
func (p *PostController) Downvote(ctx *gin.Context) {
	p.toggle(ctx, p.ledger.Downvote)
}

// Bookmark toggles the caller's bookmark on a post.
func (p *PostController) Bookmark(ctx *gin.Context) {
	p.toggle(ctx, p.ledger.Bookmark)
}

func (p *PostController) toggle(ctx *gin.Context, op func(ctx context.Context, postID string, userID uint) (*models.Post, error)) {
	postID := ctx.Param("id")

	var req struct {
		UserID uint `json:"user_id" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40023, "user_id is required")
		return
	}

	post, err := op(ctx.Request.Context(), postID, req.UserID)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40421, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50025, "failed to update engagement")
		return
	}

	utils.InvalidateByPrefix("cache:post:detail:" + postID)
	utils.InvalidateByPrefix("cache:posts:list:")
	utils.InvalidateByPrefix("cache:ranking:")

	utils.Success(ctx, gin.H{"post": postPayload(post)})
}

// CreateComment appends a comment to a post.
func (p *PostController) CreateComment(ctx *gin.Context) {
	postID := ctx.Param("id")

	var req struct {
		UserID uint   `json:"user_id" binding:"required"`
		Text   string `json:"text"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40024, "user_id is required")
		return
	}

	comment, err := p.ledger.Comment(ctx.Request.Context(), postID, req.UserID, utils.Sanitize(req.Text))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyComment):
			utils.Error(ctx, http.StatusBadRequest, 40025, "text cannot be empty")
		case errors.Is(err, services.ErrPostNotFound):
			utils.Error(ctx, http.StatusNotFound, 40422, "post not found")
		default:
			utils.Error(ctx, http.StatusInternalServerError, 50026, "failed to add comment")
		}
		return
	}

	utils.InvalidateByPrefix("cache:post:detail:" + postID)

	utils.Success(ctx, gin.H{"comment": comment})
}

// postPayload shapes a post for responses: the raw record plus the counts
// clients render directly.
func postPayload(p *models.Post) gin.H {
	return gin.H{
		"post":      p,
		"upvotes":   p.Upvotes(),
		"downvotes": p.Downvotes(),
		"bookmarks": p.Bookmarks(),
	}
}

func parsePagination(pageStr, sizeStr string) (int, int) {
	page := 1
	pageSize := 10
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
		pageSize = s
	}
	return page, pageSize
}
