package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/momentum-app/momentum/models"
	"github.com/momentum-app/momentum/utils"
)

// StatsController provides aggregate statistics such as counts per entity.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns aggregate statistics for the app.
func (s *StatsController) GetStats(ctx *gin.Context) {
	var userCount int64
	var postCount int64
	var commentCount int64
	var checkInCount int64

	if err := s.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		// Fallback to 0 instead of failing the whole endpoint
		userCount = 0
	}
	if err := s.db.Model(&models.Post{}).Count(&postCount).Error; err != nil {
		postCount = 0
	}
	if err := s.db.Model(&models.Comment{}).Count(&commentCount).Error; err != nil {
		commentCount = 0
	}
	if err := s.db.Model(&models.Post{}).Where("kind = ?", models.PostKindCheckIn).Count(&checkInCount).Error; err != nil {
		checkInCount = 0
	}

	utils.Success(ctx, gin.H{
		"user_count":     userCount,
		"post_count":     postCount,
		"comment_count":  commentCount,
		"check_in_count": checkInCount,
	})
}
