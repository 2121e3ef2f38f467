package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/momentum-app/momentum/models"
	"github.com/momentum-app/momentum/services"
	"github.com/momentum-app/momentum/utils"
)

// ChallengeController manages challenges, joins, and daily check-ins.
type ChallengeController struct {
	db      *gorm.DB
	tracker *services.StreakTracker
	clock   services.Clock
}

// NewChallengeController creates a new controller instance.
func NewChallengeController(db *gorm.DB, tracker *services.StreakTracker, clock services.Clock) *ChallengeController {
	return &ChallengeController{db: db, tracker: tracker, clock: clock}
}

// CreateChallenge registers a new challenge.
func (c *ChallengeController) CreateChallenge(ctx *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description" binding:"required"`
		Cadence     string `json:"cadence" binding:"required"`
		Type        string `json:"type"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "title, description and cadence are required")
		return
	}

	challenge := models.Challenge{
		Title:       utils.Sanitize(strings.TrimSpace(req.Title)),
		Description: utils.Sanitize(req.Description),
		Cadence:     strings.TrimSpace(req.Cadence),
		Type:        challengeType(req.Type),
	}
	if challenge.Title == "" {
		utils.Error(ctx, http.StatusBadRequest, 40041, "title cannot be empty")
		return
	}

	if err := c.db.Create(&challenge).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to create challenge")
		return
	}
	utils.Success(ctx, gin.H{"challenge": challenge})
}

// ListChallenges returns all challenges, newest first.
func (c *ChallengeController) ListChallenges(ctx *gin.Context) {
	var challenges []models.Challenge
	if err := c.db.Order("created_at DESC").Find(&challenges).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to list challenges")
		return
	}
	utils.Success(ctx, gin.H{"items": challenges})
}

// JoinChallenge creates the caller's membership with a zero streak. An
// unknown challenge id is created on the fly from the payload; the client
// ships a fixed catalogue of recommended challenges whose rows may not
// exist yet.
func (c *ChallengeController) JoinChallenge(ctx *gin.Context) {
	challengeID, ok := parseUintParam(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40042, "invalid challenge id")
		return
	}

	var req struct {
		UserID      uint   `json:"user_id" binding:"required"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Cadence     string `json:"cadence"`
		Type        string `json:"type"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40043, "user_id is required")
		return
	}

	var challenge models.Challenge
	err := c.db.First(&challenge, challengeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		challenge = models.Challenge{
			ID:          challengeID,
			Title:       defaultString(utils.Sanitize(strings.TrimSpace(req.Title)), "New Challenge"),
			Description: utils.Sanitize(req.Description),
			Cadence:     defaultString(strings.TrimSpace(req.Cadence), "Daily"),
			Type:        challengeType(req.Type),
		}
		if err := c.db.Create(&challenge).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to create challenge")
			return
		}
	} else if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50043, "failed to load challenge")
		return
	}

	membership := models.ChallengeMembership{UserID: req.UserID, ChallengeID: challenge.ID}
	if err := c.db.
		Where(models.ChallengeMembership{UserID: req.UserID, ChallengeID: challenge.ID}).
		FirstOrCreate(&membership).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50044, "failed to join challenge")
		return
	}

	utils.Success(ctx, gin.H{"membership": membership, "challenge": challenge})
}

// ListJoined returns the caller's memberships with their challenges and a
// computed checked_in_today flag.
func (c *ChallengeController) ListJoined(ctx *gin.Context) {
	userID, ok := parseUintParam(ctx.Query("user_id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40044, "user_id is required")
		return
	}

	var memberships []models.ChallengeMembership
	if err := c.db.Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50045, "failed to list joined challenges")
		return
	}

	var challengeIDs []uint
	for _, m := range memberships {
		challengeIDs = append(challengeIDs, m.ChallengeID)
	}
	challengeByID := make(map[uint]models.Challenge)
	if len(challengeIDs) > 0 {
		var challenges []models.Challenge
		if err := c.db.Find(&challenges, utils.UniqueUint(challengeIDs)).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50046, "failed to load challenges")
			return
		}
		for _, ch := range challenges {
			challengeByID[ch.ID] = ch
		}
	}

	now := c.clock.Now()
	items := make([]gin.H, 0, len(memberships))
	for i := range memberships {
		m := memberships[i]
		items = append(items, gin.H{
			"membership":       m,
			"challenge":        challengeByID[m.ChallengeID],
			"checked_in_today": c.tracker.CheckedInToday(&m, now),
		})
	}
	utils.Success(ctx, gin.H{"items": items})
}

// CheckIn records a daily check-in for the caller. A same-day duplicate is
// a successful no-op: accepted=false, streak untouched, no post emitted.
func (c *ChallengeController) CheckIn(ctx *gin.Context) {
	challengeID, ok := parseUintParam(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40045, "invalid challenge id")
		return
	}

	var req struct {
		UserID   uint   `json:"user_id" binding:"required"`
		Note     string `json:"note"`
		MediaURL string `json:"media_url"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40046, "user_id is required")
		return
	}

	note := utils.Sanitize(req.Note)
	result, err := c.tracker.CheckIn(ctx.Request.Context(), req.UserID, challengeID, note, req.MediaURL, c.clock.Now())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyNote):
			utils.Error(ctx, http.StatusBadRequest, 40047, "note is required")
		case errors.Is(err, services.ErrChallengeNotFound):
			utils.Error(ctx, http.StatusNotFound, 40440, "challenge not found")
		case errors.Is(err, services.ErrConflict):
			utils.Error(ctx, http.StatusConflict, 40940, "check-in conflicted, please retry")
		default:
			utils.Error(ctx, http.StatusInternalServerError, 50047, "failed to check in")
		}
		return
	}

	utils.ObserveCheckIn(result.Accepted)
	if result.Accepted {
		utils.InvalidateByPrefix("cache:posts:list:")
		utils.InvalidateByPrefix("cache:ranking:")
	}

	utils.Success(ctx, gin.H{
		"accepted":   result.Accepted,
		"membership": result.Membership,
		"post":       result.Post,
	})
}

func challengeType(t string) string {
	switch t {
	case models.ChallengeTypeSystem, models.ChallengeTypeFriend, models.ChallengeTypeRecommended:
		return t
	default:
		return models.ChallengeTypeRecommended
	}
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func parseUintParam(s string) (uint, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}
