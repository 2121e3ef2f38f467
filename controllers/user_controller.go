package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/momentum-app/momentum/models"
	"github.com/momentum-app/momentum/utils"
)

// UserController handles the name-only identity endpoints.
type UserController struct {
	db *gorm.DB
}

// NewUserController creates a new controller instance.
func NewUserController(db *gorm.DB) *UserController {
	return &UserController{db: db}
}

// Login resolves a display name to a user, creating one on first sight.
// There are no passwords; the same name always maps to the same user.
func (u *UserController) Login(ctx *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid request payload")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		utils.Error(ctx, http.StatusBadRequest, 40011, "name cannot be empty")
		return
	}

	var user models.User
	if err := u.db.Where(models.User{Name: name}).FirstOrCreate(&user).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to login or create user")
		return
	}

	utils.Success(ctx, gin.H{"id": user.ID, "name": user.Name})
}

// GetUser returns one user's public profile.
func (u *UserController) GetUser(ctx *gin.Context) {
	var user models.User
	if err := u.db.First(&user, ctx.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to load user")
		return
	}
	utils.Success(ctx, gin.H{"user": user})
}
