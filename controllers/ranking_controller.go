package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/momentum-app/momentum/services"
	"github.com/momentum-app/momentum/utils"
)

// RankingController exposes the total points ranking.
type RankingController struct {
	ranking *services.RankingService
}

// NewRankingController creates a new controller instance.
func NewRankingController(ranking *services.RankingService) *RankingController {
	return &RankingController{ranking: ranking}
}

// TotalRanking returns every author's point total with dense ranks. The
// table is recomputed from a snapshot on demand and cached briefly; any
// post or engagement write invalidates the cache.
func (r *RankingController) TotalRanking(ctx *gin.Context) {
	const cacheKey = "cache:ranking:total"
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	entries, err := r.ranking.Total(ctx.Request.Context())
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to compute ranking")
		return
	}

	payload := gin.H{"items": entries}
	wrapper := struct {
		Code    int         `json:"code"`
		Message string      `json:"message"`
		Data    interface{} `json:"data"`
	}{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(cacheKey, wrapper, 5*time.Minute)
	utils.Success(ctx, payload)
}
