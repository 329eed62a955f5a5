package handlers

import (
	"context"
	"net/http"

	"github.com/geocoder89/fittrack/internal/domain/dashboard"
	"github.com/gin-gonic/gin"
)

type StatsService interface {
	Stats(ctx context.Context, userID string) (dashboard.Stats, error)
}

type DashboardHandler struct {
	svc StatsService
}

func NewDashboardHandler(svc StatsService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) Stats(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), storeTimeout)
	defer cancel()

	stats, err := h.svc.Stats(cctx, userID)
	if err != nil {
		RespondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, NewStatsView(stats))
}
