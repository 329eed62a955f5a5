package handlers

import (
	"context"

	"github.com/geocoder89/fittrack/internal/domain/nutrition"
	"github.com/gin-gonic/gin"
)

type FoodSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]nutrition.Food, error)
}

type FoodsHandler struct {
	svc FoodSearcher
}

func NewFoodsHandler(svc FoodSearcher) *FoodsHandler {
	return &FoodsHandler{svc: svc}
}

// Limit is a pointer so an explicit limit=0 is validated rather than
// mistaken for an absent parameter.
type foodSearchQuery struct {
	Search string `form:"search"`
	Limit  *int   `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (h *FoodsHandler) Search(ctx *gin.Context) {
	var q foodSearchQuery

	if !BindQuery(ctx, &q) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), storeTimeout)
	defer cancel()

	limit := 0 // service default
	if q.Limit != nil {
		limit = *q.Limit
	}

	foods, err := h.svc.Search(cctx, q.Search, limit)
	if err != nil {
		RespondServiceError(ctx, err)
		return
	}

	respondCacheable(ctx, cachePublic, mapViews(foods, NewFoodView))
}
