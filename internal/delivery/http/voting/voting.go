package http_voting

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/justinhuang159/Grubble/internal/delivery/http/common"
	"github.com/justinhuang159/Grubble/internal/model"
	usecase_vote "github.com/justinhuang159/Grubble/internal/usecase/vote"
)

type Controller struct {
	usecase *usecase_vote.Usecase
	logger  *slog.Logger
}

func New(usecase *usecase_vote.Usecase) *Controller {
	return &Controller{
		usecase: usecase,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	sessions := router.Group("/sessions/:room_code")
	{
		sessions.GET("/restaurants/next", c.nextRestaurant)
		sessions.POST("/votes", c.vote)
	}
}

type RestaurantCardDTO struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	ImageURL    *string  `json:"image_url"`
	Address     *string  `json:"address"`
	Price       *string  `json:"price"`
	Rating      *float64 `json:"rating"`
	ReviewCount *int     `json:"review_count"`
}

func toCard(r *model.Restaurant) *RestaurantCardDTO {
	if r == nil {
		return nil
	}
	return &RestaurantCardDTO{
		ID:          r.ID,
		Name:        r.Name,
		ImageURL:    r.ImageURL,
		Address:     r.Address,
		Price:       r.Price,
		Rating:      r.Rating,
		ReviewCount: r.ReviewCount,
	}
}

type NextRestaurantResponseDTO struct {
	Restaurant *RestaurantCardDTO `json:"restaurant"`
}

func (c *Controller) nextRestaurant(ctx *gin.Context) {
	userName := ctx.Query("user_name")
	if userName == "" {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "user_name query parameter is required",
		})
		return
	}

	next, err := c.usecase.NextCandidate(ctx, ctx.Param("room_code"), userName)
	if err != nil {
		c.respondError(ctx, "failed to get next restaurant", err)
		return
	}

	ctx.JSON(http.StatusOK, NextRestaurantResponseDTO{Restaurant: toCard(next)})
}

type VoteRequestDTO struct {
	UserName     string `json:"user_name" binding:"required,max=64"`
	RestaurantID int64  `json:"restaurant_id" binding:"required"`
	Decision     string `json:"decision" binding:"required,oneof=yes no"`
}

type VoteResponseDTO struct {
	Duplicate             bool               `json:"duplicate"`
	Matched               bool               `json:"matched"`
	MatchedRestaurantID   *int64             `json:"matched_restaurant_id"`
	TotalParticipants     int                `json:"total_participants"`
	VotesForRestaurant    int                `json:"votes_submitted_for_restaurant"`
	YesVotesForRestaurant int                `json:"yes_votes_for_restaurant"`
	NextRestaurant        *RestaurantCardDTO `json:"next_restaurant"`
}

func (c *Controller) vote(ctx *gin.Context) {
	var req VoteRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	outcome, err := c.usecase.Submit(ctx, ctx.Param("room_code"), req.UserName, req.RestaurantID, model.Decision(req.Decision))
	if err != nil {
		c.respondError(ctx, "failed to submit vote", err)
		return
	}

	ctx.JSON(http.StatusOK, VoteResponseDTO{
		Duplicate:             outcome.Duplicate,
		Matched:               outcome.Matched,
		MatchedRestaurantID:   outcome.MatchedRestaurantID,
		TotalParticipants:     outcome.TotalParticipants,
		VotesForRestaurant:    outcome.VotesForRestaurant,
		YesVotesForRestaurant: outcome.YesVotesForRestaurant,
		NextRestaurant:        toCard(outcome.NextRestaurant),
	})
}

func (c *Controller) respondError(ctx *gin.Context, msg string, err error) {
	c.logger.Error(msg, slog.String("error", err.Error()))

	switch {
	case errors.Is(err, usecase_vote.ErrResourceNotFound):
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{Message: "not found"})
	case errors.Is(err, usecase_vote.ErrConflict):
		ctx.JSON(http.StatusConflict, http_common.ErrorResponse{Message: err.Error()})
	case errors.Is(err, usecase_vote.ErrValidation):
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
	}
}
