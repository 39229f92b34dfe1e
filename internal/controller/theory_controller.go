package controller

import (
	"driveschool_backend/internal/model"
	"driveschool_backend/internal/service"
	"driveschool_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type TheoryController struct {
	Service *service.TheoryService
}

func NewTheoryController(svc *service.TheoryService) *TheoryController {
	return &TheoryController{Service: svc}
}

// @Summary List theory categories with the student's progress
// @Tags theory
// @Produce json
// @Security ApiKeyAuth
// @Param userId query int false "Look at another student's progress (admin only)"
// @Success 200 {object} util.Response
// @Router /api/theory/categories [get]
func (c *TheoryController) GetCategories(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	userID := claims.UserID
	if idStr := ctx.Query("userId"); idStr != "" && claims.Role == model.Admin {
		userID = util.MustParseUint(idStr)
	}

	categories, err := c.Service.ListCategories(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, categories)
}

// @Summary Start a practice session
// @Description Draws a randomized set of questions matching the filters. "all" (or omitted) leaves a filter open.
// @Tags theory
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SessionRequest true "Session filters"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "Malformed category or difficulty filter"
// @Failure 404 {object} util.Response "No questions match the filters"
// @Router /api/theory/categories [post]
func (c *TheoryController) StartSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.Service.StartSession(claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNoQuestionsMatch):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrCategoryNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrInvalidDifficulty):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrInvalidCategoryRef):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, session)
}

// @Summary Submit one practice answer
// @Description Scores the answer server-side and updates question counters and the per-category progress rollup.
// @Tags theory
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.AnswerRequest true "Submitted answer"
// @Success 200 {object} util.Response
// @Router /api/theory/answers [post]
func (c *TheoryController) SubmitAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.SubmitAnswer(claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuestionNotFound):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrInvalidAnswerOption):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}
