package controller

import (
	"driveschool_backend/internal/service"
	"driveschool_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type TheoryAdminController struct {
	Admin *service.TheoryAdminService
	Stats *service.TheoryStatsService
}

func NewTheoryAdminController(admin *service.TheoryAdminService, stats *service.TheoryStatsService) *TheoryAdminController {
	return &TheoryAdminController{Admin: admin, Stats: stats}
}

// @Summary Theory-bank statistics
// @Tags theory-admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/theory/stats [get]
func (c *TheoryAdminController) GetStats(ctx *gin.Context) {
	stats, err := c.Stats.Stats()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// @Summary Create a theory question
// @Tags theory-admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuestionRequest true "Question"
// @Success 201 {object} util.Response
// @Router /api/admin/theory/questions [post]
func (c *TheoryAdminController) CreateQuestion(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Admin.CreateQuestion(req)
	if err != nil {
		if errors.Is(err, util.ErrCategoryNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Created(ctx, question)
}

// @Summary Update a theory question
// @Tags theory-admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Question ID"
// @Param body body service.QuestionRequest true "Question"
// @Success 200 {object} util.Response
// @Router /api/admin/theory/questions/{id} [put]
func (c *TheoryAdminController) UpdateQuestion(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Admin.UpdateQuestion(uint(id), req)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Success(ctx, question)
}

// @Summary List theory questions
// @Tags theory-admin
// @Produce json
// @Security ApiKeyAuth
// @Param categoryId query int false "Category filter"
// @Param difficulty query string false "Difficulty filter"
// @Param activeOnly query bool false "Active questions only"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20)"
// @Success 200 {object} util.Response
// @Router /api/admin/theory/questions [get]
func (c *TheoryAdminController) ListQuestions(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	categoryID := util.MustParseUint(ctx.Query("categoryId"))
	difficulty := ctx.Query("difficulty")
	activeOnly := ctx.Query("activeOnly") == "true"

	questions, total, err := c.Admin.ListQuestions(categoryID, difficulty, activeOnly, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  questions,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

type activeRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// @Summary Toggle a question's active flag
// @Tags theory-admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Question ID"
// @Success 200 {object} util.Response
// @Router /api/admin/theory/questions/{id}/active [patch]
func (c *TheoryAdminController) SetQuestionActive(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req activeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Admin.SetQuestionActive(uint(id), *req.Active); err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}

// @Summary Toggle a category's active flag
// @Tags theory-admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Category ID"
// @Success 200 {object} util.Response
// @Router /api/admin/theory/categories/{id}/active [patch]
func (c *TheoryAdminController) SetCategoryActive(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req activeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Admin.SetCategoryActive(uint(id), *req.Active); err != nil {
		if errors.Is(err, util.ErrCategoryNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}

// @Summary List all categories, including inactive
// @Tags theory-admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/theory/categories [get]
func (c *TheoryAdminController) ListCategories(ctx *gin.Context) {
	categories, err := c.Admin.ListCategories()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, categories)
}

// @Summary Upload a question image
// @Tags theory-admin
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Question ID"
// @Param file formData file true "Image file"
// @Success 200 {object} util.Response
// @Router /api/admin/theory/questions/{id}/image [post]
func (c *TheoryAdminController) UploadQuestionImage(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	question, err := c.Admin.AttachQuestionImage(ctx.Request.Context(), uint(id), file.Filename, src, file.Size, contentType)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, question)
}
