package controller

import (
	"driveschool_backend/internal/service"
	"driveschool_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Dashboards *service.DashboardService
}

func NewDashboardController(dashboards *service.DashboardService) *DashboardController {
	return &DashboardController{Dashboards: dashboards}
}

// @Summary Student dashboard
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/dashboard/student [get]
func (c *DashboardController) Student(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	data, err := c.Dashboards.StudentDashboard(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, data)
}

// @Summary Instructor dashboard
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/dashboard/instructor [get]
func (c *DashboardController) Instructor(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	data, err := c.Dashboards.InstructorDashboard(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, data)
}

// @Summary Admin dashboard
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/dashboard [get]
func (c *DashboardController) Admin(ctx *gin.Context) {
	data, err := c.Dashboards.AdminDashboard()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, data)
}
