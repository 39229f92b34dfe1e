package controller

import (
	"driveschool_backend/internal/model"
	"driveschool_backend/internal/service"
	"driveschool_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SettingController struct {
	Settings *service.SettingService
}

func NewSettingController(settings *service.SettingService) *SettingController {
	return &SettingController{Settings: settings}
}

type settingUpdateRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
}

// @Summary List all settings (admin)
// @Tags settings
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/settings [get]
func (c *SettingController) List(ctx *gin.Context) {
	settings, err := c.Settings.All()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, settings)
}

// @Summary Update a setting (admin)
// @Tags settings
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body settingUpdateRequest true "Setting"
// @Success 200 {object} util.Response
// @Router /api/admin/settings [put]
func (c *SettingController) Update(ctx *gin.Context) {
	var req settingUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Settings.Update(ctx.Request.Context(), req.Key, req.Value); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

type maintenanceRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// @Summary Toggle maintenance mode (admin)
// @Tags settings
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body maintenanceRequest true "Flag"
// @Success 200 {object} util.Response
// @Router /api/admin/settings/maintenance [put]
func (c *SettingController) SetMaintenance(ctx *gin.Context) {
	var req maintenanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	value := "false"
	if *req.Enabled {
		value = "true"
	}

	if err := c.Settings.Update(ctx.Request.Context(), model.SettingMaintenanceMode, value); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"maintenance": value})
}
