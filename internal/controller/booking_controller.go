package controller

import (
	"driveschool_backend/internal/model"
	"driveschool_backend/internal/service"
	"driveschool_backend/internal/util"
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	Bookings *service.BookingService
}

func NewBookingController(bookings *service.BookingService) *BookingController {
	return &BookingController{Bookings: bookings}
}

func parseDateRange(ctx *gin.Context) (from, to time.Time) {
	if v := ctx.Query("from"); v != "" {
		from, _ = time.Parse(util.DateFormat, v)
	}
	if v := ctx.Query("to"); v != "" {
		to, _ = time.Parse(util.DateFormat, v)
	}
	return
}

// @Summary Book a lesson
// @Tags bookings
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.BookingRequest true "Booking"
// @Success 201 {object} util.Response
// @Router /api/bookings [post]
func (c *BookingController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.BookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	booking, err := c.Bookings.Create(claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrBookingOverlap):
			util.Error(ctx, 409, err.Error())
		case errors.Is(err, util.ErrNotAnInstructor):
			util.BadRequest(ctx, err.Error())
		default:
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Created(ctx, booking)
}

// @Summary List own bookings
// @Tags bookings
// @Produce json
// @Security ApiKeyAuth
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Success 200 {object} util.Response
// @Router /api/bookings [get]
func (c *BookingController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	from, to := parseDateRange(ctx)

	var (
		bookings []model.Booking
		err      error
	)
	switch claims.Role {
	case model.Instructor:
		bookings, err = c.Bookings.ListForInstructor(claims.UserID, from, to)
	case model.Admin:
		bookings, err = c.Bookings.ListAll(from, to)
	default:
		bookings, err = c.Bookings.ListForStudent(claims.UserID, from, to)
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, bookings)
}

// @Summary Booking detail
// @Tags bookings
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} util.Response
// @Router /api/bookings/{id} [get]
func (c *BookingController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	booking, err := c.Bookings.Get(uint(id), claims)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrBookingNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, booking)
}

type statusRequest struct {
	Status model.BookingStatus `json:"status" binding:"required"`
}

// @Summary Change a booking's status
// @Description pending→confirmed/cancelled, confirmed→completed/cancelled. Students may only cancel their own bookings.
// @Tags bookings
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} util.Response
// @Router /api/bookings/{id}/status [patch]
func (c *BookingController) UpdateStatus(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req statusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	booking, err := c.Bookings.UpdateStatus(uint(id), claims, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrBookingNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrInvalidTransition):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, booking)
}
