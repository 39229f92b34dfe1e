package repository

import (
	"driveschool_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type BookingRepository struct {
	DB *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{DB: db}
}

func (r *BookingRepository) Create(booking *model.Booking) error {
	return r.DB.Create(booking).Error
}

func (r *BookingRepository) FindByID(id uint) (*model.Booking, error) {
	var booking model.Booking
	err := r.DB.Preload("Student").Preload("Instructor").First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) UpdateStatus(id uint, status model.BookingStatus) error {
	return r.DB.Model(&model.Booking{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// CountOverlapping counts pending/confirmed bookings for the instructor
// that intersect [start, end).
func (r *BookingRepository) CountOverlapping(instructorID uint, start, end time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Booking{}).
		Where("instructor_id = ?", instructorID).
		Where("status IN ?", []model.BookingStatus{model.BookingPending, model.BookingConfirmed}).
		Where("start_time < ? AND end_time > ?", end, start).
		Count(&count).Error
	return count, err
}

func (r *BookingRepository) ListByStudent(studentID uint, from, to time.Time) ([]model.Booking, error) {
	return r.list(r.DB.Where("student_id = ?", studentID), from, to)
}

func (r *BookingRepository) ListByInstructor(instructorID uint, from, to time.Time) ([]model.Booking, error) {
	return r.list(r.DB.Where("instructor_id = ?", instructorID), from, to)
}

func (r *BookingRepository) ListAll(from, to time.Time) ([]model.Booking, error) {
	return r.list(r.DB, from, to)
}

func (r *BookingRepository) list(query *gorm.DB, from, to time.Time) ([]model.Booking, error) {
	if !from.IsZero() {
		query = query.Where("start_time >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("start_time < ?", to)
	}

	var bookings []model.Booking
	err := query.Preload("Student").Preload("Instructor").
		Order("start_time ASC").
		Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepository) FindUpcomingByStudent(studentID uint, limit int) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.DB.Where("student_id = ? AND start_time >= ? AND status IN ?",
		studentID, time.Now(), []model.BookingStatus{model.BookingPending, model.BookingConfirmed}).
		Preload("Instructor").
		Order("start_time ASC").
		Limit(limit).
		Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepository) CountByStatus(status model.BookingStatus) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Booking{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *BookingRepository) CountByInstructorAndStatus(instructorID uint, status model.BookingStatus) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Booking{}).
		Where("instructor_id = ? AND status = ?", instructorID, status).
		Count(&count).Error
	return count, err
}

func (r *BookingRepository) CountStudentsOfInstructor(instructorID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Booking{}).
		Where("instructor_id = ?", instructorID).
		Distinct("student_id").
		Count(&count).Error
	return count, err
}
