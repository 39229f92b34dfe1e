package service

import (
	"driveschool_backend/internal/model"
	"driveschool_backend/internal/repository"
	"driveschool_backend/internal/util"
	"driveschool_backend/pkg/monitoring"
	"errors"
	"time"

	"gorm.io/gorm"
)

type BookingService struct {
	BookingRepo *repository.BookingRepository
	UserRepo    *repository.UserRepository
	Email       *EmailService
}

func NewBookingService(bookingRepo *repository.BookingRepository, userRepo *repository.UserRepository, email *EmailService) *BookingService {
	return &BookingService{
		BookingRepo: bookingRepo,
		UserRepo:    userRepo,
		Email:       email,
	}
}

type BookingRequest struct {
	InstructorID   uint      `json:"instructorId" binding:"required"`
	CourseID       uint      `json:"courseId"`
	StartTime      time.Time `json:"startTime" binding:"required"`
	EndTime        time.Time `json:"endTime" binding:"required"`
	PickupLocation string    `json:"pickupLocation"`
	Notes          string    `json:"notes"`
}

// Create books a lesson for the student. The slot must be in the future
// and must not overlap a live booking for the same instructor.
func (s *BookingService) Create(studentID uint, req BookingRequest) (*model.Booking, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, errors.New("end time must be after start time")
	}
	if req.StartTime.Before(time.Now()) {
		return nil, errors.New("start time must be in the future")
	}

	instructor, err := s.UserRepo.FindByID(req.InstructorID)
	if err != nil || instructor.Role != model.Instructor {
		return nil, util.ErrNotAnInstructor
	}

	overlapping, err := s.BookingRepo.CountOverlapping(req.InstructorID, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if overlapping > 0 {
		return nil, util.ErrBookingOverlap
	}

	booking := &model.Booking{
		StudentID:      studentID,
		InstructorID:   req.InstructorID,
		CourseID:       req.CourseID,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		PickupLocation: req.PickupLocation,
		Notes:          req.Notes,
		Status:         model.BookingPending,
	}
	if err := s.BookingRepo.Create(booking); err != nil {
		return nil, err
	}

	monitoring.BookingCounter.WithLabelValues(string(model.BookingPending)).Inc()
	s.Email.SendBookingRequested(instructor.Email, booking)

	return s.BookingRepo.FindByID(booking.ID)
}

// validTransitions: completed and cancelled are terminal.
var validTransitions = map[model.BookingStatus][]model.BookingStatus{
	model.BookingPending:   {model.BookingConfirmed, model.BookingCancelled},
	model.BookingConfirmed: {model.BookingCompleted, model.BookingCancelled},
}

func canTransition(from, to model.BookingStatus) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// UpdateStatus applies a transition on behalf of the acting user.
// Students may only cancel their own bookings; instructors confirm,
// complete or cancel their own; admins may do anything.
func (s *BookingService) UpdateStatus(bookingID uint, actor *util.Claims, status model.BookingStatus) (*model.Booking, error) {
	booking, err := s.BookingRepo.FindByID(bookingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrBookingNotFound
		}
		return nil, err
	}

	switch actor.Role {
	case model.Admin:
	case model.Instructor:
		if booking.InstructorID != actor.UserID {
			return nil, util.ErrPermissionDenied
		}
	case model.Student:
		if booking.StudentID != actor.UserID || status != model.BookingCancelled {
			return nil, util.ErrPermissionDenied
		}
	default:
		return nil, util.ErrPermissionDenied
	}

	if !canTransition(booking.Status, status) {
		return nil, util.ErrInvalidTransition
	}

	if err := s.BookingRepo.UpdateStatus(bookingID, status); err != nil {
		return nil, err
	}

	monitoring.BookingCounter.WithLabelValues(string(status)).Inc()

	if status == model.BookingConfirmed {
		s.Email.SendBookingConfirmed(booking.Student.Email, booking)
	}

	return s.BookingRepo.FindByID(bookingID)
}

func (s *BookingService) ListForStudent(studentID uint, from, to time.Time) ([]model.Booking, error) {
	return s.BookingRepo.ListByStudent(studentID, from, to)
}

func (s *BookingService) ListForInstructor(instructorID uint, from, to time.Time) ([]model.Booking, error) {
	return s.BookingRepo.ListByInstructor(instructorID, from, to)
}

func (s *BookingService) ListAll(from, to time.Time) ([]model.Booking, error) {
	return s.BookingRepo.ListAll(from, to)
}

func (s *BookingService) Get(bookingID uint, actor *util.Claims) (*model.Booking, error) {
	booking, err := s.BookingRepo.FindByID(bookingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrBookingNotFound
		}
		return nil, err
	}
	if actor.Role != model.Admin && booking.StudentID != actor.UserID && booking.InstructorID != actor.UserID {
		return nil, util.ErrPermissionDenied
	}
	return booking, nil
}
