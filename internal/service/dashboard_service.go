package service

import (
	"context"
	"driveschool_backend/internal/model"
	"driveschool_backend/internal/repository"
	"time"

	"github.com/gin-gonic/gin"
)

// DashboardService assembles the role-specific landing payloads.
type DashboardService struct {
	UserRepo     *repository.UserRepository
	BookingRepo  *repository.BookingRepository
	CourseRepo   *repository.CourseRepository
	ProgressRepo *repository.TheoryProgressRepository
	Messages     *MessageService
	TheoryStats  *TheoryStatsService
}

func NewDashboardService(
	userRepo *repository.UserRepository,
	bookingRepo *repository.BookingRepository,
	courseRepo *repository.CourseRepository,
	progressRepo *repository.TheoryProgressRepository,
	messages *MessageService,
	theoryStats *TheoryStatsService,
) *DashboardService {
	return &DashboardService{
		UserRepo:     userRepo,
		BookingRepo:  bookingRepo,
		CourseRepo:   courseRepo,
		ProgressRepo: progressRepo,
		Messages:     messages,
		TheoryStats:  theoryStats,
	}
}

func (s *DashboardService) StudentDashboard(ctx context.Context, userID uint) (gin.H, error) {
	upcoming, err := s.BookingRepo.FindUpcomingByStudent(userID, 5)
	if err != nil {
		return nil, err
	}
	practised, ready, err := s.ProgressRepo.ReadySummary(userID)
	if err != nil {
		return nil, err
	}
	unread, err := s.Messages.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	return gin.H{
		"upcomingLessons": upcoming,
		"theory": gin.H{
			"categoriesPractised": practised,
			"categoriesReady":     ready,
		},
		"unreadMessages": unread,
	}, nil
}

func (s *DashboardService) InstructorDashboard(instructorID uint) (gin.H, error) {
	// Midnight in the school's timezone, not a UTC truncation.
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todaysLessons, err := s.BookingRepo.ListByInstructor(instructorID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	students, err := s.BookingRepo.CountStudentsOfInstructor(instructorID)
	if err != nil {
		return nil, err
	}
	pending, err := s.BookingRepo.CountByInstructorAndStatus(instructorID, model.BookingPending)
	if err != nil {
		return nil, err
	}

	return gin.H{
		"todaysLessons":   todaysLessons,
		"studentCount":    students,
		"pendingBookings": pending,
	}, nil
}

func (s *DashboardService) AdminDashboard() (gin.H, error) {
	students, err := s.UserRepo.CountByRole(model.Student)
	if err != nil {
		return nil, err
	}
	instructors, err := s.UserRepo.CountByRole(model.Instructor)
	if err != nil {
		return nil, err
	}
	courses, err := s.CourseRepo.Count()
	if err != nil {
		return nil, err
	}
	confirmed, err := s.BookingRepo.CountByStatus(model.BookingConfirmed)
	if err != nil {
		return nil, err
	}
	pending, err := s.BookingRepo.CountByStatus(model.BookingPending)
	if err != nil {
		return nil, err
	}
	theory, err := s.TheoryStats.Stats()
	if err != nil {
		return nil, err
	}

	return gin.H{
		"students":          students,
		"instructors":       instructors,
		"courses":           courses,
		"confirmedBookings": confirmed,
		"pendingBookings":   pending,
		"theoryOverview":    theory.Overview,
	}, nil
}
