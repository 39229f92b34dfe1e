package service_test

import (
	"testing"
	"time"

	"driveschool_backend/internal/model"
	"driveschool_backend/internal/repository"
	"driveschool_backend/internal/service"
	"driveschool_backend/internal/testutil"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type DashboardServiceSuite struct {
	suite.Suite
	db  *gorm.DB
	svc *service.DashboardService

	instructorA model.User
	instructorB model.User
	student     model.User
}

func (s *DashboardServiceSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())

	s.svc = service.NewDashboardService(
		repository.NewUserRepository(s.db),
		repository.NewBookingRepository(s.db),
		repository.NewCourseRepository(s.db),
		repository.NewTheoryProgressRepository(s.db),
		nil,
		nil,
	)

	s.instructorA = model.User{Name: "Ann", Email: "ann@example.com", Password: "x", Role: model.Instructor}
	s.Require().NoError(s.db.Create(&s.instructorA).Error)
	s.instructorB = model.User{Name: "Ben", Email: "ben@example.com", Password: "x", Role: model.Instructor}
	s.Require().NoError(s.db.Create(&s.instructorB).Error)
	s.student = model.User{Name: "Sam", Email: "sam2@example.com", Password: "x", Role: model.Student}
	s.Require().NoError(s.db.Create(&s.student).Error)
}

func (s *DashboardServiceSuite) addBooking(instructorID uint, start time.Time, status model.BookingStatus) {
	booking := model.Booking{
		StudentID:    s.student.ID,
		InstructorID: instructorID,
		StartTime:    start,
		EndTime:      start.Add(time.Hour),
		Status:       status,
	}
	s.Require().NoError(s.db.Create(&booking).Error)
}

func (s *DashboardServiceSuite) TestInstructorPendingCountIsScoped() {
	nextWeek := time.Now().AddDate(0, 0, 7)
	s.addBooking(s.instructorA.ID, nextWeek, model.BookingPending)
	s.addBooking(s.instructorA.ID, nextWeek.Add(2*time.Hour), model.BookingPending)
	s.addBooking(s.instructorA.ID, nextWeek.Add(4*time.Hour), model.BookingConfirmed)
	s.addBooking(s.instructorB.ID, nextWeek, model.BookingPending)
	s.addBooking(s.instructorB.ID, nextWeek.Add(2*time.Hour), model.BookingPending)
	s.addBooking(s.instructorB.ID, nextWeek.Add(4*time.Hour), model.BookingPending)

	payload, err := s.svc.InstructorDashboard(s.instructorA.ID)
	s.Require().NoError(err)
	s.Equal(int64(2), payload["pendingBookings"])

	payload, err = s.svc.InstructorDashboard(s.instructorB.ID)
	s.Require().NoError(err)
	s.Equal(int64(3), payload["pendingBookings"])
}

func (s *DashboardServiceSuite) TestInstructorTodaysLessonsUseLocalDay() {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	s.addBooking(s.instructorA.ID, dayStart.Add(23*time.Hour+30*time.Minute), model.BookingConfirmed)
	s.addBooking(s.instructorA.ID, dayStart.AddDate(0, 0, 1).Add(10*time.Hour), model.BookingConfirmed)
	s.addBooking(s.instructorB.ID, dayStart.Add(10*time.Hour), model.BookingConfirmed)

	payload, err := s.svc.InstructorDashboard(s.instructorA.ID)
	s.Require().NoError(err)

	lessons, ok := payload["todaysLessons"].([]model.Booking)
	s.Require().True(ok)
	s.Len(lessons, 1)
	s.Equal(s.instructorA.ID, lessons[0].InstructorID)
}

func TestDashboardServiceSuite(t *testing.T) {
	suite.Run(t, new(DashboardServiceSuite))
}
