package service_test

import (
	"testing"

	"driveschool_backend/internal/model"
	"driveschool_backend/internal/repository"
	"driveschool_backend/internal/service"
	"driveschool_backend/internal/testutil"
	"driveschool_backend/internal/util"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type CourseServiceSuite struct {
	suite.Suite
	db  *gorm.DB
	svc *service.CourseService
}

func (s *CourseServiceSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.svc = service.NewCourseService(repository.NewCourseRepository(s.db))
}

func (s *CourseServiceSuite) createCourse(name string, lessons int, active bool) model.Course {
	course := model.Course{Name: name, LessonCount: lessons, Active: active}
	s.Require().NoError(s.db.Create(&course).Error)
	return course
}

func (s *CourseServiceSuite) TestListActiveHidesInactiveCourses() {
	s.createCourse("Beginner", 10, true)
	s.createCourse("Retired", 5, false)

	courses, err := s.svc.ListActive()
	s.Require().NoError(err)
	s.Require().Len(courses, 1)
	s.Equal("Beginner", courses[0].Name)
}

func (s *CourseServiceSuite) TestListActiveForStudentFlagsEnrolments() {
	beginner := s.createCourse("Beginner", 10, true)
	s.createCourse("Intensive", 20, true)

	_, err := s.svc.Enrol(beginner.ID, 1)
	s.Require().NoError(err)

	courses, err := s.svc.ListActiveForStudent(1)
	s.Require().NoError(err)
	s.Require().Len(courses, 2)

	flags := make(map[string]bool, len(courses))
	for _, c := range courses {
		flags[c.Name] = c.Enrolled
	}
	s.True(flags["Beginner"])
	s.False(flags["Intensive"])
}

func (s *CourseServiceSuite) TestEnrolGrantsFullLessonAllowance() {
	course := s.createCourse("Beginner", 10, true)

	enrolment, err := s.svc.Enrol(course.ID, 1)
	s.Require().NoError(err)
	s.Equal(10, enrolment.LessonsRemaining)
}

func (s *CourseServiceSuite) TestEnrolTwiceRejected() {
	course := s.createCourse("Beginner", 10, true)

	_, err := s.svc.Enrol(course.ID, 1)
	s.Require().NoError(err)

	_, err = s.svc.Enrol(course.ID, 1)
	s.ErrorIs(err, util.ErrAlreadyEnrolled)
}

func (s *CourseServiceSuite) TestEnrolOnInactiveCourseRejected() {
	course := s.createCourse("Retired", 5, false)

	_, err := s.svc.Enrol(course.ID, 1)
	s.ErrorIs(err, util.ErrCourseNotFound)
}

func (s *CourseServiceSuite) TestEnrolOnUnknownCourseRejected() {
	_, err := s.svc.Enrol(9999, 1)
	s.ErrorIs(err, util.ErrCourseNotFound)
}

func TestCourseServiceSuite(t *testing.T) {
	suite.Run(t, new(CourseServiceSuite))
}
