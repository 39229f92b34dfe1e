package service

import (
	"driveschool_backend/internal/model"
	"driveschool_backend/internal/repository"
	"driveschool_backend/internal/util"

	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo *repository.CourseRepository
}

func NewCourseService(courseRepo *repository.CourseRepository) *CourseService {
	return &CourseService{CourseRepo: courseRepo}
}

func (s *CourseService) ListActive() ([]model.Course, error) {
	return s.CourseRepo.FindActive()
}

func (s *CourseService) ListAll() ([]model.Course, error) {
	return s.CourseRepo.FindAll()
}

// ListActiveForStudent is the catalog view for a signed-in student,
// with each course flagged when they already hold an enrolment.
func (s *CourseService) ListActiveForStudent(studentID uint) ([]model.CourseWithEnrolment, error) {
	courses, err := s.CourseRepo.FindActive()
	if err != nil {
		return nil, err
	}
	enrolments, err := s.CourseRepo.FindEnrolmentsByStudent(studentID)
	if err != nil {
		return nil, err
	}

	enrolled := make(map[uint]bool, len(enrolments))
	for _, e := range enrolments {
		enrolled[e.CourseID] = true
	}

	result := make([]model.CourseWithEnrolment, 0, len(courses))
	for _, course := range courses {
		result = append(result, model.CourseWithEnrolment{
			Course:   course,
			Enrolled: enrolled[course.ID],
		})
	}
	return result, nil
}

func (s *CourseService) Get(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Create(course *model.Course) error {
	return s.CourseRepo.Create(course)
}

func (s *CourseService) Update(course *model.Course) error {
	if _, err := s.Get(course.ID); err != nil {
		return err
	}
	return s.CourseRepo.Update(course)
}

func (s *CourseService) SetActive(id uint, active bool) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.CourseRepo.SetActive(id, active)
}

// Enrol signs a student up to an active course, starting them with the
// course's full lesson allowance.
func (s *CourseService) Enrol(courseID, studentID uint) (*model.CourseEnrolment, error) {
	course, err := s.Get(courseID)
	if err != nil {
		return nil, err
	}
	if !course.Active {
		return nil, util.ErrCourseNotFound
	}

	if _, err := s.CourseRepo.FindEnrolment(courseID, studentID); err == nil {
		return nil, util.ErrAlreadyEnrolled
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	enrolment := &model.CourseEnrolment{
		CourseID:         courseID,
		StudentID:        studentID,
		LessonsRemaining: course.LessonCount,
	}
	if err := s.CourseRepo.CreateEnrolment(enrolment); err != nil {
		return nil, err
	}
	return enrolment, nil
}

func (s *CourseService) EnrolmentsForStudent(studentID uint) ([]model.CourseEnrolment, error) {
	return s.CourseRepo.FindEnrolmentsByStudent(studentID)
}
