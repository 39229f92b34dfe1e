package repository

import (
	"driveschool_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Model(course).Updates(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) FindActive() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("active = ?", true).Order("price ASC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindAll() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Order("id ASC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) SetActive(id uint, active bool) error {
	return r.DB.Model(&model.Course{}).
		Where("id = ?", id).
		Update("active", active).Error
}

func (r *CourseRepository) CreateEnrolment(enrolment *model.CourseEnrolment) error {
	return r.DB.Create(enrolment).Error
}

func (r *CourseRepository) FindEnrolment(courseID, studentID uint) (*model.CourseEnrolment, error) {
	var enrolment model.CourseEnrolment
	err := r.DB.Where("course_id = ? AND student_id = ?", courseID, studentID).
		First(&enrolment).Error
	if err != nil {
		return nil, err
	}
	return &enrolment, nil
}

func (r *CourseRepository) FindEnrolmentsByStudent(studentID uint) ([]model.CourseEnrolment, error) {
	var enrolments []model.CourseEnrolment
	err := r.DB.Where("student_id = ?", studentID).Find(&enrolments).Error
	return enrolments, err
}

func (r *CourseRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).Count(&count).Error
	return count, err
}
