package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrNoQuestionsMatch    = errors.New("no questions match the specified criteria")
	ErrQuestionNotFound    = errors.New("question not found or inactive")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrBookingOverlap      = errors.New("instructor already has a booking in this time slot")
	ErrInvalidTransition   = errors.New("invalid booking status transition")
	ErrNotAnInstructor     = errors.New("user is not an instructor")
	ErrCourseNotFound      = errors.New("course not found")
	ErrAlreadyEnrolled     = errors.New("student already enrolled on this course")
	ErrMessageNotFound     = errors.New("message not found")
	ErrRecipientNotFound   = errors.New("recipient not found")
	ErrMaintenanceMode     = errors.New("platform is in maintenance mode")
	ErrInvalidAnswerOption = errors.New("answer must be one of A, B, C or D")
	ErrInvalidDifficulty   = errors.New("difficulty must be easy, medium or hard")
	ErrInvalidCategoryRef  = errors.New("categoryId must be a numeric id or \"all\"")
)
