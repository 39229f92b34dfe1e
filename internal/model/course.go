package model

// Course is one catalog entry, e.g. a 10-lesson beginner package.
type Course struct {
	BaseModel
	Name         string  `gorm:"size:255;not null" json:"name"`
	Description  string  `gorm:"type:text" json:"description"`
	LessonCount  int     `gorm:"default:0" json:"lessonCount"`
	Price        float64 `gorm:"default:0" json:"price"`
	Transmission string  `gorm:"size:10;default:'manual'" json:"transmission"`
	Active       bool    `gorm:"default:true" json:"active"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseWithEnrolment is a catalog entry annotated with whether the
// requesting student is already enrolled.
type CourseWithEnrolment struct {
	Course
	Enrolled bool `json:"enrolled"`
}

// CourseEnrolment links a student to a course they bought.
type CourseEnrolment struct {
	BaseModel
	CourseID         uint `gorm:"uniqueIndex:idx_course_student;not null" json:"courseId"`
	StudentID        uint `gorm:"uniqueIndex:idx_course_student;not null" json:"studentId"`
	LessonsRemaining int  `gorm:"default:0" json:"lessonsRemaining"`
}

func (CourseEnrolment) TableName() string {
	return "course_enrolments"
}
