package model

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is one driving lesson slot between a student and an instructor.
type Booking struct {
	BaseModel
	StudentID      uint          `gorm:"index;not null" json:"studentId"`
	Student        User          `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	InstructorID   uint          `gorm:"index;not null" json:"instructorId"`
	Instructor     User          `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	CourseID       uint          `gorm:"index" json:"courseId"`
	StartTime      time.Time     `gorm:"index;not null" json:"startTime"`
	EndTime        time.Time     `gorm:"not null" json:"endTime"`
	PickupLocation string        `gorm:"size:255" json:"pickupLocation"`
	Status         BookingStatus `gorm:"size:20;default:'pending';index" json:"status"`
	Notes          string        `gorm:"type:text" json:"notes"`
}

func (Booking) TableName() string {
	return "bookings"
}
