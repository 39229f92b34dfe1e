package model

import (
	"time"
)

type UserRole string

const (
	Student    UserRole = "student"
	Instructor UserRole = "instructor"
	Admin      UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"size:20;default:'student';index" json:"role"`
	Phone     string    `gorm:"size:30" json:"phone"`
	Avatar    string    `gorm:"size:255" json:"avatar"`
	Postcode  string    `gorm:"size:10" json:"postcode"`
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `json:"lastLogin"`
	LastSeen  time.Time `json:"lastSeen"`

	// Instructor fields, blank for students
	ADINumber    string  `gorm:"size:20" json:"adiNumber,omitempty"`
	HourlyRate   float64 `gorm:"default:0" json:"hourlyRate,omitempty"`
	Transmission string  `gorm:"size:10" json:"transmission,omitempty"` // manual, auto
}

func (User) TableName() string {
	return "users"
}
