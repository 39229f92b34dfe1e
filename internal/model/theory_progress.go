package model

import "time"

// TheoryProgress is the per (student, category) practice rollup.
// Invariant: QuestionsCorrect <= QuestionsAttempted.
type TheoryProgress struct {
	BaseModel
	UserID             uint      `gorm:"uniqueIndex:idx_user_category;not null" json:"userId"`
	CategoryID         uint      `gorm:"uniqueIndex:idx_user_category;not null" json:"categoryId"`
	QuestionsAttempted int64     `gorm:"default:0" json:"questionsAttempted"`
	QuestionsCorrect   int64     `gorm:"default:0" json:"questionsCorrect"`
	AccuracyPercentage float64   `gorm:"default:0" json:"accuracyPercentage"`
	IsReadyForTest     bool      `gorm:"default:false" json:"isReadyForTest"`
	LastPracticeDate   time.Time `json:"lastPracticeDate"`
}

func (TheoryProgress) TableName() string {
	return "theory_progress"
}
