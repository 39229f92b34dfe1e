package model

import "time"

// PracticeSession is ephemeral: built on request, never persisted.
// The client enforces the time limit.
type PracticeSession struct {
	SessionID      string           `json:"sessionId"`
	Questions      []TheoryQuestion `json:"questions"`
	TotalQuestions int              `json:"totalQuestions"`
	TimeLimit      int              `json:"timeLimit"` // seconds
	CategoryID     string           `json:"categoryId"`
}

// CategoryWithProgress annotates a category with one student's rollup,
// nil when the student has not practised it yet.
type CategoryWithProgress struct {
	TheoryCategory
	Progress *ProgressSummary `json:"progress"`
}

type ProgressSummary struct {
	QuestionsAttempted int64     `json:"questionsAttempted"`
	QuestionsCorrect   int64     `json:"questionsCorrect"`
	AccuracyPercentage float64   `json:"accuracyPercentage"`
	IsReadyForTest     bool      `json:"isReadyForTest"`
	LastPracticeDate   time.Time `json:"lastPracticeDate"`
}

// AnswerResult is returned for one submitted answer.
type AnswerResult struct {
	Correct       bool             `json:"correct"`
	CorrectAnswer string           `json:"correctAnswer"`
	Explanation   string           `json:"explanation"`
	Progress      *ProgressSummary `json:"progress"`
}

// TheoryStats is the admin dashboard rollup.
type TheoryStats struct {
	Overview                 TheoryOverview   `json:"overview"`
	DifficultyDistribution   map[string]int64 `json:"difficultyDistribution"`
	QuestionTypeDistribution map[string]int64 `json:"questionTypeDistribution"`
	CategoryStats            []CategoryStats  `json:"categoryStats"`
	ChallengingQuestions     []QuestionStat   `json:"challengingQuestions"`
	PopularQuestions         []QuestionStat   `json:"popularQuestions"`
}

type TheoryOverview struct {
	TotalQuestions   int64 `json:"totalQuestions"`
	ActiveQuestions  int64 `json:"activeQuestions"`
	TotalCategories  int64 `json:"totalCategories"`
	ActiveCategories int64 `json:"activeCategories"`
	RecentQuestions  int64 `json:"recentQuestions"` // created in last 30 days
}

type CategoryStats struct {
	CategoryID      uint    `json:"categoryId"`
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	TotalQuestions  int64   `json:"totalQuestions"`
	ActiveQuestions int64   `json:"activeQuestions"`
	TotalAttempts   int64   `json:"totalAttempts"`
	TotalCorrect    int64   `json:"totalCorrect"`
	AverageAccuracy float64 `json:"averageAccuracy"`
}

type QuestionStat struct {
	QuestionID uint    `json:"questionId"`
	Text       string  `json:"text"`
	CategoryID uint    `json:"categoryId"`
	TimesAsked int64   `json:"timesAsked"`
	Accuracy   float64 `json:"accuracy"`
}
