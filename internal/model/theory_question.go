package model

type QuestionDifficulty string

const (
	DifficultyEasy   QuestionDifficulty = "easy"
	DifficultyMedium QuestionDifficulty = "medium"
	DifficultyHard   QuestionDifficulty = "hard"
)

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionImageChoice    QuestionType = "image_choice"
	QuestionCaseStudy      QuestionType = "case_study"
)

// TheoryQuestion is a bank question with running usage counters.
// TimesAsked/TimesCorrect are only ever incremented by answer submission.
type TheoryQuestion struct {
	BaseModel
	CategoryID    uint               `gorm:"index;not null" json:"categoryId"`
	Category      TheoryCategory     `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	QuestionType  QuestionType       `gorm:"size:50;default:'multiple_choice'" json:"questionType"`
	Difficulty    QuestionDifficulty `gorm:"size:20;default:'medium';index" json:"difficulty"`
	Text          string             `gorm:"type:text;not null" json:"text"`
	ImageURL      string             `gorm:"size:255" json:"imageUrl"`
	OptionA       string             `gorm:"size:500" json:"optionA"`
	OptionB       string             `gorm:"size:500" json:"optionB"`
	OptionC       string             `gorm:"size:500" json:"optionC"`
	OptionD       string             `gorm:"size:500" json:"optionD"`
	CorrectAnswer string             `gorm:"size:1;not null" json:"correctAnswer"` // A, B, C or D
	Explanation   string             `gorm:"type:text" json:"explanation"`
	OfficialRef   string             `gorm:"size:100" json:"officialRef"` // Highway Code rule etc.
	Active        bool               `gorm:"default:true;index" json:"active"`
	TimesAsked    int64              `gorm:"default:0" json:"timesAsked"`
	TimesCorrect  int64              `gorm:"default:0" json:"timesCorrect"`
}

func (TheoryQuestion) TableName() string {
	return "theory_questions"
}

// AccuracyPercent is the per-question answer accuracy, 0 when never asked.
func (q *TheoryQuestion) AccuracyPercent() float64 {
	if q.TimesAsked == 0 {
		return 0
	}
	return float64(q.TimesCorrect) * 100 / float64(q.TimesAsked)
}
