package repository

import (
	"driveschool_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type TheoryQuestionRepository struct {
	DB *gorm.DB
}

func NewTheoryQuestionRepository(db *gorm.DB) *TheoryQuestionRepository {
	return &TheoryQuestionRepository{DB: db}
}

func (r *TheoryQuestionRepository) Create(question *model.TheoryQuestion) error {
	return r.DB.Create(question).Error
}

func (r *TheoryQuestionRepository) Update(question *model.TheoryQuestion) error {
	return r.DB.Model(question).Updates(question).Error
}

func (r *TheoryQuestionRepository) FindByID(id uint) (*model.TheoryQuestion, error) {
	var question model.TheoryQuestion
	err := r.DB.First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// FindActiveByID is the submission-path lookup: inactive questions are
// treated the same as missing ones.
func (r *TheoryQuestionRepository) FindActiveByID(id uint) (*model.TheoryQuestion, error) {
	var question model.TheoryQuestion
	err := r.DB.Where("id = ? AND active = ?", id, true).First(&question).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// FindEligible returns the active questions matching the optional
// category and difficulty filters. Zero values mean unfiltered.
func (r *TheoryQuestionRepository) FindEligible(categoryID uint, difficulty model.QuestionDifficulty) ([]model.TheoryQuestion, error) {
	query := r.DB.Where("active = ?", true)
	if categoryID != 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}

	var questions []model.TheoryQuestion
	err := query.Find(&questions).Error
	return questions, err
}

// RecordAnswer bumps the usage counters in a single UPDATE so concurrent
// submissions cannot lose increments.
func (r *TheoryQuestionRepository) RecordAnswer(questionID uint, correct bool) error {
	correctInc := 0
	if correct {
		correctInc = 1
	}
	return r.DB.Model(&model.TheoryQuestion{}).
		Where("id = ?", questionID).
		UpdateColumns(map[string]interface{}{
			"times_asked":   gorm.Expr("times_asked + 1"),
			"times_correct": gorm.Expr("times_correct + ?", correctInc),
		}).Error
}

func (r *TheoryQuestionRepository) SetActive(id uint, active bool) error {
	return r.DB.Model(&model.TheoryQuestion{}).
		Where("id = ?", id).
		Update("active", active).Error
}

// List is the admin view with filters and pagination.
func (r *TheoryQuestionRepository) List(categoryID uint, difficulty model.QuestionDifficulty, activeOnly bool, page, limit int) ([]model.TheoryQuestion, int64, error) {
	query := r.DB.Model(&model.TheoryQuestion{})
	if categoryID != 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var questions []model.TheoryQuestion
	offset := (page - 1) * limit
	err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&questions).Error
	return questions, total, err
}

func (r *TheoryQuestionRepository) Counts() (total, active int64, err error) {
	if err = r.DB.Model(&model.TheoryQuestion{}).Count(&total).Error; err != nil {
		return
	}
	err = r.DB.Model(&model.TheoryQuestion{}).Where("active = ?", true).Count(&active).Error
	return
}

func (r *TheoryQuestionRepository) CountCreatedSince(since time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.TheoryQuestion{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

type groupCount struct {
	Key   string
	Count int64
}

func (r *TheoryQuestionRepository) CountByDifficulty() (map[string]int64, error) {
	return r.groupCounts("difficulty")
}

func (r *TheoryQuestionRepository) CountByType() (map[string]int64, error) {
	return r.groupCounts("question_type")
}

func (r *TheoryQuestionRepository) groupCounts(column string) (map[string]int64, error) {
	var rows []groupCount
	err := r.DB.Model(&model.TheoryQuestion{}).
		Select(column + " AS `key`, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Key] = row.Count
	}
	return counts, nil
}

type categoryAggregate struct {
	CategoryID      uint
	TotalQuestions  int64
	ActiveQuestions int64
	TotalAttempts   int64
	TotalCorrect    int64
}

// AggregateByCategory sums the usage counters per category in one pass.
func (r *TheoryQuestionRepository) AggregateByCategory() (map[uint]model.CategoryStats, error) {
	var rows []categoryAggregate
	err := r.DB.Model(&model.TheoryQuestion{}).
		Select(`category_id,
			COUNT(*) AS total_questions,
			COALESCE(SUM(CASE WHEN active THEN 1 ELSE 0 END), 0) AS active_questions,
			COALESCE(SUM(times_asked), 0) AS total_attempts,
			COALESCE(SUM(times_correct), 0) AS total_correct`).
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := make(map[uint]model.CategoryStats, len(rows))
	for _, row := range rows {
		stats[row.CategoryID] = model.CategoryStats{
			CategoryID:      row.CategoryID,
			TotalQuestions:  row.TotalQuestions,
			ActiveQuestions: row.ActiveQuestions,
			TotalAttempts:   row.TotalAttempts,
			TotalCorrect:    row.TotalCorrect,
		}
	}
	return stats, nil
}

// FindChallenging returns active questions with at least minAsked
// attempts, lowest accuracy first. The minimum-sample guard keeps
// low-attempt questions out of the ranking.
func (r *TheoryQuestionRepository) FindChallenging(minAsked int64, limit int) ([]model.TheoryQuestion, error) {
	var questions []model.TheoryQuestion
	err := r.DB.Where("active = ? AND times_asked >= ?", true, minAsked).
		Order("times_correct * 100.0 / times_asked ASC").
		Limit(limit).
		Find(&questions).Error
	return questions, err
}

// FindPopular returns active questions by descending attempt count.
func (r *TheoryQuestionRepository) FindPopular(limit int) ([]model.TheoryQuestion, error) {
	var questions []model.TheoryQuestion
	err := r.DB.Where("active = ?", true).
		Order("times_asked DESC").
		Limit(limit).
		Find(&questions).Error
	return questions, err
}
