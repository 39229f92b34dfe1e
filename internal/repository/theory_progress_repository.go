package repository

import (
	"driveschool_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TheoryProgressRepository struct {
	DB *gorm.DB
}

func NewTheoryProgressRepository(db *gorm.DB) *TheoryProgressRepository {
	return &TheoryProgressRepository{DB: db}
}

// ReadinessPolicy is the configured bar for the isReadyForTest flag.
type ReadinessPolicy struct {
	MinAttempts int64
	MinAccuracy float64
}

// RecordAttempt upserts the (user, category) rollup as one statement.
// The update branch recomputes every derived column from the stored row
// plus this attempt, so two concurrent submissions both land: there is
// no read-modify-write round trip to race on.
//
// The accuracy and readiness expressions only reference pre-update
// column values, which both the MySQL ON DUPLICATE KEY and the SQLite
// ON CONFLICT branches resolve against the existing row.
func (r *TheoryProgressRepository) RecordAttempt(userID, categoryID uint, correct bool, policy ReadinessPolicy) error {
	now := time.Now()
	correctInc := int64(0)
	if correct {
		correctInc = 1
	}

	initialAccuracy := float64(correctInc) * 100
	row := model.TheoryProgress{
		UserID:             userID,
		CategoryID:         categoryID,
		QuestionsAttempted: 1,
		QuestionsCorrect:   correctInc,
		AccuracyPercentage: initialAccuracy,
		IsReadyForTest:     1 >= policy.MinAttempts && initialAccuracy >= policy.MinAccuracy,
		LastPracticeDate:   now,
	}

	// Derived columns first: they must see the pre-increment counters.
	assignments := clause.Set{
		{
			Column: clause.Column{Name: "accuracy_percentage"},
			Value: gorm.Expr(
				"ROUND((questions_correct + ?) * 100.0 / (questions_attempted + 1), 2)",
				correctInc,
			),
		},
		{
			Column: clause.Column{Name: "is_ready_for_test"},
			Value: gorm.Expr(
				"(questions_attempted + 1) >= ? AND ROUND((questions_correct + ?) * 100.0 / (questions_attempted + 1), 2) >= ?",
				policy.MinAttempts, correctInc, policy.MinAccuracy,
			),
		},
		{
			Column: clause.Column{Name: "questions_attempted"},
			Value:  gorm.Expr("questions_attempted + 1"),
		},
		{
			Column: clause.Column{Name: "questions_correct"},
			Value:  gorm.Expr("questions_correct + ?", correctInc),
		},
		{Column: clause.Column{Name: "last_practice_date"}, Value: now},
		{Column: clause.Column{Name: "updated_at"}, Value: now},
	}

	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "category_id"}},
		DoUpdates: assignments,
	}).Create(&row).Error
}

func (r *TheoryProgressRepository) FindByUserAndCategory(userID, categoryID uint) (*model.TheoryProgress, error) {
	var progress model.TheoryProgress
	err := r.DB.Where("user_id = ? AND category_id = ?", userID, categoryID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// FindByUser returns the user's rollups keyed by category for the
// category-list annotation.
func (r *TheoryProgressRepository) FindByUser(userID uint) (map[uint]model.TheoryProgress, error) {
	var records []model.TheoryProgress
	err := r.DB.Where("user_id = ?", userID).Find(&records).Error
	if err != nil {
		return nil, err
	}

	byCategory := make(map[uint]model.TheoryProgress, len(records))
	for _, p := range records {
		byCategory[p.CategoryID] = p
	}
	return byCategory, nil
}

// ReadySummary counts categories practised and categories ready for one user.
func (r *TheoryProgressRepository) ReadySummary(userID uint) (practised, ready int64, err error) {
	if err = r.DB.Model(&model.TheoryProgress{}).
		Where("user_id = ?", userID).
		Count(&practised).Error; err != nil {
		return
	}
	err = r.DB.Model(&model.TheoryProgress{}).
		Where("user_id = ? AND is_ready_for_test = ?", userID, true).
		Count(&ready).Error
	return
}
