package repository_test

import (
	"sync"
	"testing"

	"driveschool_backend/internal/repository"
	"driveschool_backend/internal/testutil"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type TheoryProgressRepositorySuite struct {
	suite.Suite
	db         *gorm.DB
	repo       *repository.TheoryProgressRepository
	policy     repository.ReadinessPolicy
	categoryID uint
}

func (s *TheoryProgressRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = repository.NewTheoryProgressRepository(s.db)
	s.policy = repository.ReadinessPolicy{MinAttempts: 10, MinAccuracy: 80}
	s.categoryID = testutil.CategoryID(s.T(), s.db, "alertness")
}

func (s *TheoryProgressRepositorySuite) record(correct bool) {
	s.Require().NoError(s.repo.RecordAttempt(1, s.categoryID, correct, s.policy))
}

func (s *TheoryProgressRepositorySuite) TestFirstAttemptCreatesRow() {
	s.record(true)

	progress, err := s.repo.FindByUserAndCategory(1, s.categoryID)
	s.Require().NoError(err)
	s.Equal(int64(1), progress.QuestionsAttempted)
	s.Equal(int64(1), progress.QuestionsCorrect)
	s.Equal(100.0, progress.AccuracyPercentage)
	s.False(progress.IsReadyForTest)
	s.False(progress.LastPracticeDate.IsZero())
}

func (s *TheoryProgressRepositorySuite) TestUpsertIncrementsExistingRow() {
	s.record(true)
	s.record(false)

	progress, err := s.repo.FindByUserAndCategory(1, s.categoryID)
	s.Require().NoError(err)
	s.Equal(int64(2), progress.QuestionsAttempted)
	s.Equal(int64(1), progress.QuestionsCorrect)
	s.Equal(50.0, progress.AccuracyPercentage)

	var count int64
	s.db.Table("theory_progress").
		Where("user_id = ? AND category_id = ?", 1, s.categoryID).
		Count(&count)
	s.Equal(int64(1), count)
}

func (s *TheoryProgressRepositorySuite) TestCorrectNeverExceedsAttempted() {
	answers := []bool{true, false, true, true, false, true}
	for _, correct := range answers {
		s.record(correct)
	}

	progress, err := s.repo.FindByUserAndCategory(1, s.categoryID)
	s.Require().NoError(err)
	s.Equal(int64(6), progress.QuestionsAttempted)
	s.Equal(int64(4), progress.QuestionsCorrect)
	s.LessOrEqual(progress.QuestionsCorrect, progress.QuestionsAttempted)
}

func (s *TheoryProgressRepositorySuite) TestAccuracyRoundedToTwoDecimals() {
	// 2 of 3 correct: 66.666... rounds to 66.67
	s.record(true)
	s.record(true)
	s.record(false)

	progress, err := s.repo.FindByUserAndCategory(1, s.categoryID)
	s.Require().NoError(err)
	s.Equal(66.67, progress.AccuracyPercentage)
}

func (s *TheoryProgressRepositorySuite) TestReadinessNeedsBothThresholds() {
	// 9 correct answers: accuracy 100 but below the attempt floor.
	for i := 0; i < 9; i++ {
		s.record(true)
	}
	progress, err := s.repo.FindByUserAndCategory(1, s.categoryID)
	s.Require().NoError(err)
	s.False(progress.IsReadyForTest)

	// 10th attempt crosses the floor.
	s.record(true)
	progress, err = s.repo.FindByUserAndCategory(1, s.categoryID)
	s.Require().NoError(err)
	s.True(progress.IsReadyForTest)
}

func (s *TheoryProgressRepositorySuite) TestReadinessAtExactAccuracyBoundary() {
	// 16 of 20 is exactly 80 percent, which meets the bar.
	for i := 0; i < 16; i++ {
		s.record(true)
	}
	for i := 0; i < 4; i++ {
		s.record(false)
	}

	progress, err := s.repo.FindByUserAndCategory(1, s.categoryID)
	s.Require().NoError(err)
	s.Equal(int64(20), progress.QuestionsAttempted)
	s.Equal(80.0, progress.AccuracyPercentage)
	s.True(progress.IsReadyForTest)
}

func (s *TheoryProgressRepositorySuite) TestReadinessLostWhenAccuracyDrops() {
	for i := 0; i < 10; i++ {
		s.record(true)
	}
	progress, err := s.repo.FindByUserAndCategory(1, s.categoryID)
	s.Require().NoError(err)
	s.True(progress.IsReadyForTest)

	// A run of wrong answers pulls accuracy below 80.
	for i := 0; i < 4; i++ {
		s.record(false)
	}
	progress, err = s.repo.FindByUserAndCategory(1, s.categoryID)
	s.Require().NoError(err)
	s.Equal(71.43, progress.AccuracyPercentage)
	s.False(progress.IsReadyForTest)
}

func (s *TheoryProgressRepositorySuite) TestParallelAttemptsAllLand() {
	// The upsert is a single statement, so simultaneous submissions
	// must never lose an increment to a read-modify-write race.
	const attempts = 20

	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		correct := i%2 == 0
		wg.Add(1)
		go func(correct bool) {
			defer wg.Done()
			errs <- s.repo.RecordAttempt(1, s.categoryID, correct, s.policy)
		}(correct)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.Require().NoError(err)
	}

	progress, err := s.repo.FindByUserAndCategory(1, s.categoryID)
	s.Require().NoError(err)
	s.Equal(int64(attempts), progress.QuestionsAttempted)
	s.Equal(int64(attempts/2), progress.QuestionsCorrect)
	s.Equal(50.0, progress.AccuracyPercentage)

	var count int64
	s.db.Table("theory_progress").
		Where("user_id = ? AND category_id = ?", 1, s.categoryID).
		Count(&count)
	s.Equal(int64(1), count)
}

func (s *TheoryProgressRepositorySuite) TestSeparateRowsPerCategoryAndUser() {
	other := testutil.CategoryID(s.T(), s.db, "attitude")

	s.Require().NoError(s.repo.RecordAttempt(1, s.categoryID, true, s.policy))
	s.Require().NoError(s.repo.RecordAttempt(1, other, false, s.policy))
	s.Require().NoError(s.repo.RecordAttempt(2, s.categoryID, true, s.policy))

	byCategory, err := s.repo.FindByUser(1)
	s.Require().NoError(err)
	s.Len(byCategory, 2)
	s.Equal(int64(1), byCategory[s.categoryID].QuestionsCorrect)
	s.Equal(int64(0), byCategory[other].QuestionsCorrect)
}

func (s *TheoryProgressRepositorySuite) TestReadySummary() {
	other := testutil.CategoryID(s.T(), s.db, "attitude")

	for i := 0; i < 10; i++ {
		s.Require().NoError(s.repo.RecordAttempt(1, s.categoryID, true, s.policy))
	}
	s.Require().NoError(s.repo.RecordAttempt(1, other, false, s.policy))

	practised, ready, err := s.repo.ReadySummary(1)
	s.Require().NoError(err)
	s.Equal(int64(2), practised)
	s.Equal(int64(1), ready)
}

func TestTheoryProgressRepositorySuite(t *testing.T) {
	suite.Run(t, new(TheoryProgressRepositorySuite))
}
