package service_test

import (
	"testing"

	"driveschool_backend/internal/model"
	"driveschool_backend/internal/repository"
	"driveschool_backend/internal/service"
	"driveschool_backend/internal/testutil"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type TheoryStatsServiceSuite struct {
	suite.Suite
	db  *gorm.DB
	svc *service.TheoryStatsService

	alertnessID uint
	signsID     uint
}

func (s *TheoryStatsServiceSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())

	s.svc = service.NewTheoryStatsService(
		repository.NewTheoryQuestionRepository(s.db),
		repository.NewTheoryCategoryRepository(s.db),
		testTheoryConfig(),
	)

	s.alertnessID = testutil.CategoryID(s.T(), s.db, "alertness")
	s.signsID = testutil.CategoryID(s.T(), s.db, "road-and-traffic-signs")
}

func (s *TheoryStatsServiceSuite) seedQuestion(categoryID uint, difficulty model.QuestionDifficulty, asked, correct int64, active bool) uint {
	q := model.TheoryQuestion{
		CategoryID:    categoryID,
		Difficulty:    difficulty,
		Text:          "q",
		OptionA:       "a",
		OptionB:       "b",
		CorrectAnswer: "A",
		Active:        active,
		TimesAsked:    asked,
		TimesCorrect:  correct,
	}
	s.Require().NoError(s.db.Create(&q).Error)
	return q.ID
}

func (s *TheoryStatsServiceSuite) TestOverviewCounts() {
	s.seedQuestion(s.alertnessID, model.DifficultyEasy, 0, 0, true)
	s.seedQuestion(s.alertnessID, model.DifficultyMedium, 0, 0, true)
	s.seedQuestion(s.signsID, model.DifficultyHard, 0, 0, false)

	stats, err := s.svc.Stats()
	s.Require().NoError(err)

	s.Equal(int64(3), stats.Overview.TotalQuestions)
	s.Equal(int64(2), stats.Overview.ActiveQuestions)
	s.Equal(int64(15), stats.Overview.TotalCategories)
	s.Equal(int64(15), stats.Overview.ActiveCategories)
	s.Equal(int64(3), stats.Overview.RecentQuestions)
}

func (s *TheoryStatsServiceSuite) TestDifficultyDistribution() {
	s.seedQuestion(s.alertnessID, model.DifficultyEasy, 0, 0, true)
	s.seedQuestion(s.alertnessID, model.DifficultyEasy, 0, 0, true)
	s.seedQuestion(s.alertnessID, model.DifficultyHard, 0, 0, true)

	stats, err := s.svc.Stats()
	s.Require().NoError(err)

	s.Equal(int64(2), stats.DifficultyDistribution["easy"])
	s.Equal(int64(1), stats.DifficultyDistribution["hard"])
	s.Zero(stats.DifficultyDistribution["medium"])
}

func (s *TheoryStatsServiceSuite) TestCategoryStatsIncludeEmptyCategories() {
	s.seedQuestion(s.alertnessID, model.DifficultyEasy, 10, 7, true)
	s.seedQuestion(s.alertnessID, model.DifficultyEasy, 20, 13, true)

	stats, err := s.svc.Stats()
	s.Require().NoError(err)
	s.Len(stats.CategoryStats, 15)

	var alertness, signs *model.CategoryStats
	for i := range stats.CategoryStats {
		switch stats.CategoryStats[i].CategoryID {
		case s.alertnessID:
			alertness = &stats.CategoryStats[i]
		case s.signsID:
			signs = &stats.CategoryStats[i]
		}
	}

	s.Require().NotNil(alertness)
	s.Equal(int64(2), alertness.TotalQuestions)
	s.Equal(int64(30), alertness.TotalAttempts)
	s.Equal(int64(20), alertness.TotalCorrect)
	// 20 of 30 is 66.666..., rounded to 2 decimals.
	s.Equal(66.67, alertness.AverageAccuracy)

	s.Require().NotNil(signs)
	s.Zero(signs.TotalQuestions)
	s.Zero(signs.AverageAccuracy)
	s.Equal("road-and-traffic-signs", signs.Code)
}

func (s *TheoryStatsServiceSuite) TestChallengingExcludesRarelyAskedQuestions() {
	// Below the 10-ask floor despite a 0 percent accuracy.
	s.seedQuestion(s.alertnessID, model.DifficultyEasy, 5, 0, true)
	hard := s.seedQuestion(s.alertnessID, model.DifficultyEasy, 40, 8, true)
	easy := s.seedQuestion(s.alertnessID, model.DifficultyEasy, 40, 36, true)

	stats, err := s.svc.Stats()
	s.Require().NoError(err)

	s.Require().Len(stats.ChallengingQuestions, 2)
	s.Equal(hard, stats.ChallengingQuestions[0].QuestionID)
	s.Equal(20.0, stats.ChallengingQuestions[0].Accuracy)
	s.Equal(easy, stats.ChallengingQuestions[1].QuestionID)
}

func (s *TheoryStatsServiceSuite) TestPopularRankedByTimesAsked() {
	mid := s.seedQuestion(s.alertnessID, model.DifficultyEasy, 50, 25, true)
	top := s.seedQuestion(s.signsID, model.DifficultyEasy, 90, 45, true)
	s.seedQuestion(s.signsID, model.DifficultyEasy, 10, 5, true)

	stats, err := s.svc.Stats()
	s.Require().NoError(err)

	s.Require().GreaterOrEqual(len(stats.PopularQuestions), 2)
	s.Equal(top, stats.PopularQuestions[0].QuestionID)
	s.Equal(mid, stats.PopularQuestions[1].QuestionID)
}

func TestTheoryStatsServiceSuite(t *testing.T) {
	suite.Run(t, new(TheoryStatsServiceSuite))
}
