package service_test

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"driveschool_backend/internal/config"
	"driveschool_backend/internal/model"
	"driveschool_backend/internal/repository"
	"driveschool_backend/internal/service"
	"driveschool_backend/internal/testutil"
	"driveschool_backend/internal/util"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

func testTheoryConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Theory = config.TheoryConfig{
		ReadinessMinAttempts: 10,
		ReadinessMinAccuracy: 80,
		ChallengingMinAsked:  10,
		DefaultQuestionCount: 10,
		SecondsPerQuestion:   120,
	}
	return cfg
}

type TheoryServiceSuite struct {
	suite.Suite
	db  *gorm.DB
	svc *service.TheoryService

	alertnessID uint
	signsID     uint
}

func (s *TheoryServiceSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())

	categoryRepo := repository.NewTheoryCategoryRepository(s.db)
	questionRepo := repository.NewTheoryQuestionRepository(s.db)
	progressRepo := repository.NewTheoryProgressRepository(s.db)

	s.svc = service.NewTheoryService(categoryRepo, questionRepo, progressRepo, testTheoryConfig(), s.db)
	s.svc.SetRandSource(rand.NewSource(42))

	s.alertnessID = testutil.CategoryID(s.T(), s.db, "alertness")
	s.signsID = testutil.CategoryID(s.T(), s.db, "road-and-traffic-signs")
}

func (s *TheoryServiceSuite) seedQuestions(categoryID uint, difficulty model.QuestionDifficulty, n int) []uint {
	ids := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		q := model.TheoryQuestion{
			CategoryID:    categoryID,
			Difficulty:    difficulty,
			Text:          fmt.Sprintf("question %d", i),
			OptionA:       "a",
			OptionB:       "b",
			OptionC:       "c",
			OptionD:       "d",
			CorrectAnswer: "B",
			Active:        true,
		}
		s.Require().NoError(s.db.Create(&q).Error)
		ids = append(ids, q.ID)
	}
	return ids
}

func (s *TheoryServiceSuite) TestSessionHasNoDuplicates() {
	s.seedQuestions(s.alertnessID, model.DifficultyMedium, 30)

	session, err := s.svc.StartSession(1, service.SessionRequest{QuestionCount: 10})
	s.Require().NoError(err)
	s.Len(session.Questions, 10)
	s.Equal(10, session.TotalQuestions)

	seen := make(map[uint]bool)
	for _, q := range session.Questions {
		s.False(seen[q.ID], "question %d drawn twice", q.ID)
		seen[q.ID] = true
	}
}

func (s *TheoryServiceSuite) TestSessionSeededSourceIsDeterministic() {
	s.seedQuestions(s.alertnessID, model.DifficultyMedium, 30)

	s.svc.SetRandSource(rand.NewSource(7))
	first, err := s.svc.StartSession(1, service.SessionRequest{QuestionCount: 10})
	s.Require().NoError(err)

	s.svc.SetRandSource(rand.NewSource(7))
	second, err := s.svc.StartSession(1, service.SessionRequest{QuestionCount: 10})
	s.Require().NoError(err)

	for i := range first.Questions {
		s.Equal(first.Questions[i].ID, second.Questions[i].ID)
	}
}

func (s *TheoryServiceSuite) TestSessionCategoryFilter() {
	s.seedQuestions(s.alertnessID, model.DifficultyMedium, 5)
	s.seedQuestions(s.signsID, model.DifficultyMedium, 5)

	session, err := s.svc.StartSession(1, service.SessionRequest{
		CategoryID:    fmt.Sprintf("%d", s.alertnessID),
		QuestionCount: 10,
	})
	s.Require().NoError(err)
	for _, q := range session.Questions {
		s.Equal(s.alertnessID, q.CategoryID)
	}
}

func (s *TheoryServiceSuite) TestSessionDifficultyFilter() {
	s.seedQuestions(s.alertnessID, model.DifficultyEasy, 5)
	s.seedQuestions(s.alertnessID, model.DifficultyHard, 5)

	session, err := s.svc.StartSession(1, service.SessionRequest{
		QuestionCount: 10,
		Difficulty:    "hard",
	})
	s.Require().NoError(err)
	for _, q := range session.Questions {
		s.Equal(model.DifficultyHard, q.Difficulty)
	}
}

func (s *TheoryServiceSuite) TestSessionRejectsUnknownDifficulty() {
	s.seedQuestions(s.alertnessID, model.DifficultyMedium, 5)

	_, err := s.svc.StartSession(1, service.SessionRequest{Difficulty: "impossible"})
	s.ErrorIs(err, util.ErrInvalidDifficulty)
}

func (s *TheoryServiceSuite) TestSessionRejectsMalformedCategoryRef() {
	s.seedQuestions(s.alertnessID, model.DifficultyMedium, 5)

	// Not a 404: "abc" is bad input, not a missing category.
	_, err := s.svc.StartSession(1, service.SessionRequest{CategoryID: "abc"})
	s.ErrorIs(err, util.ErrInvalidCategoryRef)
	s.NotErrorIs(err, util.ErrCategoryNotFound)
}

func (s *TheoryServiceSuite) TestSessionTruncatedToPoolSize() {
	s.seedQuestions(s.alertnessID, model.DifficultyMedium, 3)

	session, err := s.svc.StartSession(1, service.SessionRequest{QuestionCount: 20})
	s.Require().NoError(err)
	s.Len(session.Questions, 3)
	s.Equal(3*120, session.TimeLimit)
}

func (s *TheoryServiceSuite) TestSessionEmptyPoolIsAnError() {
	_, err := s.svc.StartSession(1, service.SessionRequest{QuestionCount: 10})
	s.ErrorIs(err, util.ErrNoQuestionsMatch)
}

func (s *TheoryServiceSuite) TestSessionExcludesInactiveQuestions() {
	ids := s.seedQuestions(s.alertnessID, model.DifficultyMedium, 4)
	s.Require().NoError(s.db.Model(&model.TheoryQuestion{}).
		Where("id = ?", ids[0]).
		Update("active", false).Error)

	session, err := s.svc.StartSession(1, service.SessionRequest{QuestionCount: 10})
	s.Require().NoError(err)
	s.Len(session.Questions, 3)
	for _, q := range session.Questions {
		s.NotEqual(ids[0], q.ID)
	}
}

func (s *TheoryServiceSuite) TestSessionUnknownCategory() {
	s.seedQuestions(s.alertnessID, model.DifficultyMedium, 5)

	_, err := s.svc.StartSession(1, service.SessionRequest{CategoryID: "9999"})
	s.ErrorIs(err, util.ErrCategoryNotFound)
}

func (s *TheoryServiceSuite) TestSessionDefaultCount() {
	s.seedQuestions(s.alertnessID, model.DifficultyMedium, 25)

	session, err := s.svc.StartSession(1, service.SessionRequest{})
	s.Require().NoError(err)
	s.Len(session.Questions, 10)
	s.Equal("all", session.CategoryID)
	s.NotEmpty(session.SessionID)
}

func (s *TheoryServiceSuite) TestSubmitCorrectAnswer() {
	ids := s.seedQuestions(s.alertnessID, model.DifficultyMedium, 1)

	result, err := s.svc.SubmitAnswer(1, service.AnswerRequest{QuestionID: ids[0], Answer: "b"})
	s.Require().NoError(err)
	s.True(result.Correct)
	s.Equal("B", result.CorrectAnswer)
	s.Require().NotNil(result.Progress)
	s.Equal(int64(1), result.Progress.QuestionsAttempted)
	s.Equal(int64(1), result.Progress.QuestionsCorrect)

	var q model.TheoryQuestion
	s.Require().NoError(s.db.First(&q, ids[0]).Error)
	s.Equal(int64(1), q.TimesAsked)
	s.Equal(int64(1), q.TimesCorrect)
}

func (s *TheoryServiceSuite) TestSubmitWrongAnswer() {
	ids := s.seedQuestions(s.alertnessID, model.DifficultyMedium, 1)

	result, err := s.svc.SubmitAnswer(1, service.AnswerRequest{QuestionID: ids[0], Answer: "A"})
	s.Require().NoError(err)
	s.False(result.Correct)
	s.Equal("B", result.CorrectAnswer)
	s.Equal(int64(0), result.Progress.QuestionsCorrect)

	var q model.TheoryQuestion
	s.Require().NoError(s.db.First(&q, ids[0]).Error)
	s.Equal(int64(1), q.TimesAsked)
	s.Equal(int64(0), q.TimesCorrect)
}

func (s *TheoryServiceSuite) TestSubmitInvalidOption() {
	ids := s.seedQuestions(s.alertnessID, model.DifficultyMedium, 1)

	_, err := s.svc.SubmitAnswer(1, service.AnswerRequest{QuestionID: ids[0], Answer: "E"})
	s.ErrorIs(err, util.ErrInvalidAnswerOption)
}

func (s *TheoryServiceSuite) TestSubmitUnknownQuestion() {
	_, err := s.svc.SubmitAnswer(1, service.AnswerRequest{QuestionID: 9999, Answer: "A"})
	s.ErrorIs(err, util.ErrQuestionNotFound)
}

func (s *TheoryServiceSuite) TestSubmitParallelAnswersAllLand() {
	ids := s.seedQuestions(s.alertnessID, model.DifficultyMedium, 1)
	const submissions = 10

	var wg sync.WaitGroup
	errs := make(chan error, submissions)
	for i := 0; i < submissions; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.svc.SubmitAnswer(1, service.AnswerRequest{QuestionID: ids[0], Answer: "B"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.Require().NoError(err)
	}

	progress, err := repository.NewTheoryProgressRepository(s.db).FindByUserAndCategory(1, s.alertnessID)
	s.Require().NoError(err)
	s.Equal(int64(submissions), progress.QuestionsAttempted)
	s.Equal(int64(submissions), progress.QuestionsCorrect)

	var q model.TheoryQuestion
	s.Require().NoError(s.db.First(&q, ids[0]).Error)
	s.Equal(int64(submissions), q.TimesAsked)
}

func (s *TheoryServiceSuite) TestProgressAccuracyAndReadiness() {
	ids := s.seedQuestions(s.alertnessID, model.DifficultyMedium, 1)

	// 16 correct then 4 wrong: 80 percent over 20 attempts.
	for i := 0; i < 16; i++ {
		_, err := s.svc.SubmitAnswer(1, service.AnswerRequest{QuestionID: ids[0], Answer: "B"})
		s.Require().NoError(err)
	}
	var result *model.AnswerResult
	for i := 0; i < 4; i++ {
		var err error
		result, err = s.svc.SubmitAnswer(1, service.AnswerRequest{QuestionID: ids[0], Answer: "A"})
		s.Require().NoError(err)
	}

	s.Equal(int64(20), result.Progress.QuestionsAttempted)
	s.Equal(int64(16), result.Progress.QuestionsCorrect)
	s.Equal(80.0, result.Progress.AccuracyPercentage)
	s.True(result.Progress.IsReadyForTest)
}

func (s *TheoryServiceSuite) TestReadinessGateBelowAttemptFloor() {
	ids := s.seedQuestions(s.alertnessID, model.DifficultyMedium, 1)

	var result *model.AnswerResult
	for i := 0; i < 9; i++ {
		var err error
		result, err = s.svc.SubmitAnswer(1, service.AnswerRequest{QuestionID: ids[0], Answer: "B"})
		s.Require().NoError(err)
	}
	s.Equal(100.0, result.Progress.AccuracyPercentage)
	s.False(result.Progress.IsReadyForTest)

	result, err := s.svc.SubmitAnswer(1, service.AnswerRequest{QuestionID: ids[0], Answer: "B"})
	s.Require().NoError(err)
	s.True(result.Progress.IsReadyForTest)
}

func (s *TheoryServiceSuite) TestListCategoriesAnnotatesProgress() {
	ids := s.seedQuestions(s.alertnessID, model.DifficultyMedium, 1)
	_, err := s.svc.SubmitAnswer(1, service.AnswerRequest{QuestionID: ids[0], Answer: "B"})
	s.Require().NoError(err)

	categories, err := s.svc.ListCategories(1)
	s.Require().NoError(err)
	s.Len(categories, 15)

	for _, c := range categories {
		if c.ID == s.alertnessID {
			s.Require().NotNil(c.Progress)
			s.Equal(int64(1), c.Progress.QuestionsAttempted)
		} else {
			s.Nil(c.Progress)
		}
	}
}

func (s *TheoryServiceSuite) TestUpdatePolicyChangesReadinessBar() {
	ids := s.seedQuestions(s.alertnessID, model.DifficultyMedium, 1)

	cfg := testTheoryConfig()
	cfg.Theory.ReadinessMinAttempts = 2
	s.svc.UpdatePolicy(cfg)

	_, err := s.svc.SubmitAnswer(1, service.AnswerRequest{QuestionID: ids[0], Answer: "B"})
	s.Require().NoError(err)
	result, err := s.svc.SubmitAnswer(1, service.AnswerRequest{QuestionID: ids[0], Answer: "B"})
	s.Require().NoError(err)
	s.True(result.Progress.IsReadyForTest)
}

func TestTheoryServiceSuite(t *testing.T) {
	suite.Run(t, new(TheoryServiceSuite))
}
