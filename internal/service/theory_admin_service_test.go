package service_test

import (
	"testing"

	"driveschool_backend/internal/model"
	"driveschool_backend/internal/repository"
	"driveschool_backend/internal/service"
	"driveschool_backend/internal/testutil"
	"driveschool_backend/internal/util"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type TheoryAdminServiceSuite struct {
	suite.Suite
	db  *gorm.DB
	svc *service.TheoryAdminService

	alertnessID uint
}

func (s *TheoryAdminServiceSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())

	s.svc = service.NewTheoryAdminService(
		repository.NewTheoryQuestionRepository(s.db),
		repository.NewTheoryCategoryRepository(s.db),
		nil,
	)

	s.alertnessID = testutil.CategoryID(s.T(), s.db, "alertness")
}

func (s *TheoryAdminServiceSuite) validRequest() service.QuestionRequest {
	return service.QuestionRequest{
		CategoryID:    s.alertnessID,
		Text:          "What should you do before moving off?",
		OptionA:       "Sound the horn",
		OptionB:       "Check your mirrors and blind spot",
		OptionC:       "Flash your lights",
		OptionD:       "Wave other drivers on",
		CorrectAnswer: "b",
	}
}

func (s *TheoryAdminServiceSuite) TestCreateQuestionAppliesDefaults() {
	question, err := s.svc.CreateQuestion(s.validRequest())
	s.Require().NoError(err)

	s.Equal("B", question.CorrectAnswer)
	s.Equal(model.DifficultyMedium, question.Difficulty)
	s.Equal(model.QuestionMultipleChoice, question.QuestionType)
	s.True(question.Active)
	s.Zero(question.TimesAsked)
}

func (s *TheoryAdminServiceSuite) TestCreateQuestionRejectsBadAnswer() {
	req := s.validRequest()
	req.CorrectAnswer = "E"

	_, err := s.svc.CreateQuestion(req)
	s.ErrorIs(err, util.ErrInvalidAnswerOption)
}

func (s *TheoryAdminServiceSuite) TestCreateQuestionRejectsBadDifficulty() {
	req := s.validRequest()
	req.Difficulty = "brutal"

	_, err := s.svc.CreateQuestion(req)
	s.Error(err)
}

func (s *TheoryAdminServiceSuite) TestCreateQuestionUnknownCategory() {
	req := s.validRequest()
	req.CategoryID = 9999

	_, err := s.svc.CreateQuestion(req)
	s.ErrorIs(err, util.ErrCategoryNotFound)
}

func (s *TheoryAdminServiceSuite) TestUpdateQuestionKeepsCounters() {
	question, err := s.svc.CreateQuestion(s.validRequest())
	s.Require().NoError(err)
	s.Require().NoError(s.db.Model(question).
		Updates(map[string]interface{}{"times_asked": 12, "times_correct": 9}).Error)

	req := s.validRequest()
	req.Text = "Reworded question"
	updated, err := s.svc.UpdateQuestion(question.ID, req)
	s.Require().NoError(err)

	s.Equal("Reworded question", updated.Text)
	s.Equal(int64(12), updated.TimesAsked)
	s.Equal(int64(9), updated.TimesCorrect)
}

func (s *TheoryAdminServiceSuite) TestSetQuestionActive() {
	question, err := s.svc.CreateQuestion(s.validRequest())
	s.Require().NoError(err)

	s.Require().NoError(s.svc.SetQuestionActive(question.ID, false))

	var q model.TheoryQuestion
	s.Require().NoError(s.db.First(&q, question.ID).Error)
	s.False(q.Active)

	s.ErrorIs(s.svc.SetQuestionActive(9999, false), util.ErrQuestionNotFound)
}

func (s *TheoryAdminServiceSuite) TestListQuestionsFilters() {
	_, err := s.svc.CreateQuestion(s.validRequest())
	s.Require().NoError(err)

	req := s.validRequest()
	req.Difficulty = string(model.DifficultyHard)
	hard, err := s.svc.CreateQuestion(req)
	s.Require().NoError(err)

	questions, total, err := s.svc.ListQuestions(s.alertnessID, string(model.DifficultyHard), true, 1, 20)
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(questions, 1)
	s.Equal(hard.ID, questions[0].ID)
}

func TestTheoryAdminServiceSuite(t *testing.T) {
	suite.Run(t, new(TheoryAdminServiceSuite))
}
