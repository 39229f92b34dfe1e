package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"driveschool_backend/internal/config"
	"driveschool_backend/internal/controller"
	"driveschool_backend/internal/model"
	"driveschool_backend/internal/repository"
	"driveschool_backend/internal/service"
	"driveschool_backend/internal/testutil"
	"driveschool_backend/internal/util"
	"driveschool_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TheoryControllerSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func (s *TheoryControllerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()

	s.db = testutil.NewTestDB(s.T())

	cfg := &config.Config{}
	cfg.Theory.ApplyDefaults()

	svc := service.NewTheoryService(
		repository.NewTheoryCategoryRepository(s.db),
		repository.NewTheoryQuestionRepository(s.db),
		repository.NewTheoryProgressRepository(s.db),
		cfg,
		s.db,
	)
	ctrl := controller.NewTheoryController(svc)

	s.router = gin.New()
	s.router.POST("/api/theory/categories", func(c *gin.Context) {
		c.Set("user", &util.Claims{UserID: 1, Role: model.Student})
	}, ctrl.StartSession)
}

func (s *TheoryControllerSuite) seedQuestion() {
	q := model.TheoryQuestion{
		CategoryID:    testutil.CategoryID(s.T(), s.db, "alertness"),
		Difficulty:    model.DifficultyMedium,
		Text:          "What should you do before overtaking?",
		OptionA:       "a",
		OptionB:       "b",
		OptionC:       "c",
		OptionD:       "d",
		CorrectAnswer: "B",
		Active:        true,
	}
	s.Require().NoError(s.db.Create(&q).Error)
}

func (s *TheoryControllerSuite) startSession(body string) (*httptest.ResponseRecorder, util.Response) {
	req := httptest.NewRequest(http.MethodPost, "/api/theory/categories", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var envelope util.Response
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func (s *TheoryControllerSuite) TestStartSessionMalformedCategoryIsBadRequest() {
	s.seedQuestion()

	rec, envelope := s.startSession(`{"categoryId":"abc"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(http.StatusBadRequest, envelope.Code)
}

func (s *TheoryControllerSuite) TestStartSessionUnknownDifficultyIsBadRequest() {
	s.seedQuestion()

	rec, _ := s.startSession(`{"difficulty":"impossible"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *TheoryControllerSuite) TestStartSessionUnknownCategoryIsNotFound() {
	s.seedQuestion()

	rec, _ := s.startSession(`{"categoryId":"9999"}`)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *TheoryControllerSuite) TestStartSessionEmptyPoolIsNotFound() {
	rec, _ := s.startSession(`{}`)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *TheoryControllerSuite) TestStartSessionStorageFailureIsInternal() {
	// A broken question store must surface as 500, never as a 400
	// carrying driver error text.
	s.Require().NoError(s.db.Migrator().DropTable(&model.TheoryQuestion{}))

	rec, envelope := s.startSession(`{}`)
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Equal("Internal server error", envelope.Message)
}

func TestTheoryControllerSuite(t *testing.T) {
	suite.Run(t, new(TheoryControllerSuite))
}
