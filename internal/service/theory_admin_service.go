package service

import (
	"context"
	"driveschool_backend/internal/model"
	"driveschool_backend/internal/repository"
	"driveschool_backend/internal/util"
	"fmt"
	"io"
	"strings"

	"gorm.io/gorm"
)

// TheoryAdminService is the content-management side of the question
// bank. Usage counters are never writable from here; they belong to the
// submission path alone.
type TheoryAdminService struct {
	QuestionRepo *repository.TheoryQuestionRepository
	CategoryRepo *repository.TheoryCategoryRepository
	Storage      *StorageService
}

func NewTheoryAdminService(
	questionRepo *repository.TheoryQuestionRepository,
	categoryRepo *repository.TheoryCategoryRepository,
	storage *StorageService,
) *TheoryAdminService {
	return &TheoryAdminService{
		QuestionRepo: questionRepo,
		CategoryRepo: categoryRepo,
		Storage:      storage,
	}
}

type QuestionRequest struct {
	CategoryID    uint   `json:"categoryId" binding:"required"`
	QuestionType  string `json:"questionType"`
	Difficulty    string `json:"difficulty"`
	Text          string `json:"text" binding:"required"`
	OptionA       string `json:"optionA" binding:"required"`
	OptionB       string `json:"optionB" binding:"required"`
	OptionC       string `json:"optionC"`
	OptionD       string `json:"optionD"`
	CorrectAnswer string `json:"correctAnswer" binding:"required"`
	Explanation   string `json:"explanation"`
	OfficialRef   string `json:"officialRef"`
}

func (r *QuestionRequest) validate() error {
	answer := strings.ToUpper(strings.TrimSpace(r.CorrectAnswer))
	switch answer {
	case "A", "B", "C", "D":
		r.CorrectAnswer = answer
	default:
		return util.ErrInvalidAnswerOption
	}

	if r.QuestionType == "" {
		r.QuestionType = string(model.QuestionMultipleChoice)
	}
	if r.Difficulty == "" {
		r.Difficulty = string(model.DifficultyMedium)
	}
	switch model.QuestionDifficulty(r.Difficulty) {
	case model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
	default:
		return fmt.Errorf("unknown difficulty %q", r.Difficulty)
	}
	return nil
}

func (s *TheoryAdminService) CreateQuestion(req QuestionRequest) (*model.TheoryQuestion, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if _, err := s.CategoryRepo.FindByID(req.CategoryID); err != nil {
		return nil, util.ErrCategoryNotFound
	}

	question := &model.TheoryQuestion{
		CategoryID:    req.CategoryID,
		QuestionType:  model.QuestionType(req.QuestionType),
		Difficulty:    model.QuestionDifficulty(req.Difficulty),
		Text:          req.Text,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectAnswer: req.CorrectAnswer,
		Explanation:   req.Explanation,
		OfficialRef:   req.OfficialRef,
		Active:        true,
	}
	if err := s.QuestionRepo.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *TheoryAdminService) UpdateQuestion(id uint, req QuestionRequest) (*model.TheoryQuestion, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	question, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	question.CategoryID = req.CategoryID
	question.QuestionType = model.QuestionType(req.QuestionType)
	question.Difficulty = model.QuestionDifficulty(req.Difficulty)
	question.Text = req.Text
	question.OptionA = req.OptionA
	question.OptionB = req.OptionB
	question.OptionC = req.OptionC
	question.OptionD = req.OptionD
	question.CorrectAnswer = req.CorrectAnswer
	question.Explanation = req.Explanation
	question.OfficialRef = req.OfficialRef

	if err := s.QuestionRepo.Update(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *TheoryAdminService) SetQuestionActive(id uint, active bool) error {
	if _, err := s.QuestionRepo.FindByID(id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrQuestionNotFound
		}
		return err
	}
	return s.QuestionRepo.SetActive(id, active)
}

func (s *TheoryAdminService) ListQuestions(categoryID uint, difficulty string, activeOnly bool, page, limit int) ([]model.TheoryQuestion, int64, error) {
	return s.QuestionRepo.List(categoryID, model.QuestionDifficulty(difficulty), activeOnly, page, limit)
}

func (s *TheoryAdminService) SetCategoryActive(id uint, active bool) error {
	if _, err := s.CategoryRepo.FindByID(id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrCategoryNotFound
		}
		return err
	}
	return s.CategoryRepo.SetActive(id, active)
}

func (s *TheoryAdminService) ListCategories() ([]model.TheoryCategory, error) {
	return s.CategoryRepo.FindAll()
}

// AttachQuestionImage uploads a road-sign diagram and stores its URL on
// the question.
func (s *TheoryAdminService) AttachQuestionImage(ctx context.Context, id uint, filename string, reader io.Reader, size int64, contentType string) (*model.TheoryQuestion, error) {
	question, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	url, err := s.Storage.Upload(ctx, fmt.Sprintf("theory/%d/%s", id, filename), reader, size, contentType)
	if err != nil {
		return nil, err
	}

	question.ImageURL = url
	if err := s.QuestionRepo.Update(question); err != nil {
		return nil, err
	}
	return question, nil
}
