package service

import (
	"driveschool_backend/internal/config"
	"driveschool_backend/internal/model"
	"driveschool_backend/internal/repository"
	"driveschool_backend/internal/util"
	"driveschool_backend/pkg/monitoring"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"
)

// TheoryService covers the practice module: the category registry, the
// session sampler and answer submission.
type TheoryService struct {
	CategoryRepo *repository.TheoryCategoryRepository
	QuestionRepo *repository.TheoryQuestionRepository
	ProgressRepo *repository.TheoryProgressRepository
	DB           *gorm.DB

	mu     sync.Mutex
	rng    *rand.Rand
	policy config.TheoryConfig
}

func NewTheoryService(
	categoryRepo *repository.TheoryCategoryRepository,
	questionRepo *repository.TheoryQuestionRepository,
	progressRepo *repository.TheoryProgressRepository,
	cfg *config.Config,
	db *gorm.DB,
) *TheoryService {
	return &TheoryService{
		CategoryRepo: categoryRepo,
		QuestionRepo: questionRepo,
		ProgressRepo: progressRepo,
		DB:           db,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		policy:       cfg.Theory,
	}
}

// SetRandSource swaps the sampling source. Tests use a seeded source to
// make sessions deterministic.
func (s *TheoryService) SetRandSource(src rand.Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng = rand.New(src)
}

// UpdatePolicy applies reloaded config without a restart.
func (s *TheoryService) UpdatePolicy(cfg *config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policy = cfg.Theory
}

func (s *TheoryService) currentPolicy() config.TheoryConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.policy
}

// ListCategories returns active categories in display order. With a
// user id, each carries that student's rollup; nil when not practised.
func (s *TheoryService) ListCategories(userID uint) ([]model.CategoryWithProgress, error) {
	categories, err := s.CategoryRepo.FindActiveOrdered()
	if err != nil {
		return nil, err
	}

	var progress map[uint]model.TheoryProgress
	if userID != 0 {
		progress, err = s.ProgressRepo.FindByUser(userID)
		if err != nil {
			return nil, err
		}
	}

	result := make([]model.CategoryWithProgress, 0, len(categories))
	for _, category := range categories {
		entry := model.CategoryWithProgress{TheoryCategory: category}
		if p, ok := progress[category.ID]; ok {
			entry.Progress = summarize(&p)
		}
		result = append(result, entry)
	}
	return result, nil
}

// SessionRequest are the practice-session filters. CategoryID "all" or
// empty means unfiltered, likewise Difficulty.
type SessionRequest struct {
	CategoryID    string `json:"categoryId"`
	QuestionCount int    `json:"questionCount"`
	Difficulty    string `json:"difficulty"`
}

// StartSession draws a uniform random sample, without replacement, from
// the active questions matching the filters. When fewer questions exist
// than requested the whole eligible pool is returned; an empty pool is
// an error, never a silently empty session.
func (s *TheoryService) StartSession(userID uint, req SessionRequest) (*model.PracticeSession, error) {
	policy := s.currentPolicy()

	count := req.QuestionCount
	if count <= 0 {
		count = policy.DefaultQuestionCount
	}

	var categoryID uint
	categoryRef := strings.TrimSpace(req.CategoryID)
	if categoryRef != "" && !strings.EqualFold(categoryRef, "all") {
		id, err := strconv.ParseUint(categoryRef, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", util.ErrInvalidCategoryRef, categoryRef)
		}
		categoryID = uint(id)
		category, err := s.CategoryRepo.FindByID(categoryID)
		if err != nil || !category.Active {
			return nil, util.ErrCategoryNotFound
		}
	}

	var difficulty model.QuestionDifficulty
	if req.Difficulty != "" && !strings.EqualFold(req.Difficulty, "all") {
		difficulty = model.QuestionDifficulty(strings.ToLower(req.Difficulty))
		switch difficulty {
		case model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
		default:
			return nil, fmt.Errorf("%w: %q", util.ErrInvalidDifficulty, req.Difficulty)
		}
	}

	pool, err := s.QuestionRepo.FindEligible(categoryID, difficulty)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, util.ErrNoQuestionsMatch
	}

	questions := s.sample(pool, count)

	session := &model.PracticeSession{
		SessionID:      fmt.Sprintf("%d-%d-%s", time.Now().UnixMilli(), userID, model.GenerateUUID()[:8]),
		Questions:      questions,
		TotalQuestions: len(questions),
		TimeLimit:      len(questions) * policy.SecondsPerQuestion,
		CategoryID:     categoryRef,
	}
	if session.CategoryID == "" {
		session.CategoryID = "all"
	}
	return session, nil
}

// sample shuffles a copy of the pool and takes the first min(count, len)
// entries, so the draw is without replacement and the returned order is
// itself random.
func (s *TheoryService) sample(pool []model.TheoryQuestion, count int) []model.TheoryQuestion {
	shuffled := make([]model.TheoryQuestion, len(pool))
	copy(shuffled, pool)

	s.mu.Lock()
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	s.mu.Unlock()

	if count < len(shuffled) {
		shuffled = shuffled[:count]
	}
	return shuffled
}

// AnswerRequest is one submitted answer. CategoryID is denormalized on
// the wire; the question's own category is authoritative.
type AnswerRequest struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
	CategoryID uint   `json:"categoryId"`
}

// SubmitAnswer checks the answer server-side, then applies both counter
// updates inside one transaction: the question usage counters and the
// per-category progress upsert. Both are single-statement increments,
// so concurrent submissions by the same student cannot lose updates.
func (s *TheoryService) SubmitAnswer(userID uint, req AnswerRequest) (*model.AnswerResult, error) {
	answer := strings.ToUpper(strings.TrimSpace(req.Answer))
	switch answer {
	case "A", "B", "C", "D":
	default:
		return nil, util.ErrInvalidAnswerOption
	}

	question, err := s.QuestionRepo.FindActiveByID(req.QuestionID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	correct := answer == question.CorrectAnswer
	policy := s.currentPolicy()
	readiness := repository.ReadinessPolicy{
		MinAttempts: policy.ReadinessMinAttempts,
		MinAccuracy: policy.ReadinessMinAccuracy,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		questionRepo := &repository.TheoryQuestionRepository{DB: tx}
		if err := questionRepo.RecordAnswer(question.ID, correct); err != nil {
			return err
		}
		progressRepo := &repository.TheoryProgressRepository{DB: tx}
		return progressRepo.RecordAttempt(userID, question.CategoryID, correct, readiness)
	})
	if err != nil {
		return nil, err
	}

	monitoring.TheoryAnswerCounter.WithLabelValues(fmt.Sprintf("%t", correct)).Inc()

	progress, err := s.ProgressRepo.FindByUserAndCategory(userID, question.CategoryID)
	if err != nil {
		return nil, err
	}

	return &model.AnswerResult{
		Correct:       correct,
		CorrectAnswer: question.CorrectAnswer,
		Explanation:   question.Explanation,
		Progress:      summarize(progress),
	}, nil
}

func summarize(p *model.TheoryProgress) *model.ProgressSummary {
	if p == nil {
		return nil
	}
	return &model.ProgressSummary{
		QuestionsAttempted: p.QuestionsAttempted,
		QuestionsCorrect:   p.QuestionsCorrect,
		AccuracyPercentage: p.AccuracyPercentage,
		IsReadyForTest:     p.IsReadyForTest,
		LastPracticeDate:   p.LastPracticeDate,
	}
}
