package service

import (
	"driveschool_backend/internal/config"
	"driveschool_backend/internal/model"
	"driveschool_backend/internal/repository"
	"driveschool_backend/internal/util"
	"sync"
	"time"
)

// TheoryStatsService computes the admin dashboard rollups. Everything
// here is a pure read of current question and progress state, safe to
// recompute on every request.
type TheoryStatsService struct {
	QuestionRepo *repository.TheoryQuestionRepository
	CategoryRepo *repository.TheoryCategoryRepository

	mu     sync.Mutex
	policy config.TheoryConfig
}

const (
	rankingSize      = 10
	recentWindowDays = 30
)

func NewTheoryStatsService(
	questionRepo *repository.TheoryQuestionRepository,
	categoryRepo *repository.TheoryCategoryRepository,
	cfg *config.Config,
) *TheoryStatsService {
	return &TheoryStatsService{
		QuestionRepo: questionRepo,
		CategoryRepo: categoryRepo,
		policy:       cfg.Theory,
	}
}

func (s *TheoryStatsService) UpdatePolicy(cfg *config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policy = cfg.Theory
}

func (s *TheoryStatsService) Stats() (*model.TheoryStats, error) {
	s.mu.Lock()
	minAsked := s.policy.ChallengingMinAsked
	s.mu.Unlock()

	totalQuestions, activeQuestions, err := s.QuestionRepo.Counts()
	if err != nil {
		return nil, err
	}
	totalCategories, activeCategories, err := s.CategoryRepo.Counts()
	if err != nil {
		return nil, err
	}
	recent, err := s.QuestionRepo.CountCreatedSince(time.Now().AddDate(0, 0, -recentWindowDays))
	if err != nil {
		return nil, err
	}

	difficulty, err := s.QuestionRepo.CountByDifficulty()
	if err != nil {
		return nil, err
	}
	questionType, err := s.QuestionRepo.CountByType()
	if err != nil {
		return nil, err
	}

	categoryStats, err := s.categoryStats()
	if err != nil {
		return nil, err
	}

	challenging, err := s.QuestionRepo.FindChallenging(minAsked, rankingSize)
	if err != nil {
		return nil, err
	}
	popular, err := s.QuestionRepo.FindPopular(rankingSize)
	if err != nil {
		return nil, err
	}

	return &model.TheoryStats{
		Overview: model.TheoryOverview{
			TotalQuestions:   totalQuestions,
			ActiveQuestions:  activeQuestions,
			TotalCategories:  totalCategories,
			ActiveCategories: activeCategories,
			RecentQuestions:  recent,
		},
		DifficultyDistribution:   difficulty,
		QuestionTypeDistribution: questionType,
		CategoryStats:            categoryStats,
		ChallengingQuestions:     toQuestionStats(challenging),
		PopularQuestions:         toQuestionStats(popular),
	}, nil
}

// categoryStats joins the per-category aggregates onto the registry so
// categories without questions still appear with zeroes.
func (s *TheoryStatsService) categoryStats() ([]model.CategoryStats, error) {
	categories, err := s.CategoryRepo.FindAll()
	if err != nil {
		return nil, err
	}
	aggregates, err := s.QuestionRepo.AggregateByCategory()
	if err != nil {
		return nil, err
	}

	stats := make([]model.CategoryStats, 0, len(categories))
	for _, category := range categories {
		entry := aggregates[category.ID]
		entry.CategoryID = category.ID
		entry.Code = category.Code
		entry.Name = category.Name
		if entry.TotalAttempts > 0 {
			entry.AverageAccuracy = util.Round2(float64(entry.TotalCorrect) * 100 / float64(entry.TotalAttempts))
		}
		stats = append(stats, entry)
	}
	return stats, nil
}

func toQuestionStats(questions []model.TheoryQuestion) []model.QuestionStat {
	stats := make([]model.QuestionStat, 0, len(questions))
	for _, q := range questions {
		stats = append(stats, model.QuestionStat{
			QuestionID: q.ID,
			Text:       q.Text,
			CategoryID: q.CategoryID,
			TimesAsked: q.TimesAsked,
			Accuracy:   util.Round2(q.AccuracyPercent()),
		})
	}
	return stats
}
