package service

import (
	"context"
	"driveschool_backend/internal/model"
	"driveschool_backend/internal/repository"
	"time"

	"github.com/go-redis/redis/v8"
)

const settingCacheTTL = 5 * time.Minute

// SettingService is the admin key/value store, read through a Redis
// cache so the maintenance-mode gate does not hit MySQL on every
// request.
type SettingService struct {
	SettingRepo *repository.SettingRepository
	Redis       *redis.Client
}

func NewSettingService(settingRepo *repository.SettingRepository, rdb *redis.Client) *SettingService {
	return &SettingService{
		SettingRepo: settingRepo,
		Redis:       rdb,
	}
}

func settingKey(key string) string {
	return "setting:" + key
}

func (s *SettingService) Get(ctx context.Context, key string) (string, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, settingKey(key)).Result(); err == nil {
			return cached, nil
		}
	}

	setting, err := s.SettingRepo.FindByKey(key)
	if err != nil {
		return "", err
	}

	if s.Redis != nil {
		s.Redis.Set(ctx, settingKey(key), setting.Value, settingCacheTTL)
	}
	return setting.Value, nil
}

func (s *SettingService) Update(ctx context.Context, key, value string) error {
	if err := s.SettingRepo.Upsert(key, value); err != nil {
		return err
	}
	if s.Redis != nil {
		s.Redis.Del(ctx, settingKey(key))
	}
	return nil
}

func (s *SettingService) All() ([]model.Setting, error) {
	return s.SettingRepo.FindAll()
}

// MaintenanceOn reports the maintenance-mode flag; errors read as off
// so a cache or DB hiccup cannot lock everyone out.
func (s *SettingService) MaintenanceOn(ctx context.Context) bool {
	value, err := s.Get(ctx, model.SettingMaintenanceMode)
	if err != nil {
		return false
	}
	return value == "true" || value == "1"
}
