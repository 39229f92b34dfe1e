package repository

import (
	"driveschool_backend/internal/model"

	"gorm.io/gorm"
)

type TheoryCategoryRepository struct {
	DB *gorm.DB
}

func NewTheoryCategoryRepository(db *gorm.DB) *TheoryCategoryRepository {
	return &TheoryCategoryRepository{DB: db}
}

// FindActiveOrdered returns active categories in display order, ties
// broken by name.
func (r *TheoryCategoryRepository) FindActiveOrdered() ([]model.TheoryCategory, error) {
	var categories []model.TheoryCategory
	err := r.DB.Where("active = ?", true).
		Order("display_order ASC, name ASC").
		Find(&categories).Error
	return categories, err
}

func (r *TheoryCategoryRepository) FindAll() ([]model.TheoryCategory, error) {
	var categories []model.TheoryCategory
	err := r.DB.Order("display_order ASC, name ASC").Find(&categories).Error
	return categories, err
}

func (r *TheoryCategoryRepository) FindByID(id uint) (*model.TheoryCategory, error) {
	var category model.TheoryCategory
	err := r.DB.First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *TheoryCategoryRepository) FindByCode(code string) (*model.TheoryCategory, error) {
	var category model.TheoryCategory
	err := r.DB.Where("code = ?", code).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// SetActive toggles the active flag. Categories are never hard-deleted.
func (r *TheoryCategoryRepository) SetActive(id uint, active bool) error {
	return r.DB.Model(&model.TheoryCategory{}).
		Where("id = ?", id).
		Update("active", active).Error
}

func (r *TheoryCategoryRepository) Counts() (total, active int64, err error) {
	if err = r.DB.Model(&model.TheoryCategory{}).Count(&total).Error; err != nil {
		return
	}
	err = r.DB.Model(&model.TheoryCategory{}).Where("active = ?", true).Count(&active).Error
	return
}
