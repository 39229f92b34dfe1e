package model

// TheoryCategory is one of the official theory-test topic groupings.
type TheoryCategory struct {
	BaseModel
	Code         string `gorm:"size:100;uniqueIndex" json:"code"`
	Name         string `gorm:"size:255;not null" json:"name"`
	Description  string `gorm:"type:text" json:"description"`
	DisplayOrder int    `gorm:"default:0" json:"displayOrder"`
	Active       bool   `gorm:"default:true" json:"active"`
}

func (TheoryCategory) TableName() string {
	return "theory_categories"
}
