package model

// Setting is a key/value admin setting, cached in Redis.
type Setting struct {
	BaseModel
	Key         string `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value       string `gorm:"type:text" json:"value"`
	Description string `gorm:"size:255" json:"description"`
}

func (Setting) TableName() string {
	return "settings"
}

const (
	SettingMaintenanceMode = "maintenance_mode"
	SettingSchoolName      = "school_name"
	SettingContactEmail    = "contact_email"
)
