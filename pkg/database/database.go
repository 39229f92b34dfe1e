package database

import (
	"driveschool_backend/internal/config"
	"driveschool_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// Migrate runs AutoMigrate and seeds reference data. Split out so tests
// can run it against their own database.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.TheoryCategory{},
		&model.TheoryQuestion{},
		&model.TheoryProgress{},
		&model.Course{},
		&model.CourseEnrolment{},
		&model.Booking{},
		&model.Message{},
		&model.Setting{},
	)
	if err != nil {
		return err
	}

	seedTheoryCategories(db)
	seedSettings(db)
	return nil
}

// The official DVSA topic groupings. Seeded once; admins only toggle the
// active flag, rows are never hard-deleted.
func seedTheoryCategories(db *gorm.DB) {
	var count int64
	db.Model(&model.TheoryCategory{}).Count(&count)
	if count > 0 {
		return
	}

	categories := []model.TheoryCategory{
		{Code: "alertness", Name: "Alertness", DisplayOrder: 1, Active: true},
		{Code: "attitude", Name: "Attitude", DisplayOrder: 2, Active: true},
		{Code: "safety-and-your-vehicle", Name: "Safety and Your Vehicle", DisplayOrder: 3, Active: true},
		{Code: "safety-margins", Name: "Safety Margins", DisplayOrder: 4, Active: true},
		{Code: "hazard-awareness", Name: "Hazard Awareness", DisplayOrder: 5, Active: true},
		{Code: "vulnerable-road-users", Name: "Vulnerable Road Users", DisplayOrder: 6, Active: true},
		{Code: "other-types-of-vehicle", Name: "Other Types of Vehicle", DisplayOrder: 7, Active: true},
		{Code: "vehicle-handling", Name: "Vehicle Handling", DisplayOrder: 8, Active: true},
		{Code: "motorway-rules", Name: "Motorway Rules", DisplayOrder: 9, Active: true},
		{Code: "rules-of-the-road", Name: "Rules of the Road", DisplayOrder: 10, Active: true},
		{Code: "road-and-traffic-signs", Name: "Road and Traffic Signs", DisplayOrder: 11, Active: true},
		{Code: "documents", Name: "Documents", DisplayOrder: 12, Active: true},
		{Code: "incidents-accidents-emergencies", Name: "Incidents, Accidents and Emergencies", DisplayOrder: 13, Active: true},
		{Code: "vehicle-loading", Name: "Vehicle Loading", DisplayOrder: 14, Active: true},
		{Code: "case-studies", Name: "Case Studies", DisplayOrder: 15, Active: true},
	}
	for _, c := range categories {
		db.Create(&c)
	}
}

func seedSettings(db *gorm.DB) {
	defaults := []model.Setting{
		{Key: model.SettingMaintenanceMode, Value: "false", Description: "When true, non-admin API access returns 503"},
		{Key: model.SettingSchoolName, Value: "DriveSchool", Description: "Display name used in emails"},
		{Key: model.SettingContactEmail, Value: "office@driveschool.example", Description: "Reply-to address for notifications"},
	}
	for _, s := range defaults {
		var count int64
		db.Model(&model.Setting{}).Where("`key` = ?", s.Key).Count(&count)
		if count == 0 {
			db.Create(&s)
		}
	}
}
