// Seeds demo accounts, courses and a starter question bank.
//
// Intended for a fresh local database, after running the server once with
// -migrate-only. Existing rows with the same emails are left alone.
//
// Usage: go run scripts/seed_demo.go

package main

import (
	"driveschool_backend/internal/config"
	"driveschool_backend/internal/model"
	"driveschool_backend/pkg/database"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("Failed to parse config file: %v", err)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	seedUsers(db)
	seedCourses(db)
	seedQuestions(db)

	log.Println("Demo data seeded")
}

func seedUsers(db *gorm.DB) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	users := []model.User{
		{Name: "Admin", Email: "admin@driveschool.example", Password: string(hash), Role: model.Admin},
		{Name: "Ian Taylor", Email: "ian@driveschool.example", Password: string(hash), Role: model.Instructor,
			ADINumber: "123456", HourlyRate: 38, Transmission: "manual", Postcode: "LS1 4AP"},
		{Name: "Priya Shah", Email: "priya@driveschool.example", Password: string(hash), Role: model.Instructor,
			ADINumber: "654321", HourlyRate: 42, Transmission: "auto", Postcode: "LS6 2UE"},
		{Name: "Sam Walker", Email: "sam@example.com", Password: string(hash), Role: model.Student, Postcode: "LS2 9JT"},
	}

	for _, u := range users {
		var count int64
		db.Model(&model.User{}).Where("email = ?", u.Email).Count(&count)
		if count == 0 {
			if err := db.Create(&u).Error; err != nil {
				log.Printf("Failed to create user %s: %v", u.Email, err)
			}
		}
	}
}

func seedCourses(db *gorm.DB) {
	var count int64
	db.Model(&model.Course{}).Count(&count)
	if count > 0 {
		return
	}

	courses := []model.Course{
		{Name: "Beginner Package", Description: "10 hours of lessons for new drivers.", LessonCount: 10, Price: 350, Transmission: "manual", Active: true},
		{Name: "Intensive Course", Description: "30 hours over two weeks, test booking included.", LessonCount: 30, Price: 990, Transmission: "manual", Active: true},
		{Name: "Automatic Refresher", Description: "5 hours for licence holders switching to automatic.", LessonCount: 5, Price: 195, Transmission: "auto", Active: true},
	}
	for _, c := range courses {
		db.Create(&c)
	}
}

func seedQuestions(db *gorm.DB) {
	var count int64
	db.Model(&model.TheoryQuestion{}).Count(&count)
	if count > 0 {
		return
	}

	categoryID := func(code string) uint {
		var cat model.TheoryCategory
		if err := db.Where("code = ?", code).First(&cat).Error; err != nil {
			log.Fatalf("Category %q missing, run migrations first: %v", code, err)
		}
		return cat.ID
	}

	questions := []model.TheoryQuestion{
		{
			CategoryID:    categoryID("alertness"),
			Difficulty:    model.DifficultyEasy,
			Text:          "What should you do before making a U-turn?",
			OptionA:       "Give an arm signal as well as using your indicators",
			OptionB:       "Check road markings to see that U-turns are permitted",
			OptionC:       "Look over your shoulder for a final check",
			OptionD:       "Select a higher gear than normal",
			CorrectAnswer: "C",
			Explanation:   "Mirrors do not cover every angle, so a final shoulder check is essential.",
			OfficialRef:   "HC r159",
		},
		{
			CategoryID:    categoryID("safety-margins"),
			Difficulty:    model.DifficultyMedium,
			Text:          "In good conditions, what is the typical stopping distance at 70 mph?",
			OptionA:       "53 metres",
			OptionB:       "60 metres",
			OptionC:       "73 metres",
			OptionD:       "96 metres",
			CorrectAnswer: "D",
			Explanation:   "At 70 mph the typical stopping distance is 96 metres, about 24 car lengths.",
			OfficialRef:   "HC r126",
		},
		{
			CategoryID:    categoryID("motorway-rules"),
			Difficulty:    model.DifficultyMedium,
			Text:          "When may you use the right-hand lane of a three-lane motorway?",
			OptionA:       "When you are turning right",
			OptionB:       "When overtaking slower traffic",
			OptionC:       "When driving at the speed limit",
			OptionD:       "When towing a trailer",
			CorrectAnswer: "B",
			Explanation:   "The right-hand lane is for overtaking only; return left when it is safe.",
			OfficialRef:   "HC r264",
		},
		{
			CategoryID:    categoryID("road-and-traffic-signs"),
			Difficulty:    model.DifficultyHard,
			Text:          "What does a circular road sign with a blue background usually tell you?",
			OptionA:       "To give an order you must follow",
			OptionB:       "To warn of a hazard ahead",
			OptionC:       "A route for ring-road traffic",
			OptionD:       "Tourist information",
			CorrectAnswer: "A",
			Explanation:   "Blue circles generally give a positive instruction, such as turn left ahead.",
			OfficialRef:   "Know Your Traffic Signs",
		},
		{
			CategoryID:    categoryID("vulnerable-road-users"),
			Difficulty:    model.DifficultyEasy,
			Text:          "How much room should you leave when overtaking a cyclist at speeds up to 30 mph?",
			OptionA:       "At least 0.5 metres",
			OptionB:       "At least 1 metre",
			OptionC:       "At least 1.5 metres",
			OptionD:       "At least 3 metres",
			CorrectAnswer: "C",
			Explanation:   "Leave at least 1.5 metres when overtaking cyclists at up to 30 mph.",
			OfficialRef:   "HC r163",
		},
	}

	for _, q := range questions {
		db.Create(&q)
	}
}
