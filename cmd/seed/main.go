package main

import (
	"log"
	"os"

	"skillswap-be/internal/entity"
	"skillswap-be/internal/model"
	"skillswap-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	Username string
	FullName string
	Email    string
	Bio      string
	Skills   []model.Skill
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding demo users and skills")

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: Failed to hash seed password: %v", err)
	}

	users := []seedUser{
		{
			Username: "alice",
			FullName: "Alice Hartono",
			Email:    "alice@example.com",
			Bio:      "Guitarist and language nerd, happy to trade lessons.",
			Skills: []model.Skill{
				{Name: "Acoustic Guitar", Category: string(entity.CategoryMusic), IsTeaching: true, Proficiency: string(entity.ProficiencyAdvanced)},
				{Name: "Spanish", Category: string(entity.CategoryLanguages), IsTeaching: false, Proficiency: string(entity.ProficiencyBeginner)},
			},
		},
		{
			Username: "bob",
			FullName: "Bob Siregar",
			Email:    "bob@example.com",
			Bio:      "Backend developer trying to pick up photography.",
			Skills: []model.Skill{
				{Name: "Go Programming", Category: string(entity.CategoryProgramming), IsTeaching: true, Proficiency: string(entity.ProficiencyExpert)},
				{Name: "Street Photography", Category: string(entity.CategoryPhotography), IsTeaching: false, Proficiency: string(entity.ProficiencyBeginner)},
			},
		},
		{
			Username: "carol",
			FullName: "Carol Wijaya",
			Email:    "carol@example.com",
			Bio:      "Brand designer, writes essays on the side.",
			Skills: []model.Skill{
				{Name: "UI Design", Category: string(entity.CategoryDesign), IsTeaching: true, Proficiency: string(entity.ProficiencyAdvanced)},
				{Name: "Creative Writing", Category: string(entity.CategoryWriting), IsTeaching: false, Proficiency: string(entity.ProficiencyIntermediate)},
			},
		},
	}

	for _, su := range users {
		bio := su.Bio
		user := model.User{
			Username:     su.Username,
			PasswordHash: string(hash),
			FullName:     su.FullName,
			Email:        su.Email,
			Bio:          &bio,
		}

		err := db.Where(model.User{Username: su.Username}).FirstOrCreate(&user).Error
		if err != nil {
			color.Red("Failed to seed user %s: %v", su.Username, err)
			continue
		}

		for _, skill := range su.Skills {
			skill.UserId = user.Id
			err := db.Where(model.Skill{UserId: user.Id, Name: skill.Name}).
				Attrs(skill).
				FirstOrCreate(&model.Skill{}).Error
			if err != nil {
				color.Red("Failed to seed skill %s for %s: %v", skill.Name, su.Username, err)
			}
		}

		color.Green("Seeded %s (%d skills)", su.Username, len(su.Skills))
	}

	var total int64
	if err := db.Model(&model.User{}).Count(&total).Error; err == nil {
		color.Cyan("Done. %d users in database", total)
	}
}
