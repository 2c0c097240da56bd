package config

import (
	"log"

	"gorm.io/gorm"

	"bugboard/models"
)

var defaultTeams = []models.Team{
	{
		Name:        "Web Development Team",
		Description: "Frontend and Backend development team",
		Repository:  "https://github.com/org/web-project",
	},
	{
		Name:        "Mobile Development Team",
		Description: "iOS and Android development team",
		Repository:  "https://github.com/org/mobile-project",
	},
	{
		Name:        "DevOps Team",
		Description: "Infrastructure and deployment team",
		Repository:  "https://github.com/org/devops-project",
	},
	{
		Name:        "QA Team",
		Description: "Quality Assurance and Testing team",
		Repository:  "https://github.com/org/qa-project",
	},
}

// SeedTeams creates the default teams if they don't exist yet.
func SeedTeams(db *gorm.DB) error {
	for _, team := range defaultTeams {
		err := db.Where(models.Team{Name: team.Name}).
			Attrs(models.Team{Description: team.Description, Repository: team.Repository}).
			FirstOrCreate(&models.Team{}).Error
		if err != nil {
			return err
		}
	}
	log.Println("Teams seeded successfully")
	return nil
}
