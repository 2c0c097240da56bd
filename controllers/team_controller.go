package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bugboard/config"
	"bugboard/models"
	"bugboard/utils"
)

type JoinTeamRequest struct {
	TeamID uint `json:"teamId" validate:"required"`
}

// TeamSummary is the public projection for the unauthenticated listing.
type TeamSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ListTeams returns all teams with their member rosters.
func ListTeams(c *fiber.Ctx) error {
	var teams []models.Team
	if err := config.DB.Preload("Members.User").Order("name ASC").Find(&teams).Error; err != nil {
		utils.LogError("list_teams_failed", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error retrieving teams",
		})
	}
	return c.JSON(teams)
}

// ListTeamsPublic returns id and name only, with no authentication. The
// register page needs the team list before a token exists.
func ListTeamsPublic(c *fiber.Ctx) error {
	var teams []TeamSummary
	if err := config.DB.Model(&models.Team{}).Order("name ASC").Find(&teams).Error; err != nil {
		utils.LogError("list_teams_public_failed", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error retrieving teams",
		})
	}
	return c.JSON(teams)
}

func GetTeam(c *fiber.Ctx) error {
	var team models.Team
	err := config.DB.Preload("Members.User").First(&team, "id = ?", c.Params("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Team not found",
			})
		}
		utils.LogError("get_team_failed", err, map[string]interface{}{
			"team_id": c.Params("id"),
		})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error retrieving team",
		})
	}
	return c.JSON(team)
}

// JoinTeam adds the authenticated user to a team's roster.
func JoinTeam(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var req JoinTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var team models.Team
	if err := config.DB.First(&team, req.TeamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Team not found",
			})
		}
		utils.LogError("join_team_failed", err, map[string]interface{}{
			"team_id": req.TeamID,
		})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error joining team",
		})
	}

	var existing models.TeamMember
	err := config.DB.Where("user_id = ? AND team_id = ?", user.ID, team.ID).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Already a member of this team",
		})
	}

	if err := config.DB.Create(&models.TeamMember{
		UserID: user.ID,
		TeamID: team.ID,
	}).Error; err != nil {
		utils.LogError("join_team_failed", err, map[string]interface{}{
			"team_id": team.ID,
			"user_id": user.ID,
		})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error joining team",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Successfully joined team",
	})
}
