package controller

import (
	"errors"

	"github.com/badoux/checkmail"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bugboard/config"
	"bugboard/models"
	"bugboard/utils"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=100"`
	Role     string `json:"role" validate:"required,oneof=tester team_member"`
	TeamID   *uint  `json:"teamID"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User  *models.User `json:"user"`
	Team  *models.Team `json:"team,omitempty"`
	Token string       `json:"token"`
}

// Register creates an account. Team members must name a team; the user
// row and the membership row are committed in one transaction so a bad
// teamID leaves no user behind.
func Register(c *fiber.Ctx) error {
	var req RegisterRequest
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
	if err := checkmail.ValidateFormat(req.Email); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "email must be a valid email",
		})
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if role == models.RoleTeamMember && req.TeamID == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Team ID is required for Team Member registration",
		})
	}

	// Check if user already exists
	var existingUser models.User
	if err := config.DB.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email already registered",
		})
	}

	user := models.User{
		Email: req.Email,
		Role:  role,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	var team *models.Team
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		if role != models.RoleTeamMember {
			return nil
		}

		var t models.Team
		if err := tx.First(&t, *req.TeamID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrTeamNotFound
			}
			return err
		}
		if err := tx.Create(&models.TeamMember{
			UserID: user.ID,
			TeamID: t.ID,
		}).Error; err != nil {
			return err
		}

		team = &t
		return nil
	})
	if err != nil {
		if errors.Is(err, models.ErrTeamNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Team not found",
			})
		}
		utils.LogError("registration_failed", err, map[string]interface{}{
			"email": req.Email,
		})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error during registration",
		})
	}

	token, err := utils.GenerateJWTToken(&user)
	if err != nil {
		utils.LogError("token_generation_failed", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(AuthResponse{
		User:  &user,
		Team:  team,
		Token: token,
	})
}

func Login(c *fiber.Ctx) error {
	var req LoginRequest
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

	// Same message for unknown email and wrong password
	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}
	if !user.CheckPassword(req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	token, err := utils.GenerateJWTToken(&user)
	if err != nil {
		utils.LogError("token_generation_failed", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(AuthResponse{
		User:  &user,
		Token: token,
	})
}
