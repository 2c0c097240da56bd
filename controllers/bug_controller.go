package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bugboard/models"
	"bugboard/utils"
)

// BugController owns the bug lifecycle: creation by testers, self
// assignment and status transitions by team members.
type BugController struct {
	DB     *gorm.DB
	Logger *logrus.Logger
}

func NewBugController(db *gorm.DB, logger *logrus.Logger) *BugController {
	return &BugController{
		DB:     db,
		Logger: logger,
	}
}

type CreateBugRequest struct {
	TeamID      uint   `json:"team_id" validate:"required"`
	Severity    string `json:"severity" validate:"required,oneof=low medium high critical"`
	Description string `json:"description" validate:"required,max=1000"`
	CommitLink  string `json:"commit_link" validate:"required,url"`
}

type UpdateBugStatusRequest struct {
	Status        string  `json:"status" validate:"required"`
	FixCommitLink *string `json:"fix_commit_link" validate:"omitempty,url"`
}

// expandUsers preloads the reduced reporter/assignee projections.
func (bc *BugController) expandUsers(db *gorm.DB) *gorm.DB {
	return db.Preload("Reporter").Preload("Assignee")
}

// CreateBug inserts a new open, unassigned bug. Testers only.
func (bc *BugController) CreateBug(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	if user.Role != models.RoleTester {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only testers can create bugs",
		})
	}

	var req CreateBugRequest
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
	severity, err := models.ParseSeverity(req.Severity)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var team models.Team
	if err := bc.DB.First(&team, req.TeamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Team not found",
			})
		}
		return bc.internalError(c, "create_bug_failed", err, "Error creating bug")
	}

	bug := models.Bug{
		TeamID:      team.ID,
		ReporterID:  user.ID,
		Severity:    severity,
		Description: req.Description,
		CommitLink:  req.CommitLink,
		Status:      models.StatusOpen,
	}
	if err := bc.DB.Create(&bug).Error; err != nil {
		return bc.internalError(c, "create_bug_failed", err, "Error creating bug")
	}

	if err := bc.expandUsers(bc.DB).First(&bug, bug.ID).Error; err != nil {
		return bc.internalError(c, "create_bug_failed", err, "Error creating bug")
	}

	bc.Logger.WithFields(logrus.Fields{
		"bug_id":      bug.ID,
		"team_id":     bug.TeamID,
		"reporter_id": bug.ReporterID,
		"severity":    bug.Severity,
	}).Info("bug created")

	return c.Status(fiber.StatusCreated).JSON(bug)
}

// ListTeamBugs returns every bug of a team, reporter and assignee
// expanded. Any authenticated user may read.
func (bc *BugController) ListTeamBugs(c *fiber.Ctx) error {
	var bugs []models.Bug
	err := bc.expandUsers(bc.DB).
		Where("team_id = ?", c.Params("teamId")).
		Find(&bugs).Error
	if err != nil {
		return bc.internalError(c, "list_team_bugs_failed", err, "Error retrieving bugs")
	}
	return c.JSON(bugs)
}

func (bc *BugController) GetBug(c *fiber.Ctx) error {
	var bug models.Bug
	err := bc.expandUsers(bc.DB).First(&bug, "id = ?", c.Params("bugId")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Bug not found",
			})
		}
		return bc.internalError(c, "get_bug_failed", err, "Error retrieving bug")
	}
	return c.JSON(bug)
}

// AssignBug lets a team member claim an unassigned bug. The claim is a
// single conditional update so two concurrent attempts serialize at the
// database: one sees a row affected, the other gets zero and the
// already-assigned rejection. Never read-then-write here.
func (bc *BugController) AssignBug(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	if user.Role != models.RoleTeamMember {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only team members can assign bugs",
		})
	}

	var bug models.Bug
	if err := bc.DB.First(&bug, "id = ?", c.Params("bugId")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Bug not found",
			})
		}
		return bc.internalError(c, "assign_bug_failed", err, "Error assigning bug")
	}

	res := bc.DB.Model(&models.Bug{}).
		Where("id = ? AND assignee_id IS NULL", bug.ID).
		Updates(map[string]interface{}{
			"assignee_id": user.ID,
			"status":      models.StatusInProgress,
		})
	if res.Error != nil {
		return bc.internalError(c, "assign_bug_failed", res.Error, "Error assigning bug")
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Bug is already assigned",
		})
	}

	if err := bc.expandUsers(bc.DB).First(&bug, bug.ID).Error; err != nil {
		return bc.internalError(c, "assign_bug_failed", err, "Error assigning bug")
	}

	bc.Logger.WithFields(logrus.Fields{
		"bug_id":      bug.ID,
		"assignee_id": user.ID,
	}).Info("bug assigned")

	return c.JSON(bug)
}

// UpdateBugStatus moves an assigned bug forward through the lifecycle,
// optionally attaching the fix commit. Only the recorded assignee may
// transition, and only in the open -> in_progress -> resolved -> closed
// direction.
func (bc *BugController) UpdateBugStatus(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	if user.Role != models.RoleTeamMember {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only team members can update bug status",
		})
	}

	var req UpdateBugStatusRequest
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
	status, err := models.ParseStatus(req.Status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var bug models.Bug
	if err := bc.DB.First(&bug, "id = ?", c.Params("bugId")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Bug not found",
			})
		}
		return bc.internalError(c, "update_bug_failed", err, "Error updating bug")
	}

	if bug.AssigneeID == nil || *bug.AssigneeID != user.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only the assigned team member can update this bug",
		})
	}
	if !bug.Status.CanTransitionTo(status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": models.ErrInvalidTransition.Error(),
		})
	}

	updates := map[string]interface{}{"status": status}
	// An existing fix link is never cleared by omission
	if req.FixCommitLink != nil {
		updates["fix_commit_link"] = *req.FixCommitLink
	}
	if err := bc.DB.Model(&bug).Updates(updates).Error; err != nil {
		return bc.internalError(c, "update_bug_failed", err, "Error updating bug")
	}

	if err := bc.expandUsers(bc.DB).First(&bug, bug.ID).Error; err != nil {
		return bc.internalError(c, "update_bug_failed", err, "Error updating bug")
	}

	bc.Logger.WithFields(logrus.Fields{
		"bug_id": bug.ID,
		"status": bug.Status,
	}).Info("bug status updated")

	return c.JSON(bug)
}

// internalError logs the failure with full detail and returns a generic
// message so internals never leak to the caller.
func (bc *BugController) internalError(c *fiber.Ctx, errorType string, err error, msg string) error {
	utils.LogError(errorType, err, map[string]interface{}{
		"path": c.Path(),
	})
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": msg,
	})
}
