package models

import "time"

type BugSeverity string
type BugStatus string

const (
	SeverityLow      BugSeverity = "low"
	SeverityMedium   BugSeverity = "medium"
	SeverityHigh     BugSeverity = "high"
	SeverityCritical BugSeverity = "critical"

	StatusOpen       BugStatus = "open"
	StatusInProgress BugStatus = "in_progress"
	StatusResolved   BugStatus = "resolved"
	StatusClosed     BugStatus = "closed"
)

// UserRef is the reduced projection of a user attached to bug reads.
type UserRef struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

func (UserRef) TableName() string { return "users" }

// Bug is a defect report. ReporterID is set once at creation by a
// tester; AssigneeID goes from null to a single value exactly once.
type Bug struct {
	ID            uint        `gorm:"primarykey" json:"id"`
	TeamID        uint        `gorm:"not null;index" json:"team_id"`
	ReporterID    uint        `gorm:"not null" json:"reporter_id"`
	AssigneeID    *uint       `json:"assignee_id"`
	Severity      BugSeverity `gorm:"type:varchar(16);not null" json:"severity"`
	Description   string      `gorm:"size:1000;not null" json:"description"`
	CommitLink    string      `gorm:"not null" json:"commit_link"`
	FixCommitLink *string     `json:"fix_commit_link"`
	Status        BugStatus   `gorm:"type:varchar(16);not null;default:'open'" json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`

	Reporter UserRef  `gorm:"foreignKey:ReporterID" json:"reporter"`
	Assignee *UserRef `gorm:"foreignKey:AssigneeID" json:"assignee"`
}

// statusRank orders the lifecycle chain open -> in_progress -> resolved
// -> closed. Closed is terminal.
var statusRank = map[BugStatus]int{
	StatusOpen:       0,
	StatusInProgress: 1,
	StatusResolved:   2,
	StatusClosed:     3,
}

// CanTransitionTo reports whether next is a forward move from s. The
// original tracker accepted any string once ownership passed; the closed
// enumeration with forward-only ordering is a deliberate hardening.
func (s BugStatus) CanTransitionTo(next BugStatus) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to > from
}

// ParseStatus validates a status value coming in from the API.
func ParseStatus(s string) (BugStatus, error) {
	if _, ok := statusRank[BugStatus(s)]; !ok {
		return "", ErrInvalidStatus
	}
	return BugStatus(s), nil
}

// ParseSeverity validates a severity value coming in from the API.
func ParseSeverity(s string) (BugSeverity, error) {
	switch BugSeverity(s) {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return BugSeverity(s), nil
	}
	return "", ErrInvalidSeverity
}
