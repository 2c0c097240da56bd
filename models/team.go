package models

import "time"

// Team is a project grouping that owns bugs and has a membership roster.
type Team struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string    `json:"description"`
	Repository  string    `json:"repository"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Members []TeamMember `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
	Bugs    []Bug        `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"-"`
}

// TeamMember links a user to a team. A user may join a given team at
// most once, enforced by the composite unique index.
type TeamMember struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	TeamID    uint      `gorm:"uniqueIndex:idx_team_user;not null" json:"team_id"`
	UserID    uint      `gorm:"uniqueIndex:idx_team_user;not null" json:"user_id"`
	CreatedAt time.Time `json:"joined_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
}
