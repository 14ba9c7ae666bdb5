package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Limits enforced at the authoring boundary.
const (
	MaxTags          = 5
	MaxCustomButtons = 2
)

// CustomButton is an extra external link rendered alongside the GitHub link.
type CustomButton struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Project represents a portfolio project and owns its ordered sequence of
// description blocks. Slug is derived from the title and is not unique by
// itself; duplicates are resolved by creation recency on lookup.
type Project struct {
	ID            uuid.UUID                          `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Slug          string                             `json:"slug" db:"slug" gorm:"type:text;not null;index:idx_project_slug"`
	Title         string                             `json:"title" db:"title" gorm:"type:text;not null"`
	Summary       string                             `json:"summary" db:"summary" gorm:"type:text;not null"`
	Tags          datatypes.JSONSlice[string]        `json:"tags" db:"tags"`
	Image         string                             `json:"image" db:"image" gorm:"type:text;not null"`
	GithubURL     *string                            `json:"github_url,omitempty" db:"github_url" gorm:"type:text"`
	CustomButtons datatypes.JSONType[[]CustomButton] `json:"custom_buttons,omitempty" db:"custom_buttons"`
	CreatedAt     time.Time                          `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time                          `json:"updated_at" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	Blocks        []ContentBlock                     `json:"-" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}
