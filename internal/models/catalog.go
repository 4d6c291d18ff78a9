package models

import "time"

type ExperienceLevel string

const (
	LevelBeginner     ExperienceLevel = "beginner"
	LevelIntermediate ExperienceLevel = "intermediate"
	LevelAdvanced     ExperienceLevel = "advanced"
)

type Topic struct {
	ID          string    `json:"id" gorm:"primaryKey;size:255"`
	CreatedAt   time.Time `json:"created_at"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;not null;size:200"`
	Name        string    `json:"name" gorm:"not null;size:200"`
	Description *string   `json:"description" gorm:"type:text"`
	IconName    *string   `json:"icon_name" gorm:"size:100"`
}

func (Topic) TableName() string {
	return "topics"
}

type Course struct {
	ID               string          `json:"id" gorm:"primaryKey;size:255"`
	CreatedAt        time.Time       `json:"created_at"`
	TopicID          string          `json:"topic_id" gorm:"not null;index;size:255"`
	Title            string          `json:"title" gorm:"not null;size:200"`
	Content          string          `json:"content" gorm:"type:text"`
	ExperienceLevel  ExperienceLevel `json:"experience_level" gorm:"size:20"`
	DurationEstimate *string         `json:"duration_estimate" gorm:"size:100"`
	IsActive         bool            `json:"is_active" gorm:"default:true;index"`
}

func (Course) TableName() string {
	return "courses"
}
