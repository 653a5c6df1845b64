package models

import (
	"time"

	"github.com/google/uuid"
)

// LessonPlanModel represents the database model for LessonPlan. The owner
// reference is cleared, not cascaded, when the user is deleted.
type LessonPlanModel struct {
	ID                  uint       `gorm:"primaryKey;autoIncrement"`
	UserID              *uuid.UUID `gorm:"type:uuid;index:idx_lesson_plans_user_created,priority:1"`
	Subject             string     `gorm:"type:varchar(200);not null"`
	Grade               string     `gorm:"type:varchar(100);not null"`
	Topic               string     `gorm:"type:varchar(200);not null"`
	Duration            int        `gorm:"not null;check:chk_lesson_plans_duration,duration > 0"`
	Content             string     `gorm:"type:text;not null"`
	TeacherActions      string     `gorm:"type:text"`
	StudentRequirements string     `gorm:"type:text"`
	CreatedAt           time.Time  `gorm:"not null;index:idx_lesson_plans_user_created,priority:2"`
	User                *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
}

func (LessonPlanModel) TableName() string {
	return "lesson_plans"
}
