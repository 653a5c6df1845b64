package lessonplan

import (
	"time"

	"github.com/google/uuid"
)

// LessonPlan is a persisted document generated from one form submission.
// Content is fixed at creation; records are never updated.
type LessonPlan struct {
	ID                  uint
	UserID              *uuid.UUID
	Subject             string
	Grade               string
	Topic               string
	Duration            int
	Content             string
	TeacherActions      string
	StudentRequirements string
	CreatedAt           time.Time
}

// OwnedBy reports whether the plan belongs to userID. Plans whose owner was
// deleted belong to nobody.
func (p *LessonPlan) OwnedBy(userID uuid.UUID) bool {
	return p.UserID != nil && *p.UserID == userID
}
