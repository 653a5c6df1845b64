package lessonplan

import (
	"time"

	domainLessonPlan "lesson-planner/internal/domain/lessonplan"
)

// RecentLimit is how many plans the recent list shows.
const RecentLimit = 10

type LessonPlanResponse struct {
	ID                  uint      `json:"id"`
	Subject             string    `json:"subject"`
	Grade               string    `json:"grade"`
	Topic               string    `json:"topic"`
	Duration            int       `json:"duration"`
	Content             string    `json:"content"`
	TeacherActions      string    `json:"teacher_actions,omitempty"`
	StudentRequirements string    `json:"student_requirements,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

type LessonPlanSummary struct {
	ID        uint      `json:"id"`
	Subject   string    `json:"subject"`
	Grade     string    `json:"grade"`
	Topic     string    `json:"topic"`
	Duration  int       `json:"duration"`
	CreatedAt time.Time `json:"created_at"`
}

type RequirementsResponse struct {
	Topic        string `json:"topic"`
	Requirements string `json:"requirements"`
}

func ToLessonPlanResponse(p *domainLessonPlan.LessonPlan) *LessonPlanResponse {
	if p == nil {
		return nil
	}
	return &LessonPlanResponse{
		ID:                  p.ID,
		Subject:             p.Subject,
		Grade:               p.Grade,
		Topic:               p.Topic,
		Duration:            p.Duration,
		Content:             p.Content,
		TeacherActions:      p.TeacherActions,
		StudentRequirements: p.StudentRequirements,
		CreatedAt:           p.CreatedAt,
	}
}

func ToLessonPlanSummaries(plans []*domainLessonPlan.LessonPlan) []*LessonPlanSummary {
	out := make([]*LessonPlanSummary, 0, len(plans))
	for _, p := range plans {
		out = append(out, &LessonPlanSummary{
			ID:        p.ID,
			Subject:   p.Subject,
			Grade:     p.Grade,
			Topic:     p.Topic,
			Duration:  p.Duration,
			CreatedAt: p.CreatedAt,
		})
	}
	return out
}
