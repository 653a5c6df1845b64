package lessonplan

import "errors"

var ErrLessonPlanNotFound = errors.New("lesson plan not found")
