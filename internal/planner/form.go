package planner

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	appErrors "lesson-planner/pkg/errors"
	"lesson-planner/pkg/utils"
)

// User-visible validation messages.
const (
	MsgAllFieldsRequired = "All fields are required."
	MsgDurationNotNumber = "Duration must be a number."
	MsgDurationPositive  = "Duration must be a positive number."
)

// Form is the raw lesson plan submission as typed by the teacher.
type Form struct {
	Subject             string        `form:"subject" json:"subject" validate:"required"`
	Grade               string        `form:"grade" json:"grade" validate:"required"`
	Topic               string        `form:"topic" json:"topic" validate:"required"`
	Duration            DurationField `form:"duration" json:"duration" validate:"required"`
	TeacherActions      string        `form:"teacher_actions" json:"teacher_actions"`
	StudentRequirements string        `form:"student_requirements" json:"student_requirements"`
}

// DurationField holds the raw duration text. JSON clients may send it as a
// number or a string; forms always send text.
type DurationField string

func (d *DurationField) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(raw, []byte("null")):
		*d = ""
	case len(raw) > 0 && raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*d = DurationField(s)
	default:
		// Anything else is kept verbatim and rejected by ParseForm if it
		// is not an integer.
		*d = DurationField(raw)
	}
	return nil
}

// ParseForm trims and validates f. Any blank required field yields
// MsgAllFieldsRequired; a duration that is not an integer yields
// MsgDurationNotNumber. Errors are *errors.AppError with CodeValidation.
func ParseForm(f Form) (Input, error) {
	f.Subject = strings.TrimSpace(f.Subject)
	f.Grade = strings.TrimSpace(f.Grade)
	f.Topic = strings.TrimSpace(f.Topic)
	f.Duration = DurationField(strings.TrimSpace(string(f.Duration)))

	if err := utils.ValidateStruct(&f); err != nil {
		return Input{}, appErrors.NewAppError(appErrors.CodeValidation, MsgAllFieldsRequired, nil)
	}

	duration, err := strconv.Atoi(string(f.Duration))
	if err != nil {
		return Input{}, appErrors.NewAppError(appErrors.CodeValidation, MsgDurationNotNumber, nil)
	}
	if duration <= 0 {
		return Input{}, appErrors.NewAppError(appErrors.CodeValidation, MsgDurationPositive, nil)
	}

	return Input{
		Subject:             f.Subject,
		Grade:               f.Grade,
		Topic:               f.Topic,
		Duration:            duration,
		TeacherActions:      utils.SanitizeText(f.TeacherActions),
		StudentRequirements: utils.SanitizeText(f.StudentRequirements),
	}, nil
}
