package planner

import (
	"fmt"
	"strings"
)

// Phase is one of the five fixed activity blocks of a lesson plan.
type Phase struct {
	Heading        string
	DefaultActions string
}

// Phases lists the activity blocks in document order.
var Phases = []Phase{
	{"1. Introduction (10 min): Hook + objectives.", "Introduce topic, set objectives."},
	{"2. Teaching & Modelling:", "Explain and model examples."},
	{"3. Guided Practice:", "Guide students through examples."},
	{"4. Independent Practice:", "Monitor and support."},
	{"5. Assessment & Plenary:", "Give quick quiz and recap."},
}

// Input holds validated form values. Build one with ParseForm.
type Input struct {
	Subject             string
	Grade               string
	Topic               string
	Duration            int
	TeacherActions      string
	StudentRequirements string
}

// Synthesize renders the lesson plan document. The result depends only on
// in: identical inputs give byte-identical text.
func Synthesize(in Input) string {
	actions := singleLine(in.TeacherActions)
	requirements := singleLine(in.StudentRequirements)
	if requirements == "" {
		requirements = InferRequirements(in.Topic)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Subject: %s\n", in.Subject)
	fmt.Fprintf(&b, "Grade: %s\n", in.Grade)
	fmt.Fprintf(&b, "Topic: %s\n", in.Topic)
	fmt.Fprintf(&b, "Duration: %d minutes\n\n", in.Duration)

	b.WriteString("Objective:\n")
	fmt.Fprintf(&b, "- Students will learn the basics of %s.\n\n", in.Topic)

	b.WriteString("Materials:\n")
	b.WriteString("- Whiteboard, markers, worksheets.\n")
	fmt.Fprintf(&b, "- Student requirements: %s\n\n", requirements)

	b.WriteString("Activities (with teacher actions):\n")
	for _, phase := range Phases {
		line := actions
		if line == "" {
			line = phase.DefaultActions
		}
		b.WriteString(phase.Heading + "\n")
		fmt.Fprintf(&b, "   Teacher actions: %s\n\n", line)
	}

	b.WriteString("Homework:\n")
	fmt.Fprintf(&b, "- Practice problems on %s.", in.Topic)

	return b.String()
}

// singleLine collapses runs of whitespace, newlines included, into single
// spaces so free text cannot add lines to the document.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
