package planner

import "strings"

// FallbackRequirements is suggested when no keyword matches the topic.
const FallbackRequirements = "basic stationery"

type requirementRule struct {
	keyword string
	items   []string
}

// requirementRules is scanned in order; earlier rules contribute their items first.
var requirementRules = []requirementRule{
	{"math", []string{"calculator", "ruler", "graph paper"}},
	{"algebra", []string{"calculator", "graph paper"}},
	{"geometry", []string{"protractor", "compass", "ruler"}},
	{"fraction", []string{"fraction strips", "colored pencils"}},
	{"statistic", []string{"calculator", "graph paper"}},
	{"science", []string{"lab notebook", "safety goggles"}},
	{"chemistry", []string{"safety goggles", "lab coat", "periodic table"}},
	{"biology", []string{"microscope slides", "lab notebook"}},
	{"physics", []string{"calculator", "ruler", "stopwatch"}},
	{"history", []string{"timeline worksheet", "atlas"}},
	{"geography", []string{"atlas", "colored pencils"}},
	{"english", []string{"dictionary", "lined notebook"}},
	{"reading", []string{"reading book", "bookmark"}},
	{"writing", []string{"lined notebook", "pencil"}},
	{"essay", []string{"lined notebook", "dictionary"}},
	{"language", []string{"dictionary", "flashcards"}},
	{"art", []string{"sketchbook", "colored pencils", "paint set"}},
	{"music", []string{"instrument", "sheet music"}},
	{"computer", []string{"laptop", "internet access"}},
	{"coding", []string{"laptop", "internet access"}},
	{"programming", []string{"laptop", "internet access"}},
}

// InferRequirements suggests the supplies and prior knowledge students need
// for topic. Keywords match as case-insensitive substrings, so "mathematics"
// matches "math". Items from every matching keyword are merged in first-seen
// order without duplicates. An empty topic yields "".
func InferRequirements(topic string) string {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" {
		return ""
	}

	var items []string
	seen := make(map[string]struct{})
	for _, rule := range requirementRules {
		if !strings.Contains(topic, rule.keyword) {
			continue
		}
		for _, item := range rule.items {
			if _, dup := seen[item]; dup {
				continue
			}
			seen[item] = struct{}{}
			items = append(items, item)
		}
	}

	if len(items) == 0 {
		return FallbackRequirements
	}
	return strings.Join(items, ", ")
}
