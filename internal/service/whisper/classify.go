package whisper

import (
	"strings"

	"github.com/lumeteam/whisper-backend/internal/domain"
)

// Classification is the deterministic outcome of classifying insight text.
type Classification struct {
	Category         domain.Category
	Priority         domain.Priority
	Title            string
	SuggestedActions []string
}

// Rules are evaluated in order; within a table the first rule with any
// matching keyword wins. Category and priority are independent tables, so
// "urgent overwork" is a warning with critical priority.

type categoryRule struct {
	keywords []string
	category domain.Category
}

var categoryRules = []categoryRule{
	{keywords: []string{"burnout", "stress", "overwork"}, category: domain.CategoryWarning},
	{keywords: []string{"recommend", "suggest", "consider"}, category: domain.CategorySuggestion},
	{keywords: []string{"critical", "urgent", "immediate"}, category: domain.CategoryAlert},
}

type priorityRule struct {
	keywords []string
	priority domain.Priority
}

var priorityRules = []priorityRule{
	{keywords: []string{"critical", "urgent", "severe"}, priority: domain.PriorityCritical},
	{keywords: []string{"important", "significant", "concerning"}, priority: domain.PriorityHigh},
	{keywords: []string{"moderate", "consider", "potential"}, priority: domain.PriorityMedium},
}

var categoryTitles = map[domain.Category]string{
	domain.CategoryWarning:    "Potential Team Concern Detected",
	domain.CategorySuggestion: "Communication Pattern Suggestion",
	domain.CategoryAlert:      "Urgent Team Dynamic Alert",
	domain.CategoryInsight:    "Team Communication Insight",
}

var categoryActions = map[domain.Category][]string{
	domain.CategoryWarning: {
		"Schedule a team health check-in",
		"Review recent workload distribution",
	},
	domain.CategorySuggestion: {
		"Review current communication practices",
		"Share the suggestion with the team for feedback",
	},
	domain.CategoryAlert: {
		"Address the issue with the team today",
		"Escalate to leadership if unresolved",
		"Schedule an immediate follow-up",
	},
	domain.CategoryInsight: {
		"Review the insight with the team",
		"Track whether the pattern continues",
	},
}

type actionRule struct {
	keywords []string
	action   string
}

// Extra actions stack on top of the category base list. Every matching rule
// contributes, not just the first.
var extraActionRules = []actionRule{
	{keywords: []string{"burnout"}, action: "Encourage affected team members to take time off"},
	{keywords: []string{"disengagement"}, action: "Set up one-on-one check-ins with affected team members"},
	{keywords: []string{"response time", "delay"}, action: "Review response-time expectations and SLAs"},
}

// Classify derives category, priority, title and suggested actions from
// insight text via case-insensitive substring matching over the whole text.
// Classify is total: text matching no rule yields an insight with low
// priority.
func Classify(text string) Classification {
	lower := strings.ToLower(text)

	category := domain.CategoryInsight
	for _, rule := range categoryRules {
		if containsAny(lower, rule.keywords) {
			category = rule.category
			break
		}
	}

	priority := domain.PriorityLow
	for _, rule := range priorityRules {
		if containsAny(lower, rule.keywords) {
			priority = rule.priority
			break
		}
	}

	base := categoryActions[category]
	actions := make([]string, 0, len(base)+len(extraActionRules))
	actions = append(actions, base...)
	for _, rule := range extraActionRules {
		if containsAny(lower, rule.keywords) {
			actions = append(actions, rule.action)
		}
	}

	return Classification{
		Category:         category,
		Priority:         priority,
		Title:            categoryTitles[category],
		SuggestedActions: actions,
	}
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
