package chat

import "strings"

// noTopicsHint is returned when no topic trigger matches the query.
const noTopicsHint = "General career guidance applicable to all tech roles"

type topic struct {
	name     string
	triggers []string
}

// Topics are scanned in declaration order, which fixes the order of names in
// the returned hint.
var topics = []topic{
	{"data science", []string{"data science", "data scientist", "ml engineer", "machine learning", "data analyst"}},
	{"frontend", []string{"frontend", "front-end", "react", "vue", "javascript", "web developer", "ui developer"}},
	{"backend", []string{"backend", "back-end", "api", "server", "database", "python developer"}},
	{"fullstack", []string{"fullstack", "full-stack", "full stack"}},
	{"resume", []string{"resume", "cv", "application"}},
	{"interview", []string{"interview", "interviewing", "technical round", "behavioral"}},
	{"job search", []string{"job search", "apply", "application", "hiring"}},
	{"skills", []string{"skill", "learn", "technology", "framework"}},
	{"ready", []string{"ready", "prepared", "qualified", "career readiness"}},
}

// RelevantTopics labels the query with the career topics whose trigger words
// appear in it, producing a human-readable hint used to steer the chat prompt.
// Matching is case-insensitive and independent per topic.
func RelevantTopics(query string) string {
	lowered := strings.ToLower(query)

	matched := make([]string, 0, len(topics))
	for _, t := range topics {
		for _, trigger := range t.triggers {
			if strings.Contains(lowered, trigger) {
				matched = append(matched, t.name)
				break
			}
		}
	}

	if len(matched) == 0 {
		return noTopicsHint
	}

	return "Focus on: " + strings.Join(matched, ", ")
}
