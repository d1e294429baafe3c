package timetable

import (
	"assistant-service/internal/app/models"
	"strings"
)

// NormalizeSubject lower-cases s and collapses runs of whitespace to one space.
func NormalizeSubject(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// SubjectFilter matches lessons whose normalized subject contains the
// normalized query. The zero value matches everything.
type SubjectFilter struct {
	query string
}

func NewSubjectFilter(query string) SubjectFilter {
	return SubjectFilter{query: NormalizeSubject(query)}
}

func (f SubjectFilter) IsEmpty() bool {
	return f.query == ""
}

func (f SubjectFilter) Match(lesson models.Lesson) bool {
	if f.query == "" {
		return true
	}
	return strings.Contains(NormalizeSubject(lesson.Subject), f.query)
}

func (f SubjectFilter) Apply(lessons []models.Lesson) []models.Lesson {
	if f.query == "" {
		return lessons
	}
	out := make([]models.Lesson, 0, len(lessons))
	for _, lesson := range lessons {
		if f.Match(lesson) {
			out = append(out, lesson)
		}
	}
	return out
}
