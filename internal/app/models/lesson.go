package models

import (
	"assistant-service/internal/pkg/dto/responses"
	"fmt"
)

type WeekVariant string

const (
	WeekA WeekVariant = "A"
	WeekB WeekVariant = "B"
)

const MinutesPerDay = 24 * 60

// Lesson is one row of the timetable. Start and end are minutes since
// midnight. Values are never mutated after load.
type Lesson struct {
	Week     WeekVariant
	Day      int
	StartMin int
	EndMin   int
	Subject  string
	Teacher  string
	Room     string
	Notes    string
}

// Contains reports whether minute falls inside the half-open window
// [StartMin, EndMin).
func (l Lesson) Contains(minute int) bool {
	return l.StartMin <= minute && minute < l.EndMin
}

// HasValidWindow reports whether the lesson window is non-empty.
func (l Lesson) HasValidWindow() bool {
	return l.StartMin < l.EndMin
}

func FormatClock(totalMinutes int) string {
	return fmt.Sprintf("%02d:%02d", totalMinutes/60, totalMinutes%60)
}

func (l Lesson) ConvertIntoResponse() responses.Lesson {
	return responses.Lesson{
		Week:    string(l.Week),
		Day:     l.Day,
		Start:   FormatClock(l.StartMin),
		End:     FormatClock(l.EndMin),
		Subject: l.Subject,
		Teacher: l.Teacher,
		Room:    l.Room,
		Notes:   l.Notes,
	}
}

func ConvertLessonsIntoResponse(lessons []Lesson) []responses.Lesson {
	out := make([]responses.Lesson, len(lessons))
	for i, eachLesson := range lessons {
		out[i] = eachLesson.ConvertIntoResponse()
	}
	return out
}
