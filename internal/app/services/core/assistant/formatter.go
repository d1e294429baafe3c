package assistant

import (
	"assistant-service/internal/pkg/constvars"
	"assistant-service/internal/pkg/intent"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	geocodeHeading   = "MCP: Geolocate"
	timetableHeading = "MCP: Timetable"
)

var weekdayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func formatGeocode(query string, data map[string]interface{}) string {
	if toInt(data["matches"]) == 0 {
		return geocodeHeading + "\n" + fmt.Sprintf("No match found for %s.", query)
	}
	name := toString(data["display_name"])
	if name == "" {
		name = query
	}
	return geocodeHeading + "\n" + fmt.Sprintf("Coordinates for %s: %s, %s", name, toString(data["lat"]), toString(data["lon"]))
}

func formatTimetable(found *intent.TimetableIntent, data map[string]interface{}) string {
	week := toString(data["week"])
	var body string

	switch found.Kind {
	case intent.KindWeekType:
		body = fmt.Sprintf("%s is week %s.", found.Date.Format(constvars.LayoutDate), week)
	case intent.KindDay:
		body = formatLessonList(fmt.Sprintf("Week %s, %s", week, describeDate(found.Date)), "no lessons.", data["lessons"])
	case intent.KindAt:
		clock := fmt.Sprintf("%02d:%02d", found.Hour, found.Minute)
		if lesson, ok := data["lesson"].(map[string]interface{}); ok {
			body = fmt.Sprintf("At %s on %s (week %s): %s", clock, describeDate(found.Date), week, formatLesson(lesson))
		} else {
			body = fmt.Sprintf("No lesson at %s on %s (week %s).", clock, describeDate(found.Date), week)
		}
	case intent.KindNext:
		if lesson, ok := data["lesson"].(map[string]interface{}); ok {
			body = fmt.Sprintf("Next lesson (week %s): %s %s", week, weekdayName(lesson["day"]), formatLesson(lesson))
		} else {
			body = fmt.Sprintf("No lessons in the next two weeks (week %s).", week)
		}
	case intent.KindPeriod:
		body = formatPeriod(found, week, data)
	default:
		body = formatFind(found, week, data)
	}

	if found.WeekHint != "" && week != "" && found.WeekHint != week {
		body += fmt.Sprintf("\n(note: that is week %s, not week %s)", week, found.WeekHint)
	}
	return timetableHeading + "\n" + body
}

func formatPeriod(found *intent.TimetableIntent, week string, data map[string]interface{}) string {
	label := fmt.Sprintf("Period %d", found.Ordinal)
	if found.Last {
		label = "Last period"
	}
	when := describeDate(found.Date)

	switch toString(data["outcome"]) {
	case "found":
		lesson, _ := data["lesson"].(map[string]interface{})
		return fmt.Sprintf("%s on %s (week %s): %s", label, when, week, formatLesson(lesson))
	case "no_lessons":
		return fmt.Sprintf("No lessons on %s (week %s).", when, week)
	default:
		return fmt.Sprintf("Only %d lessons on %s (week %s), there is no period %d.", toInt(data["count"]), when, week, found.Ordinal)
	}
}

func formatFind(found *intent.TimetableIntent, week string, data map[string]interface{}) string {
	if lessons, dateMode := data["lessons"]; dateMode {
		return formatLessonList(
			fmt.Sprintf("%s on %s (week %s)", found.Subject, describeDate(found.Date), week),
			"none.",
			lessons,
		)
	}
	if lesson, ok := data["lesson"].(map[string]interface{}); ok {
		return fmt.Sprintf("Next %s (week %s): %s %s", found.Subject, week, weekdayName(lesson["day"]), formatLesson(lesson))
	}
	return fmt.Sprintf("No %s lesson in the next two weeks.", found.Subject)
}

func formatLessonList(title, empty string, raw interface{}) string {
	items, _ := raw.([]interface{})
	if len(items) == 0 {
		return title + ": " + empty
	}
	lines := []string{title + ":"}
	for _, item := range items {
		if lesson, ok := item.(map[string]interface{}); ok {
			lines = append(lines, "  "+formatLesson(lesson))
		}
	}
	return strings.Join(lines, "\n")
}

// formatLesson renders "09:00-10:00 Maths (Mr X, R1) - notes".
func formatLesson(lesson map[string]interface{}) string {
	out := fmt.Sprintf("%s-%s %s", toString(lesson["start"]), toString(lesson["end"]), toString(lesson["subject"]))
	var extras []string
	for _, key := range []string{"teacher", "room"} {
		if value := toString(lesson[key]); value != "" {
			extras = append(extras, value)
		}
	}
	if len(extras) > 0 {
		out += " (" + strings.Join(extras, ", ") + ")"
	}
	if notes := toString(lesson["notes"]); notes != "" {
		out += " - " + notes
	}
	return out
}

func describeDate(date time.Time) string {
	return fmt.Sprintf("%s %s", date.Weekday().String(), date.Format(constvars.LayoutDate))
}

func weekdayName(raw interface{}) string {
	index := toInt(raw)
	if index < 0 || index >= len(weekdayNames) {
		return ""
	}
	return weekdayNames[index]
}

func toString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func toInt(value interface{}) int {
	switch v := value.(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
