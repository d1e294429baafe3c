// Package intent recognises the handful of phrasings the assistant answers
// through its services instead of the text provider. Matching is best effort.
package intent

import (
	"assistant-service/internal/pkg/constvars"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type Kind string

const (
	KindDay      Kind = "day"
	KindAt       Kind = "at"
	KindNext     Kind = "next"
	KindWeekType Kind = "weekType"
	KindPeriod   Kind = "period"
	KindFind     Kind = "find"
)

// TimetableIntent is a recognised timetable question. Date is a calendar
// date in the caller's zone and is zero when the question has none.
type TimetableIntent struct {
	Kind     Kind
	Date     time.Time
	Hour     int
	Minute   int
	WeekHint string
	Ordinal  int
	Last     bool
	Subject  string
}

var geocodePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bcoordinates of\s+(?P<q>.+)`),
	regexp.MustCompile(`(?i)\bcoords of\s+(?P<q>.+)`),
	regexp.MustCompile(`(?i)\bwhere\s+is\s+(?P<q>.+?)\s+on\s+the\s+map\b`),
	regexp.MustCompile(`(?i)\blat(?:itude)?\s*(?:,|and)?\s*lon(?:gitude)?\s*(?:for|of)?\s+(?P<q>.+)`),
}

var (
	atPattern       = regexp.MustCompile(`(?i)\b(?:lesson|class)\s+at\s+(?P<h>\d{1,2})(?::(?P<m>\d{2}))?\s*(?P<ampm>am|pm)?(?:\s+on\s+(?P<day>[A-Za-z]+))?`)
	nowPattern      = regexp.MustCompile(`(?i)\b(?:(?:lesson|class)\s+(?:right\s+)?now|what'?s\s+on\s+now)\b`)
	dayPattern      = regexp.MustCompile(`(?i)\b(?:lessons?|timetable)\b.*\b(?:(?:on|for)\s+(?P<day>[A-Za-z]+)|(?P<rel>today|tomorrow))\b`)
	nextPattern     = regexp.MustCompile(`(?i)\bnext\s+(?:lesson|class)\b`)
	weekPattern     = regexp.MustCompile(`(?i)\bwhat\s+week\b(?:.*\b(?:on|for)\s+(?P<date>\d{4}-\d{2}-\d{2}))?`)
	periodPattern   = regexp.MustCompile(`(?i)\b(?P<ord>first|second|third|fourth|fifth|sixth|seventh|eighth|ninth|tenth|\d{1,2}(?:st|nd|rd|th)?|last)\s+period\b(?:\s+(?:on|for)\s+(?P<day>[A-Za-z]+))?`)
	weekHintPattern = regexp.MustCompile(`(?i)\bweek\s+(?P<w>[ab])\b`)
	leadingDigits   = regexp.MustCompile(`^\d+`)
)

var subjectPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bwhen\s+(?:is|do\s+i\s+have|have\s+i\s+got)\s+(?:my\s+)?(?:next\s+)?(?P<subject>[A-Za-z][A-Za-z &'-]*?)(?:\s+(?:lesson|class))?(?:\s+next)?(?:\s+on\s+(?P<day>[A-Za-z]+))?\s*[?.!]*$`),
	regexp.MustCompile(`(?i)\bnext\s+(?P<subject>[A-Za-z][A-Za-z &'-]*?)\s+(?:lesson|class)\b`),
}

var dayNames = map[string]int{
	"monday": 0, "mon": 0,
	"tuesday": 1, "tue": 1,
	"wednesday": 2, "wed": 2,
	"thursday": 3, "thu": 3,
	"friday": 4, "fri": 4,
	"saturday": 5, "sat": 5,
	"sunday": 6, "sun": 6,
}

var ordinals = map[string]int{
	"first": 1, "second": 2, "third": 3, "fourth": 4, "fifth": 5,
	"sixth": 6, "seventh": 7, "eighth": 8, "ninth": 9, "tenth": 10,
}

// DetectGeocodeQuery returns the place named in a "coordinates of X" style
// question.
func DetectGeocodeQuery(text string) (string, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return "", false
	}
	for _, pattern := range geocodePatterns {
		if q, ok := namedGroup(pattern, s, "q"); ok {
			q = strings.TrimRight(strings.TrimSpace(q), "?.! ")
			return q, q != ""
		}
	}
	return "", false
}

// DetectTimetableIntent classifies text relative to now. The first matching
// rule wins: lesson at a time, lesson now, day schedule, next lesson, week
// type, Nth period, then subject search.
func DetectTimetableIntent(text string, now time.Time) (*TimetableIntent, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	weekHint := ""
	if w, ok := namedGroup(weekHintPattern, s, "w"); ok {
		weekHint = strings.ToUpper(w)
	}

	if m := matchGroups(atPattern, s); m != nil {
		hour, _ := strconv.Atoi(m["h"])
		minute := 0
		if m["m"] != "" {
			minute, _ = strconv.Atoi(m["m"])
		}
		switch strings.ToLower(m["ampm"]) {
		case "pm":
			if hour >= 1 && hour <= 11 {
				hour += 12
			}
		case "am":
			if hour == 12 {
				hour = 0
			}
		}
		if hour < 24 && minute < 60 {
			date, _ := resolveDay(m["day"], today)
			return &TimetableIntent{Kind: KindAt, Date: date, Hour: hour, Minute: minute, WeekHint: weekHint}, true
		}
	}

	if nowPattern.MatchString(s) {
		return &TimetableIntent{Kind: KindAt, Date: today, Hour: now.Hour(), Minute: now.Minute(), WeekHint: weekHint}, true
	}

	if m := matchGroups(dayPattern, s); m != nil {
		word := m["day"]
		if word == "" {
			word = m["rel"]
		}
		if date, known := resolveDay(word, today); known {
			return &TimetableIntent{Kind: KindDay, Date: date, WeekHint: weekHint}, true
		}
	}

	if nextPattern.MatchString(s) {
		return &TimetableIntent{Kind: KindNext, WeekHint: weekHint}, true
	}

	if m := matchGroups(weekPattern, s); m != nil {
		date := today
		if m["date"] != "" {
			if parsed, err := time.ParseInLocation(constvars.LayoutDate, m["date"], now.Location()); err == nil {
				date = parsed
			}
		}
		return &TimetableIntent{Kind: KindWeekType, Date: date}, true
	}

	if m := matchGroups(periodPattern, s); m != nil {
		date, _ := resolveDay(m["day"], today)
		word := strings.ToLower(m["ord"])
		if word == constvars.PeriodLastKeyword {
			return &TimetableIntent{Kind: KindPeriod, Date: date, WeekHint: weekHint, Last: true}, true
		}
		if n, ok := ordinals[word]; ok {
			return &TimetableIntent{Kind: KindPeriod, Date: date, WeekHint: weekHint, Ordinal: n}, true
		}
		if n, err := strconv.Atoi(leadingDigits.FindString(word)); err == nil && n >= 1 {
			return &TimetableIntent{Kind: KindPeriod, Date: date, WeekHint: weekHint, Ordinal: n}, true
		}
		return nil, false
	}

	for _, pattern := range subjectPatterns {
		m := matchGroups(pattern, s)
		if m == nil {
			continue
		}
		subject := strings.TrimSpace(m["subject"])
		if subject == "" {
			continue
		}
		found := &TimetableIntent{Kind: KindFind, Subject: subject, WeekHint: weekHint}
		if date, known := resolveDay(m["day"], today); known {
			found.Date = date
		}
		return found, true
	}

	return nil, false
}

// Request maps the intent onto a timetable MCP call.
func (i *TimetableIntent) Request() (string, map[string]interface{}) {
	params := map[string]interface{}{}
	switch i.Kind {
	case KindDay:
		params[constvars.ParamDate] = i.Date.Format(constvars.LayoutDate)
		return constvars.MCPMethodDay, params
	case KindAt:
		params[constvars.ParamDateTime] = fmt.Sprintf("%sT%02d:%02d", i.Date.Format(constvars.LayoutDate), i.Hour, i.Minute)
		return constvars.MCPMethodAt, params
	case KindNext:
		return constvars.MCPMethodNext, params
	case KindWeekType:
		params[constvars.ParamDate] = i.Date.Format(constvars.LayoutDate)
		return constvars.MCPMethodWeekType, params
	case KindPeriod:
		params[constvars.ParamDate] = i.Date.Format(constvars.LayoutDate)
		if i.Last {
			params[constvars.ParamLast] = true
		} else {
			params[constvars.ParamPeriod] = i.Ordinal
		}
		return constvars.MCPMethodPeriod, params
	default:
		params[constvars.ParamSubject] = i.Subject
		if !i.Date.IsZero() {
			params[constvars.ParamDate] = i.Date.Format(constvars.LayoutDate)
		}
		return constvars.MCPMethodFind, params
	}
}

// resolveDay turns today, tomorrow or a weekday name into a date on or after
// today. Anything else resolves to today and reports false.
func resolveDay(word string, today time.Time) (time.Time, bool) {
	switch w := strings.ToLower(strings.TrimSpace(word)); w {
	case "today":
		return today, true
	case "tomorrow":
		return today.AddDate(0, 0, 1), true
	default:
		dow, ok := dayNames[w]
		if !ok {
			return today, false
		}
		current := (int(today.Weekday()) + 6) % 7
		return today.AddDate(0, 0, ((dow-current)%7+7)%7), true
	}
}

func matchGroups(pattern *regexp.Regexp, s string) map[string]string {
	match := pattern.FindStringSubmatch(s)
	if match == nil {
		return nil
	}
	groups := make(map[string]string, len(match))
	for i, name := range pattern.SubexpNames() {
		if name != "" {
			groups[name] = match[i]
		}
	}
	return groups
}

func namedGroup(pattern *regexp.Regexp, s, name string) (string, bool) {
	groups := matchGroups(pattern, s)
	if groups == nil {
		return "", false
	}
	return groups[name], true
}
