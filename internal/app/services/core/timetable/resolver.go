package timetable

import (
	"assistant-service/internal/app/contracts"
	"assistant-service/internal/app/models"
	"time"
)

// MaxForwardScanDays bounds NextLesson: the start day plus the following
// days, fourteen calendar days in total.
const MaxForwardScanDays = 14

const secondsPerDay = 24 * 60 * 60

type PeriodOutcome string

const (
	PeriodFound      PeriodOutcome = "found"
	PeriodNoLessons  PeriodOutcome = "no_lessons"
	PeriodOutOfRange PeriodOutcome = "out_of_range"
)

type DayResult struct {
	Week    models.WeekVariant
	Date    time.Time
	Lessons []models.Lesson
}

type PointResult struct {
	Week   models.WeekVariant
	Date   time.Time
	Lesson *models.Lesson
}

type PeriodResult struct {
	Week     models.WeekVariant
	Outcome  PeriodOutcome
	Count    int
	Position int
	Lesson   *models.Lesson
}

// Resolver answers calendar questions against a schedule. It never mutates
// the schedule and performs no I/O.
type Resolver struct {
	schedule contracts.ScheduleReader
	anchor   time.Time
	loc      *time.Location
}

// NewResolver builds a resolver whose week A starts on the calendar date of
// anchor. Date-times are interpreted in loc.
func NewResolver(schedule contracts.ScheduleReader, anchor time.Time, loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{
		schedule: schedule,
		anchor:   civilDate(anchor),
		loc:      loc,
	}
}

func (r *Resolver) Anchor() time.Time {
	return r.anchor
}

func (r *Resolver) Location() *time.Location {
	return r.loc
}

// WeekVariantFor uses floor division of the day offset from the anchor so
// that dates before the anchor keep alternating. Only the calendar date of
// date, in its own location, is considered.
func (r *Resolver) WeekVariantFor(date time.Time) models.WeekVariant {
	days := (civilDate(date).Unix() - r.anchor.Unix()) / secondsPerDay
	weeks := floorDiv(days, 7)
	if weeks%2 == 0 {
		return models.WeekA
	}
	return models.WeekB
}

// DayLessons takes the calendar date of date as given, without zone
// conversion.
func (r *Resolver) DayLessons(date time.Time, filter SubjectFilter) DayResult {
	day := civilDate(date)
	week := r.WeekVariantFor(day)
	lessons := filter.Apply(r.schedule.Lookup(week, weekdayIndex(day)))
	if lessons == nil {
		lessons = []models.Lesson{}
	}
	return DayResult{Week: week, Date: day, Lessons: lessons}
}

// AtPointInTime returns the first lesson, in start order, whose half-open
// window contains the minute of dt.
func (r *Resolver) AtPointInTime(dt time.Time, filter SubjectFilter) PointResult {
	local := r.local(dt)
	day := civilDate(local)
	week := r.WeekVariantFor(day)
	minute := minuteOfDay(local)

	for _, lesson := range r.schedule.Lookup(week, weekdayIndex(day)) {
		if lesson.Contains(minute) && filter.Match(lesson) {
			found := lesson
			return PointResult{Week: week, Date: day, Lesson: &found}
		}
	}
	return PointResult{Week: week, Date: day}
}

// NextLesson scans forward from from for the earliest lesson starting at or
// after it. Lessons failing filter are skipped during the scan. If nothing
// is found within MaxForwardScanDays the result carries the week of the
// original date.
func (r *Resolver) NextLesson(from time.Time, filter SubjectFilter) PointResult {
	local := r.local(from)
	startDay := civilDate(local)
	minute := minuteOfDay(local)

	day := startDay
	for examined := 0; examined < MaxForwardScanDays; examined++ {
		week := r.WeekVariantFor(day)
		for _, lesson := range r.schedule.Lookup(week, weekdayIndex(day)) {
			if lesson.StartMin >= minute && filter.Match(lesson) {
				found := lesson
				return PointResult{Week: week, Date: day, Lesson: &found}
			}
		}
		day = day.AddDate(0, 0, 1)
		minute = 0
	}
	return PointResult{Week: r.WeekVariantFor(startDay), Date: startDay}
}

// NthPeriod selects the 1-based ordinal-th lesson of the day, or the last
// one when last is set. An empty day and a too-short day are reported as
// different outcomes.
func (r *Resolver) NthPeriod(date time.Time, ordinal int, last bool) PeriodResult {
	day := r.DayLessons(date, SubjectFilter{})
	result := PeriodResult{Week: day.Week, Count: len(day.Lessons)}

	if len(day.Lessons) == 0 {
		result.Outcome = PeriodNoLessons
		return result
	}

	position := ordinal
	if last {
		position = len(day.Lessons)
	}
	if position < 1 || position > len(day.Lessons) {
		result.Outcome = PeriodOutOfRange
		result.Position = position
		return result
	}

	lesson := day.Lessons[position-1]
	result.Outcome = PeriodFound
	result.Position = position
	result.Lesson = &lesson
	return result
}

func (r *Resolver) local(t time.Time) time.Time {
	return t.In(r.loc)
}

// civilDate drops the clock and zone, keeping the calendar date as UTC
// midnight so day arithmetic is free of DST shifts.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func weekdayIndex(day time.Time) int {
	return (int(day.Weekday()) + 6) % 7
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
