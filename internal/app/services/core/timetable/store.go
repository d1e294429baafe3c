package timetable

import (
	"assistant-service/internal/app/models"
	"assistant-service/internal/pkg/constvars"
	"assistant-service/internal/pkg/exceptions"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

var (
	requiredColumns = []string{"week", "day", "start", "end"}

	dayNames = map[string]int{
		"monday": 0, "mon": 0,
		"tuesday": 1, "tue": 1,
		"wednesday": 2, "wed": 2,
		"thursday": 3, "thu": 3,
		"friday": 4, "fri": 4,
		"saturday": 5, "sat": 5,
		"sunday": 6, "sun": 6,
	}
)

type bucketKey struct {
	week models.WeekVariant
	day  int
}

// snapshot is an immutable lesson set plus its index. It is only ever
// replaced as a whole.
type snapshot struct {
	lessons  []models.Lesson
	index    map[bucketKey][]models.Lesson
	loadedAt time.Time
}

// ScheduleStore owns the loaded lessons. Readers never block; Load builds a
// fresh snapshot and publishes it with a single atomic pointer swap.
type ScheduleStore struct {
	current atomic.Pointer[snapshot]
	loadMu  sync.Mutex
	log     *zap.Logger
	now     func() time.Time
}

func NewScheduleStore(logger *zap.Logger) *ScheduleStore {
	return &ScheduleStore{
		log: logger,
		now: time.Now,
	}
}

// Load parses CSV content and replaces the stored lessons. On any error the
// previously loaded lessons stay in place.
func (s *ScheduleStore) Load(source io.Reader) (int, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	lessons, err := parseLessons(source)
	if err != nil {
		s.log.Error("ScheduleStore.Load failed, keeping previous lessons",
			zap.Int(constvars.LoggingLessonCountKey, s.Count()),
			zap.Error(err),
		)
		return 0, err
	}

	for i, lesson := range lessons {
		if !lesson.HasValidWindow() {
			s.log.Warn("ScheduleStore.Load lesson has an empty or inverted window and can never be current",
				zap.Int(constvars.LoggingRowKey, i+2),
				zap.String(constvars.LoggingSubjectKey, lesson.Subject),
				zap.String("start", models.FormatClock(lesson.StartMin)),
				zap.String("end", models.FormatClock(lesson.EndMin)),
			)
		}
	}

	next := &snapshot{
		lessons:  lessons,
		index:    buildIndex(lessons),
		loadedAt: s.now(),
	}
	s.current.Store(next)

	s.log.Info("ScheduleStore.Load succeeded",
		zap.Int(constvars.LoggingLessonCountKey, len(lessons)),
	)
	return len(lessons), nil
}

// Lookup returns the lessons for one (week, weekday) bucket ordered by start.
func (s *ScheduleStore) Lookup(week models.WeekVariant, weekday int) []models.Lesson {
	snap := s.current.Load()
	if snap == nil {
		return nil
	}
	bucket := snap.index[bucketKey{week: week, day: weekday}]
	if len(bucket) == 0 {
		return nil
	}
	out := make([]models.Lesson, len(bucket))
	copy(out, bucket)
	return out
}

func (s *ScheduleStore) Count() int {
	snap := s.current.Load()
	if snap == nil {
		return 0
	}
	return len(snap.lessons)
}

func (s *ScheduleStore) Loaded() bool {
	return s.current.Load() != nil
}

func (s *ScheduleStore) LoadedAt() time.Time {
	snap := s.current.Load()
	if snap == nil {
		return time.Time{}
	}
	return snap.loadedAt
}

func buildIndex(lessons []models.Lesson) map[bucketKey][]models.Lesson {
	index := make(map[bucketKey][]models.Lesson)
	for _, lesson := range lessons {
		key := bucketKey{week: lesson.Week, day: lesson.Day}
		index[key] = append(index[key], lesson)
	}
	for key := range index {
		bucket := index[key]
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].StartMin < bucket[j].StartMin
		})
	}
	return index
}

func parseLessons(source io.Reader) ([]models.Lesson, error) {
	reader := csv.NewReader(source)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, exceptions.ErrScheduleHeader(errors.New("CSV is empty, header row required"))
	}
	if err != nil {
		return nil, exceptions.ErrScheduleHeader(err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, exceptions.ErrScheduleHeader(fmt.Errorf("CSV missing required columns: %v", missing))
	}

	var lessons []models.Lesson
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line := 0
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				line = parseErr.Line
			}
			return nil, exceptions.ErrScheduleFormat(err, line)
		}
		line, _ := reader.FieldPos(0)

		field := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		lesson, err := parseRow(field)
		if err != nil {
			return nil, exceptions.ErrScheduleFormat(fmt.Errorf("row %d: %w", line, err), line)
		}
		lessons = append(lessons, lesson)
	}
	return lessons, nil
}

func parseRow(field func(string) string) (models.Lesson, error) {
	week := models.WeekVariant(strings.ToUpper(field("week")))
	if week != models.WeekA && week != models.WeekB {
		return models.Lesson{}, fmt.Errorf("invalid week: %s", week)
	}
	day, err := parseDay(field("day"))
	if err != nil {
		return models.Lesson{}, err
	}
	start, err := parseClock(field("start"))
	if err != nil {
		return models.Lesson{}, fmt.Errorf("invalid start: %w", err)
	}
	end, err := parseClock(field("end"))
	if err != nil {
		return models.Lesson{}, fmt.Errorf("invalid end: %w", err)
	}

	return models.Lesson{
		Week:     week,
		Day:      day,
		StartMin: start,
		EndMin:   end,
		Subject:  field("subject"),
		Teacher:  field("teacher"),
		Room:     field("room"),
		Notes:    field("notes"),
	}, nil
}

// parseDay accepts 0-6 (Monday=0) or an English day name, full or three
// letters, in any case.
func parseDay(value string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(value))
	if isDigits(s) {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 && n <= 6 {
			return n, nil
		}
	}
	if n, ok := dayNames[s]; ok {
		return n, nil
	}
	return 0, fmt.Errorf("invalid day: %s", value)
}

// parseClock converts a 24h HH:MM string to minutes since midnight.
func parseClock(value string) (int, error) {
	s := strings.TrimSpace(value)
	hh, mm, found := strings.Cut(s, ":")
	if !found {
		return 0, fmt.Errorf("%q is not HH:MM", value)
	}
	h, err := strconv.Atoi(strings.TrimSpace(hh))
	if err != nil {
		return 0, fmt.Errorf("%q is not HH:MM", value)
	}
	m, err := strconv.Atoi(strings.TrimSpace(mm))
	if err != nil {
		return 0, fmt.Errorf("%q is not HH:MM", value)
	}
	if h < 0 || h >= 24 || m < 0 || m >= 60 {
		return 0, fmt.Errorf("%q is out of range", value)
	}
	return h*60 + m, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
