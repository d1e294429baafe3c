package timetable

import (
	"assistant-service/internal/app/models"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var anchor = time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC)

const singleLessonCSV = "week,day,start,end,subject\nA,0,09:00,10:00,Maths\n"

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func newResolver(t *testing.T, content string) *Resolver {
	t.Helper()
	return NewResolver(newLoadedStore(t, content), anchor, time.UTC)
}

// countingReader records how many buckets were inspected.
type countingReader struct {
	lookups int
}

func (r *countingReader) Lookup(week models.WeekVariant, weekday int) []models.Lesson {
	r.lookups++
	return nil
}

func TestResolver_WeekVariantFor(t *testing.T) {
	r := NewResolver(&countingReader{}, anchor, time.UTC)

	tests := []struct {
		name string
		date time.Time
		want models.WeekVariant
	}{
		{"Anchor Monday", date(2025, 9, 8), models.WeekA},
		{"Anchor Sunday", date(2025, 9, 14), models.WeekA},
		{"Next week", date(2025, 9, 15), models.WeekB},
		{"Two weeks on", date(2025, 9, 22), models.WeekA},
		{"Week before anchor", date(2025, 9, 1), models.WeekB},
		{"Day before anchor", date(2025, 9, 7), models.WeekB},
		{"Eight days before anchor", date(2025, 8, 31), models.WeekA},
		{"Far past", date(2024, 9, 9), models.WeekA},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.WeekVariantFor(tt.date))
		})
	}
}

func TestResolver_WeekVariantPeriod(t *testing.T) {
	r := NewResolver(&countingReader{}, anchor, time.UTC)
	start := date(2024, 1, 1)
	for i := 0; i < 800; i++ {
		d := start.AddDate(0, 0, i)
		assert.Equal(t, r.WeekVariantFor(d), r.WeekVariantFor(d.AddDate(0, 0, 14)), d.Format("2006-01-02"))
		assert.NotEqual(t, r.WeekVariantFor(d), r.WeekVariantFor(d.AddDate(0, 0, 7)), d.Format("2006-01-02"))
	}
}

func TestResolver_WeekVariantAcrossDST(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	if err != nil {
		t.Skip("tzdata not available")
	}
	r := NewResolver(&countingReader{}, anchor, london)
	// clocks go back on 2025-10-26; the Monday after is still a whole number of weeks away
	assert.Equal(t, models.WeekA, r.WeekVariantFor(time.Date(2025, 10, 20, 0, 30, 0, 0, london)))
	assert.Equal(t, models.WeekB, r.WeekVariantFor(time.Date(2025, 10, 27, 0, 30, 0, 0, london)))
}

func TestResolver_AtPointInTime(t *testing.T) {
	r := newResolver(t, singleLessonCSV)

	found := r.AtPointInTime(at(2025, 9, 8, 9, 30), SubjectFilter{})
	require.NotNil(t, found.Lesson)
	assert.Equal(t, "Maths", found.Lesson.Subject)
	assert.Equal(t, models.WeekA, found.Week)

	assert.NotNil(t, r.AtPointInTime(at(2025, 9, 8, 9, 0), SubjectFilter{}).Lesson, "start is inclusive")
	assert.Nil(t, r.AtPointInTime(at(2025, 9, 8, 10, 0), SubjectFilter{}).Lesson, "end is exclusive")
	assert.Nil(t, r.AtPointInTime(at(2025, 9, 8, 8, 59), SubjectFilter{}).Lesson)

	weekB := r.AtPointInTime(at(2025, 9, 15, 9, 30), SubjectFilter{})
	assert.Nil(t, weekB.Lesson)
	assert.Equal(t, models.WeekB, weekB.Week)

	assert.Nil(t, r.AtPointInTime(at(2025, 9, 8, 9, 30), NewSubjectFilter("physics")).Lesson)
}

func TestResolver_AtPointInTimeAgreesWithDayLessons(t *testing.T) {
	r := newResolver(t, sampleCSV)
	day := date(2025, 9, 8)
	lessons := r.DayLessons(day, SubjectFilter{}).Lessons

	for minute := 0; minute < models.MinutesPerDay; minute++ {
		result := r.AtPointInTime(day.Add(time.Duration(minute)*time.Minute), SubjectFilter{})
		var want *models.Lesson
		for i := range lessons {
			if lessons[i].Contains(minute) {
				want = &lessons[i]
				break
			}
		}
		if want == nil {
			assert.Nil(t, result.Lesson, "minute %d", minute)
			continue
		}
		require.NotNil(t, result.Lesson, "minute %d", minute)
		assert.Equal(t, *want, *result.Lesson, "minute %d", minute)
	}
}

func TestResolver_DayLessons(t *testing.T) {
	r := newResolver(t, sampleCSV)

	monday := r.DayLessons(date(2025, 9, 8), SubjectFilter{})
	assert.Equal(t, models.WeekA, monday.Week)
	require.Len(t, monday.Lessons, 3)

	filtered := r.DayLessons(date(2025, 9, 8), NewSubjectFilter("  MATHS "))
	require.Len(t, filtered.Lessons, 1)
	assert.Equal(t, "Maths", filtered.Lessons[0].Subject)

	empty := r.DayLessons(date(2025, 9, 9), SubjectFilter{})
	assert.NotNil(t, empty.Lessons)
	assert.Empty(t, empty.Lessons)
}

func TestResolver_NextLesson(t *testing.T) {
	r := newResolver(t, singleLessonCSV)

	t.Run("Same day before start", func(t *testing.T) {
		result := r.NextLesson(at(2025, 9, 8, 8, 0), SubjectFilter{})
		require.NotNil(t, result.Lesson)
		assert.Equal(t, "Maths", result.Lesson.Subject)
		assert.Equal(t, models.WeekA, result.Week)
		assert.Equal(t, date(2025, 9, 8), result.Date)
	})

	t.Run("Start minute counts as next", func(t *testing.T) {
		assert.NotNil(t, r.NextLesson(at(2025, 9, 8, 9, 0), SubjectFilter{}).Lesson)
	})

	t.Run("Nothing within fourteen days keeps the original week", func(t *testing.T) {
		result := r.NextLesson(at(2025, 9, 8, 10, 0), SubjectFilter{})
		assert.Nil(t, result.Lesson)
		assert.Equal(t, models.WeekA, result.Week)
	})

	t.Run("Found week is the week of the lesson day", func(t *testing.T) {
		result := r.NextLesson(at(2025, 9, 16, 10, 0), SubjectFilter{})
		require.NotNil(t, result.Lesson, "A Monday 2025-09-22 is within range")
		assert.Equal(t, models.WeekA, result.Week)
		assert.Equal(t, date(2025, 9, 22), result.Date)
	})

	t.Run("Nothing found from week B reports B", func(t *testing.T) {
		weekB := newResolver(t, "week,day,start,end,subject\nB,0,09:00,10:00,Maths\n")
		result := weekB.NextLesson(at(2025, 9, 15, 10, 0), SubjectFilter{})
		assert.Nil(t, result.Lesson, "the next B Monday is day fourteen and is not examined")
		assert.Equal(t, models.WeekB, result.Week)
	})
}

func TestResolver_NextLessonSubjectSkipsCandidates(t *testing.T) {
	content := "week,day,start,end,subject\nA,0,09:00,10:00,Maths\nA,0,11:00,12:00,Physics\nA,1,09:00,10:00,Further Maths\n"
	r := newResolver(t, content)
	from := at(2025, 9, 8, 8, 0)

	unfiltered := r.NextLesson(from, SubjectFilter{})
	require.NotNil(t, unfiltered.Lesson)
	assert.Equal(t, "Maths", unfiltered.Lesson.Subject)

	physics := r.NextLesson(from, NewSubjectFilter("physics"))
	require.NotNil(t, physics.Lesson)
	assert.Equal(t, "Physics", physics.Lesson.Subject)

	further := r.NextLesson(at(2025, 9, 8, 9, 30), NewSubjectFilter("maths"))
	require.NotNil(t, further.Lesson)
	assert.Equal(t, "Further Maths", further.Lesson.Subject)
	assert.Equal(t, date(2025, 9, 9), further.Date)
}

func TestResolver_NextLessonScanCap(t *testing.T) {
	reader := &countingReader{}
	r := NewResolver(reader, anchor, time.UTC)

	result := r.NextLesson(at(2025, 9, 10, 12, 0), SubjectFilter{})
	assert.Nil(t, result.Lesson)
	assert.Equal(t, MaxForwardScanDays, reader.lookups)
	assert.Equal(t, models.WeekA, result.Week)
}

func TestResolver_NthPeriod(t *testing.T) {
	r := newResolver(t, sampleCSV)
	monday := date(2025, 9, 8)

	first := r.NthPeriod(monday, 1, false)
	assert.Equal(t, PeriodFound, first.Outcome)
	require.NotNil(t, first.Lesson)
	assert.Equal(t, "Maths", first.Lesson.Subject)
	assert.Equal(t, 3, first.Count)

	last := r.NthPeriod(monday, 0, true)
	assert.Equal(t, PeriodFound, last.Outcome)
	assert.Equal(t, "Physics", last.Lesson.Subject)
	assert.Equal(t, 3, last.Position)

	tooFar := r.NthPeriod(monday, 4, false)
	assert.Equal(t, PeriodOutOfRange, tooFar.Outcome)
	assert.Nil(t, tooFar.Lesson)
	assert.Equal(t, 3, tooFar.Count)

	empty := r.NthPeriod(date(2025, 9, 9), 1, false)
	assert.Equal(t, PeriodNoLessons, empty.Outcome)
	assert.Equal(t, 0, empty.Count)
	assert.NotEqual(t, tooFar.Outcome, empty.Outcome)
}

func TestResolver_FollowsReload(t *testing.T) {
	store := newLoadedStore(t, singleLessonCSV)
	r := NewResolver(store, anchor, time.UTC)
	require.Len(t, r.DayLessons(date(2025, 9, 8), SubjectFilter{}).Lessons, 1)

	_, err := store.Load(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	assert.Len(t, r.DayLessons(date(2025, 9, 8), SubjectFilter{}).Lessons, 3)
}

func TestSubjectFilter(t *testing.T) {
	lesson := models.Lesson{Subject: "Further   Maths"}
	assert.True(t, SubjectFilter{}.Match(lesson))
	assert.True(t, NewSubjectFilter("").Match(lesson))
	assert.True(t, NewSubjectFilter("further maths").Match(lesson))
	assert.True(t, NewSubjectFilter("MATHS").Match(lesson))
	assert.False(t, NewSubjectFilter("physics").Match(lesson))
	assert.Equal(t, "further maths", NormalizeSubject("  Further\tMaths "))
	assert.True(t, NewSubjectFilter("  ").IsEmpty())
}
