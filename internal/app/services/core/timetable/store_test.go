package timetable

import (
	"assistant-service/internal/app/models"
	"assistant-service/internal/pkg/exceptions"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleCSV = `week,day,start,end,subject,teacher,room,notes
A,0,10:00,11:00,Physics,Mr Bloggs,L2,
A,Monday,09:00,10:00,Maths,Ms Smith,R1,bring calculator
a,mon,09:00,09:30,Form,Ms Smith,R1,
B,tue,13:15,14:05,History,,H3,
A,Sunday,12:00,13:00,Chess Club,,,optional
`

func newLoadedStore(t *testing.T, content string) *ScheduleStore {
	t.Helper()
	store := NewScheduleStore(zap.NewNop())
	_, err := store.Load(strings.NewReader(content))
	require.NoError(t, err)
	return store
}

func TestScheduleStore_Load(t *testing.T) {
	store := NewScheduleStore(zap.NewNop())
	assert.False(t, store.Loaded())
	assert.Nil(t, store.Lookup(models.WeekA, 0))

	count, err := store.Load(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, 5, count)
	assert.True(t, store.Loaded())
	assert.False(t, store.LoadedAt().IsZero())

	monday := store.Lookup(models.WeekA, 0)
	require.Len(t, monday, 3)
	assert.Equal(t, "Maths", monday[0].Subject, "ties keep file order")
	assert.Equal(t, "Form", monday[1].Subject)
	assert.Equal(t, "Physics", monday[2].Subject)
	assert.Equal(t, 9*60, monday[0].StartMin)
	assert.Equal(t, 10*60, monday[0].EndMin)
	assert.Equal(t, "bring calculator", monday[0].Notes)

	tuesdayB := store.Lookup(models.WeekB, 1)
	require.Len(t, tuesdayB, 1)
	assert.Equal(t, "", tuesdayB[0].Teacher)
	assert.Equal(t, "H3", tuesdayB[0].Room)

	assert.Len(t, store.Lookup(models.WeekA, 6), 1)
	assert.Empty(t, store.Lookup(models.WeekB, 0))
}

func TestScheduleStore_IndexInvariant(t *testing.T) {
	store := newLoadedStore(t, sampleCSV)

	total := 0
	for _, week := range []models.WeekVariant{models.WeekA, models.WeekB} {
		for day := 0; day < 7; day++ {
			bucket := store.Lookup(week, day)
			total += len(bucket)
			for i, lesson := range bucket {
				assert.Equal(t, week, lesson.Week)
				assert.Equal(t, day, lesson.Day)
				if i > 0 {
					assert.LessOrEqual(t, bucket[i-1].StartMin, lesson.StartMin)
				}
			}
		}
	}
	assert.Equal(t, store.Count(), total, "every lesson lives in exactly one bucket")
}

func TestScheduleStore_LookupReturnsCopy(t *testing.T) {
	store := newLoadedStore(t, sampleCSV)
	bucket := store.Lookup(models.WeekA, 0)
	bucket[0].Subject = "changed"
	assert.Equal(t, "Maths", store.Lookup(models.WeekA, 0)[0].Subject)
}

func TestScheduleStore_Idempotent(t *testing.T) {
	store := newLoadedStore(t, sampleCSV)
	first := store.Lookup(models.WeekA, 0)

	_, err := store.Load(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, first, store.Lookup(models.WeekA, 0))
}

func TestScheduleStore_FormatErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"Empty input", "", "header row required"},
		{"Missing columns", "week,day,start\nA,0,09:00\n", "missing required columns: [end]"},
		{"Invalid week", "week,day,start,end\nC,0,09:00,10:00\n", "invalid week: C"},
		{"Invalid day number", "week,day,start,end\nA,7,09:00,10:00\n", "invalid day: 7"},
		{"Invalid day name", "week,day,start,end\nA,funday,09:00,10:00\n", "invalid day: funday"},
		{"Hour out of range", "week,day,start,end\nA,0,24:00,10:00\n", "invalid start"},
		{"Minute out of range", "week,day,start,end\nA,0,09:00,10:60\n", "invalid end"},
		{"Clock without colon", "week,day,start,end\nA,0,0900,10:00\n", "invalid start"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewScheduleStore(zap.NewNop())
			_, err := store.Load(strings.NewReader(tt.content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, exceptions.ErrKindFormat), "expected a format error")
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.False(t, store.Loaded())
		})
	}
}

func TestScheduleStore_RowNumberInError(t *testing.T) {
	store := NewScheduleStore(zap.NewNop())
	_, err := store.Load(strings.NewReader("week,day,start,end\nA,0,09:00,10:00\nA,0,9am,10:00\n"))
	require.Error(t, err)

	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Contains(t, customErr.DevMessage, "row 3")
}

func TestScheduleStore_FailedLoadKeepsPrevious(t *testing.T) {
	store := newLoadedStore(t, sampleCSV)
	before := store.Lookup(models.WeekA, 0)
	loadedAt := store.LoadedAt()

	_, err := store.Load(strings.NewReader("week,day,start,end\nA,0,09:00,10:00\nX,0,09:00,10:00\n"))
	require.Error(t, err)

	assert.Equal(t, 5, store.Count())
	assert.Equal(t, before, store.Lookup(models.WeekA, 0))
	assert.Equal(t, loadedAt, store.LoadedAt())
}

func TestScheduleStore_HeaderIsCaseInsensitiveWithBOM(t *testing.T) {
	store := newLoadedStore(t, "\ufeffWeek, Day ,START,End,Subject\nB,Fri,14:00,15:00,Art\n")
	lessons := store.Lookup(models.WeekB, 4)
	require.Len(t, lessons, 1)
	assert.Equal(t, "Art", lessons[0].Subject)
}

func TestScheduleStore_InvertedWindowIsKept(t *testing.T) {
	store := newLoadedStore(t, "week,day,start,end\nA,0,10:00,09:00\n")
	lessons := store.Lookup(models.WeekA, 0)
	require.Len(t, lessons, 1)
	assert.False(t, lessons[0].HasValidWindow())
}

func TestScheduleStore_ConcurrentReadersDuringReload(t *testing.T) {
	store := newLoadedStore(t, sampleCSV)
	other := "week,day,start,end,subject\nA,0,08:00,09:00,Early\n"

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				n := len(store.Lookup(models.WeekA, 0))
				if n != 3 && n != 1 {
					t.Errorf("reader saw a partial bucket of %d lessons", n)
					return
				}
			}
		}()
	}

	for i := 0; i < 50; i++ {
		content := sampleCSV
		if i%2 == 0 {
			content = other
		}
		_, err := store.Load(strings.NewReader(content))
		require.NoError(t, err)
	}
	close(stop)
	wg.Wait()
}
