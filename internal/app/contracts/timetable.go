package contracts

import (
	"assistant-service/internal/app/models"
	"assistant-service/internal/pkg/dto/requests"
	"assistant-service/internal/pkg/dto/responses"
	"context"
	"io"
)

// ScheduleReader is the read side of the schedule store used by the resolver.
type ScheduleReader interface {
	Lookup(week models.WeekVariant, weekday int) []models.Lesson
}

// TimetableSource yields the raw CSV content of a timetable.
type TimetableSource interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	Kind() string
	Location() string
}

type TimetableUsecase interface {
	WeekType(ctx context.Context, params *requests.TimetableParams) (*responses.WeekType, error)
	Day(ctx context.Context, params *requests.TimetableParams) (*responses.DayLessons, error)
	At(ctx context.Context, params *requests.TimetableParams) (*responses.LessonLookup, error)
	Next(ctx context.Context, params *requests.TimetableParams) (*responses.LessonLookup, error)
	Find(ctx context.Context, params *requests.TimetableParams) (interface{}, error)
	Period(ctx context.Context, params *requests.TimetableParams) (*responses.Period, error)
	Reload(ctx context.Context) (*responses.Reload, error)
	Status(ctx context.Context) (*responses.TimetableStatus, error)
}
