package timetable

import (
	"assistant-service/internal/app/contracts"
	"assistant-service/internal/app/models"
	"assistant-service/internal/pkg/constvars"
	"assistant-service/internal/pkg/dto/requests"
	"assistant-service/internal/pkg/dto/responses"
	"assistant-service/internal/pkg/exceptions"
	"assistant-service/internal/pkg/utils"
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"
)

type timetableUsecase struct {
	Store    *ScheduleStore
	Resolver *Resolver
	Source   contracts.TimetableSource
	Log      *zap.Logger
	now      func() time.Time
}

func NewTimetableUsecase(
	store *ScheduleStore,
	resolver *Resolver,
	source contracts.TimetableSource,
	logger *zap.Logger,
) contracts.TimetableUsecase {
	return &timetableUsecase{
		Store:    store,
		Resolver: resolver,
		Source:   source,
		Log:      logger,
		now:      time.Now,
	}
}

func (uc *timetableUsecase) WeekType(ctx context.Context, params *requests.TimetableParams) (*responses.WeekType, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("timetableUsecase.WeekType called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDateKey, params.Date),
	)

	date, err := utils.DateOrToday(params.Date, uc.now(), uc.Resolver.Location())
	if err != nil {
		uc.Log.Error("timetableUsecase.WeekType invalid date",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	week := uc.Resolver.WeekVariantFor(date)
	uc.Log.Info("timetableUsecase.WeekType succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWeekKey, string(week)),
	)
	return &responses.WeekType{Week: string(week)}, nil
}

func (uc *timetableUsecase) Day(ctx context.Context, params *requests.TimetableParams) (*responses.DayLessons, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("timetableUsecase.Day called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDateKey, params.Date),
		zap.String(constvars.LoggingSubjectKey, params.Subject),
	)

	if err := uc.ensureLoaded(); err != nil {
		return nil, err
	}

	date, err := utils.DateOrToday(params.Date, uc.now(), uc.Resolver.Location())
	if err != nil {
		uc.Log.Error("timetableUsecase.Day invalid date",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	result := uc.Resolver.DayLessons(date, NewSubjectFilter(params.Subject))
	uc.Log.Info("timetableUsecase.Day succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWeekKey, string(result.Week)),
		zap.Int(constvars.LoggingLessonCountKey, len(result.Lessons)),
	)
	return &responses.DayLessons{
		Week:    string(result.Week),
		Lessons: models.ConvertLessonsIntoResponse(result.Lessons),
	}, nil
}

func (uc *timetableUsecase) At(ctx context.Context, params *requests.TimetableParams) (*responses.LessonLookup, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("timetableUsecase.At called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDateKey, params.DateTime),
		zap.String(constvars.LoggingSubjectKey, params.Subject),
	)

	if err := uc.ensureLoaded(); err != nil {
		return nil, err
	}
	if params.DateTime == "" {
		return nil, exceptions.ErrMissingParam(constvars.ParamDateTime)
	}

	dt, err := utils.ParseDateTime(params.DateTime, uc.Resolver.Location())
	if err != nil {
		uc.Log.Error("timetableUsecase.At invalid datetime",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	result := uc.Resolver.AtPointInTime(dt, NewSubjectFilter(params.Subject))
	uc.Log.Info("timetableUsecase.At succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWeekKey, string(result.Week)),
		zap.Bool("found", result.Lesson != nil),
	)
	return convertPointResult(result), nil
}

func (uc *timetableUsecase) Next(ctx context.Context, params *requests.TimetableParams) (*responses.LessonLookup, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("timetableUsecase.Next called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDateKey, params.From),
		zap.String(constvars.LoggingSubjectKey, params.Subject),
	)

	if err := uc.ensureLoaded(); err != nil {
		return nil, err
	}

	from, err := utils.DateTimeOrNow(params.From, uc.now(), uc.Resolver.Location())
	if err != nil {
		uc.Log.Error("timetableUsecase.Next invalid from",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	result := uc.Resolver.NextLesson(from, NewSubjectFilter(params.Subject))
	uc.Log.Info("timetableUsecase.Next succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWeekKey, string(result.Week)),
		zap.Bool("found", result.Lesson != nil),
	)
	return convertPointResult(result), nil
}

// Find runs in date mode when a date is given and returns every matching
// lesson of that day. Otherwise it searches forward from `from` (or now).
func (uc *timetableUsecase) Find(ctx context.Context, params *requests.TimetableParams) (interface{}, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("timetableUsecase.Find called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubjectKey, params.Subject),
		zap.String(constvars.LoggingDateKey, params.Date),
	)

	if err := uc.ensureLoaded(); err != nil {
		return nil, err
	}
	if NormalizeSubject(params.Subject) == "" {
		return nil, exceptions.ErrMissingParam(constvars.ParamSubject)
	}
	filter := NewSubjectFilter(params.Subject)
	loc := uc.Resolver.Location()

	if params.Date != "" {
		date, err := utils.ParseDate(params.Date, loc)
		if err != nil {
			return nil, err
		}
		result := uc.Resolver.DayLessons(date, filter)
		uc.Log.Info("timetableUsecase.Find succeeded in date mode",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingLessonCountKey, len(result.Lessons)),
		)
		return &responses.SubjectOnDate{
			Week:    string(result.Week),
			Lessons: models.ConvertLessonsIntoResponse(result.Lessons),
			Date:    result.Date.Format(constvars.LayoutDate),
		}, nil
	}

	from, err := utils.DateTimeOrNow(params.From, uc.now(), loc)
	if err != nil {
		return nil, err
	}
	result := uc.Resolver.NextLesson(from, filter)
	uc.Log.Info("timetableUsecase.Find succeeded in search mode",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool("found", result.Lesson != nil),
	)
	return convertPointResult(result), nil
}

func (uc *timetableUsecase) Period(ctx context.Context, params *requests.TimetableParams) (*responses.Period, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("timetableUsecase.Period called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDateKey, params.Date),
		zap.String(constvars.ParamPeriod, params.Period),
		zap.Bool(constvars.ParamLast, params.Last),
	)

	if err := uc.ensureLoaded(); err != nil {
		return nil, err
	}

	ordinal := 0
	if !params.Last {
		if params.Period == "" {
			return nil, exceptions.ErrMissingParam(constvars.ParamPeriod)
		}
		n, err := strconv.Atoi(params.Period)
		if err != nil || n < 1 {
			return nil, exceptions.ErrInvalidPeriod(params.Period)
		}
		ordinal = n
	}

	date, err := utils.DateOrToday(params.Date, uc.now(), uc.Resolver.Location())
	if err != nil {
		return nil, err
	}

	result := uc.Resolver.NthPeriod(date, ordinal, params.Last)
	uc.Log.Info("timetableUsecase.Period succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("outcome", string(result.Outcome)),
		zap.Int(constvars.LoggingLessonCountKey, result.Count),
	)

	response := &responses.Period{
		Week:     string(result.Week),
		Outcome:  string(result.Outcome),
		Count:    result.Count,
		Position: result.Position,
	}
	if result.Lesson != nil {
		lesson := result.Lesson.ConvertIntoResponse()
		response.Lesson = &lesson
	}
	return response, nil
}

// Reload re-reads the configured source. A failed reload keeps the
// previously loaded lessons.
func (uc *timetableUsecase) Reload(ctx context.Context) (*responses.Reload, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("timetableUsecase.Reload called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSourceKey, uc.Source.Location()),
	)

	var count int
	err := utils.LogOperation(uc.Log, "timetable.reload", requestID, func() error {
		body, err := uc.Source.Open(ctx)
		if err != nil {
			return err
		}
		defer body.Close()

		count, err = uc.Store.Load(body)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &responses.Reload{Lessons: count}, nil
}

func (uc *timetableUsecase) Status(ctx context.Context) (*responses.TimetableStatus, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("timetableUsecase.Status called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	return &responses.TimetableStatus{
		Path:       uc.Source.Location(),
		Source:     uc.Source.Kind(),
		Timezone:   uc.Resolver.Location().String(),
		WeekAStart: uc.Resolver.Anchor().Format(constvars.LayoutDate),
		Lessons:    uc.Store.Count(),
		LoadedAt:   uc.Store.LoadedAt(),
	}, nil
}

func (uc *timetableUsecase) ensureLoaded() error {
	if !uc.Store.Loaded() {
		return exceptions.ErrScheduleNotLoaded()
	}
	return nil
}

func convertPointResult(result PointResult) *responses.LessonLookup {
	response := &responses.LessonLookup{Week: string(result.Week)}
	if result.Lesson != nil {
		lesson := result.Lesson.ConvertIntoResponse()
		response.Lesson = &lesson
	}
	return response
}
