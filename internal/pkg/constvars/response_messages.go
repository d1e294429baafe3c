package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Timetable messages
	GetWeekTypeSuccessMessage     = "get week type successfully"
	GetDayLessonsSuccessMessage   = "get day lessons successfully"
	GetLessonAtSuccessMessage     = "get lesson at time successfully"
	GetNextLessonSuccessMessage   = "get next lesson successfully"
	FindLessonsSuccessMessage     = "find lessons by subject successfully"
	GetPeriodSuccessMessage       = "get period successfully"
	ReloadTimetableSuccessMessage = "timetable reloaded successfully"
	GetStatusSuccessMessage       = "get status successfully"

	// Geocoding messages
	GeocodeSuccessMessage = "geocode successfully"
	ReverseSuccessMessage = "reverse geocode successfully"
)
