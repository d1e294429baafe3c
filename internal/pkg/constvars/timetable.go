package constvars

const (
	MCPMethodWeekType = "timetable.weektype"
	MCPMethodDay      = "timetable.day"
	MCPMethodAt       = "timetable.at"
	MCPMethodNext     = "timetable.next"
	MCPMethodFind     = "timetable.find"
	MCPMethodPeriod   = "timetable.period"
	MCPMethodReload   = "timetable.reload"

	MCPMethodGeocode = "geocode"
	MCPMethodReverse = "reverse"
)

const (
	TimetableSourceFile  = "file"
	TimetableSourceMinio = "minio"
)

const (
	LayoutDate        = "2006-01-02"
	LayoutDateTime    = "2006-01-02T15:04"
	LayoutClock       = "15:04"
	PeriodLastKeyword = "last"
)

const (
	GeoCacheKeyPrefix = "GEO"
	GeoDefaultLimit   = 1
)
