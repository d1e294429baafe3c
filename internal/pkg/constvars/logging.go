package constvars

const (
	LoggingRequestIDKey    = "request_id"
	LoggingMethodKey       = "method"
	LoggingEndpointKey     = "endpoint"
	LoggingRemoteAddrKey   = "remote_addr"
	LoggingUserAgentKey    = "user_agent"
	LoggingQueryKey        = "query"
	LoggingStatusCodeKey   = "status_code"
	LoggingDurationKey     = "duration"
	LoggingSuccessKey      = "success"
	LoggingOperationKey    = "operation"
	LoggingErrorCodeKey    = "error_code"
	LoggingErrorMessageKey = "error_message"

	LoggingMCPMethodKey    = "mcp_method"
	LoggingWeekKey         = "week"
	LoggingDateKey         = "date"
	LoggingSubjectKey      = "subject"
	LoggingLessonCountKey  = "lesson_count"
	LoggingSourceKey       = "source"
	LoggingRowKey          = "row"
	LoggingQueryStringKey  = "q"
	LoggingLatitudeKey     = "lat"
	LoggingLongitudeKey    = "lon"
	LoggingUpstreamURLKey  = "upstream_url"
	LoggingCacheKey        = "cache_key"
	LoggingCacheHitKey     = "cache_hit"
	LoggingWaitDurationKey = "wait_duration"
)
