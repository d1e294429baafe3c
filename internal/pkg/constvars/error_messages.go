package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":   "is required",
	"min":        "must be at least %s",
	"max":        "must be at most %s",
	"gte":        "must be greater than or equal to %s",
	"lte":        "must be less than or equal to %s",
	"oneof":      "must be one of [%s]",
	"latitude":   "must be a valid latitude",
	"longitude":  "must be a valid longitude",
	"mcp_method": "must look like <namespace>.<name> or a bare method name",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"gte":   true,
	"lte":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientRouteNotFound                 = "not found"
	ErrClientInvalidJSON                   = "invalid JSON"
	ErrClientUnknownMethod                 = "unknown method"
	ErrClientUpstreamUnavailable           = "upstream service unavailable"
	ErrClientMethodNotAllowed              = "method not allowed"
	ErrClientTooManyRequests               = "too many requests, please slow down"
	ErrClientRequestBodyTooLarge           = "request body too large"
)

// Error messages for developers
const (
	ErrDevInvalidInput           = "invalid input"
	ErrDevCannotParseJSON        = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON      = "cannot convert struct or other data types to JSON"
	ErrDevValidationFailed       = "request validation failed"
	ErrDevServerProcess          = "server failed to process the request"
	ErrDevServerDeadlineExceeded = "server deadline exceeded"
	ErrDevCreateHTTPRequest      = "failed to create HTTP request"
	ErrDevSendHTTPRequest        = "failed to send HTTP request"
	ErrDevDecodeResponse         = "failed to decode response from %s"
	ErrDevUpstreamStatus         = "upstream %s responded with status %d"
	ErrDevRouteNotFound          = "no route for %s %s"
	ErrDevUnknownMethod          = "unknown MCP method %q"
	ErrDevMethodNotAllowed       = "method %s not allowed on %s"
	ErrDevTooManyRequests        = "inbound rate limit exceeded for %s"
	ErrDevReadBody               = "failed to read request body"

	// Timetable
	ErrDevScheduleFormat    = "malformed timetable source at row %d"
	ErrDevScheduleHeader    = "malformed timetable header"
	ErrDevScheduleRead      = "cannot read timetable source %s"
	ErrDevScheduleNotLoaded = "timetable has not been loaded yet"
	ErrDevInvalidDate       = "invalid date %q, expected YYYY-MM-DD"
	ErrDevInvalidDateTime   = "invalid datetime %q, expected YYYY-MM-DDTHH:MM"
	ErrDevMissingParam      = "missing required parameter %s"
	ErrDevInvalidPeriod     = "invalid period %q, expected a positive ordinal or 'last'"

	// Geocoding
	ErrDevInvalidCoordinates = "invalid coordinates lat=%q lon=%q"
	ErrDevInvalidLimit       = "invalid limit %q"

	// Redis
	ErrDevRedisGetData    = "failed to get data from redis"
	ErrDevRedisSetData    = "failed to set data to redis"
	ErrDevRedisDeleteData = "failed to delete data from redis"

	// Minio
	ErrDevMinioGetObject = "failed to get object %s from bucket %s"

	// Assistant CLI
	ErrDevMCPEndpointNotSet     = "MCP endpoint is not set"
	ErrDevMCPInvalidEndpoint    = "invalid MCP endpoint %q"
	ErrDevMCPNotConnected       = "MCP client is not connected"
	ErrDevUnknownProvider       = "unknown provider %q, expected echo or openai"
	ErrDevProviderNotConfigured = "provider %s is not configured: %s is not set"
	ErrDevTranscriptStore       = "transcript store %s failed"
)
