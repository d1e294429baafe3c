package exceptions

import (
	"assistant-service/internal/pkg/constvars"
	"fmt"
)

var (
	// Timetable source
	ErrScheduleFormat = func(err error, row int) *CustomError {
		return BuildNewCustomError(err, ErrKindFormat, constvars.StatusInternalServerError, err.Error(), fmt.Sprintf(constvars.ErrDevScheduleFormat, row))
	}
	ErrScheduleHeader = func(err error) *CustomError {
		return BuildNewCustomError(err, ErrKindFormat, constvars.StatusInternalServerError, err.Error(), constvars.ErrDevScheduleHeader)
	}
	ErrScheduleRead = func(err error, source string) *CustomError {
		return BuildNewCustomError(err, ErrKindServer, constvars.StatusInternalServerError, err.Error(), fmt.Sprintf(constvars.ErrDevScheduleRead, source))
	}
	ErrScheduleNotLoaded = func() *CustomError {
		return BuildNewCustomError(nil, ErrKindServer, constvars.StatusServiceUnavailable, constvars.ErrDevScheduleNotLoaded, constvars.ErrDevScheduleNotLoaded)
	}

	// Request input
	ErrInvalidDate = func(err error, value string) *CustomError {
		msg := fmt.Sprintf(constvars.ErrDevInvalidDate, value)
		return BuildNewCustomError(err, ErrKindValidation, constvars.StatusBadRequest, msg, msg)
	}
	ErrInvalidDateTime = func(err error, value string) *CustomError {
		msg := fmt.Sprintf(constvars.ErrDevInvalidDateTime, value)
		return BuildNewCustomError(err, ErrKindValidation, constvars.StatusBadRequest, msg, msg)
	}
	ErrMissingParam = func(param string) *CustomError {
		msg := fmt.Sprintf(constvars.ErrDevMissingParam, param)
		return BuildNewCustomError(nil, ErrKindValidation, constvars.StatusBadRequest, msg, msg)
	}
	ErrInvalidPeriod = func(value string) *CustomError {
		msg := fmt.Sprintf(constvars.ErrDevInvalidPeriod, value)
		return BuildNewCustomError(nil, ErrKindValidation, constvars.StatusBadRequest, msg, msg)
	}
	ErrInvalidCoordinates = func(err error, lat, lon string) *CustomError {
		msg := fmt.Sprintf(constvars.ErrDevInvalidCoordinates, lat, lon)
		return BuildNewCustomError(err, ErrKindValidation, constvars.StatusBadRequest, msg, msg)
	}
	ErrInvalidLimit = func(err error, value string) *CustomError {
		msg := fmt.Sprintf(constvars.ErrDevInvalidLimit, value)
		return BuildNewCustomError(err, ErrKindValidation, constvars.StatusBadRequest, msg, msg)
	}
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, ErrKindValidation, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, ErrKindValidation, constvars.StatusBadRequest, constvars.ErrClientInvalidJSON, constvars.ErrDevCannotParseJSON)
	}
	ErrUnknownMethod = func(method string) *CustomError {
		return BuildNewCustomError(nil, ErrKindValidation, constvars.StatusBadRequest, constvars.ErrClientUnknownMethod, fmt.Sprintf(constvars.ErrDevUnknownMethod, method))
	}

	// Routing
	ErrRouteNotFound = func(method, path string) *CustomError {
		return BuildNewCustomError(nil, ErrKindNotFound, constvars.StatusNotFound, constvars.ErrClientRouteNotFound, fmt.Sprintf(constvars.ErrDevRouteNotFound, method, path))
	}

	ErrMethodNotAllowed = func(method, path string) *CustomError {
		return BuildNewCustomError(nil, ErrKindValidation, constvars.StatusMethodNotAllowed, constvars.ErrClientMethodNotAllowed, fmt.Sprintf(constvars.ErrDevMethodNotAllowed, method, path))
	}
	ErrTooManyRequests = func(remoteAddr string) *CustomError {
		return BuildNewCustomError(nil, ErrKindValidation, constvars.StatusTooManyRequests, constvars.ErrClientTooManyRequests, fmt.Sprintf(constvars.ErrDevTooManyRequests, remoteAddr))
	}
	ErrReadBody = func(err error) *CustomError {
		return BuildNewCustomError(err, ErrKindValidation, constvars.StatusBadRequest, constvars.ErrClientRequestBodyTooLarge, constvars.ErrDevReadBody)
	}

	// HTTP upstream
	ErrCreateHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, ErrKindServer, constvars.StatusInternalServerError, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCreateHTTPRequest)
	}
	ErrSendHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, ErrKindUpstream, constvars.StatusBadGateway, constvars.ErrClientUpstreamUnavailable, constvars.ErrDevSendHTTPRequest)
	}
	ErrUpstreamStatus = func(upstream string, statusCode int) *CustomError {
		return BuildNewCustomError(nil, ErrKindUpstream, constvars.StatusBadGateway, constvars.ErrClientUpstreamUnavailable, fmt.Sprintf(constvars.ErrDevUpstreamStatus, upstream, statusCode))
	}
	ErrDecodeResponse = func(err error, upstream string) *CustomError {
		return BuildNewCustomError(err, ErrKindUpstream, constvars.StatusBadGateway, constvars.ErrClientUpstreamUnavailable, fmt.Sprintf(constvars.ErrDevDecodeResponse, upstream))
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, ErrKindServer, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}

	// Redis
	ErrRedisGet = func(err error) *CustomError {
		return BuildNewCustomError(err, ErrKindServer, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisGetData)
	}
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, ErrKindServer, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSetData)
	}

	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, ErrKindServer, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDeleteData)
	}

	// Minio
	ErrMinioGetObject = func(err error, bucketName, objectName string) *CustomError {
		return BuildNewCustomError(err, ErrKindServer, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevMinioGetObject, objectName, bucketName))
	}

	// Default Server
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, ErrKindServer, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrServerProcess = func(err error) *CustomError {
		return BuildNewCustomError(err, ErrKindServer, constvars.StatusInternalServerError, err.Error(), constvars.ErrDevServerProcess)
	}

	// Assistant CLI
	ErrMCPEndpointNotSet = func() *CustomError {
		return BuildNewCustomError(nil, ErrKindValidation, constvars.StatusBadRequest, constvars.ErrDevMCPEndpointNotSet, constvars.ErrDevMCPEndpointNotSet)
	}
	ErrMCPInvalidEndpoint = func(err error, endpoint string) *CustomError {
		msg := fmt.Sprintf(constvars.ErrDevMCPInvalidEndpoint, endpoint)
		return BuildNewCustomError(err, ErrKindValidation, constvars.StatusBadRequest, msg, msg)
	}
	ErrMCPNotConnected = func() *CustomError {
		return BuildNewCustomError(nil, ErrKindValidation, constvars.StatusBadRequest, constvars.ErrDevMCPNotConnected, constvars.ErrDevMCPNotConnected)
	}
	ErrUnknownProvider = func(name string) *CustomError {
		msg := fmt.Sprintf(constvars.ErrDevUnknownProvider, name)
		return BuildNewCustomError(nil, ErrKindValidation, constvars.StatusBadRequest, msg, msg)
	}
	ErrProviderNotConfigured = func(provider, key string) *CustomError {
		msg := fmt.Sprintf(constvars.ErrDevProviderNotConfigured, provider, key)
		return BuildNewCustomError(nil, ErrKindValidation, constvars.StatusBadRequest, msg, msg)
	}
	ErrTranscriptStore = func(err error, operation string) *CustomError {
		return BuildNewCustomError(err, ErrKindServer, constvars.StatusInternalServerError, err.Error(), fmt.Sprintf(constvars.ErrDevTranscriptStore, operation))
	}
)
