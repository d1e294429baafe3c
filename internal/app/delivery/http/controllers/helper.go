package controllers

import (
	"assistant-service/internal/pkg/dto/requests"
	"assistant-service/internal/pkg/exceptions"
	"assistant-service/internal/pkg/utils"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const requestTimeout = 10 * time.Second

// mcpHandler answers one MCP method and returns the success message and data.
type mcpHandler func(ctx context.Context, params map[string]interface{}) (string, interface{}, error)

// decodeMCPRequest reads and validates an MCP body. An empty body is treated
// as an empty object so it fails validation rather than decoding.
func decodeMCPRequest(r *http.Request) (*requests.MCPRequest, error) {
	request := &requests.MCPRequest{}
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil && !errors.Is(err, io.EOF) {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, exceptions.ErrReadBody(err)
		}
		return nil, exceptions.ErrCannotParseJSON(err)
	}

	request.Method = strings.TrimSpace(request.Method)
	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}
	return request, nil
}

// dispatchMCP decodes the body and routes it to the handler registered for
// the lower-cased method name.
func dispatchMCP(log *zap.Logger, w http.ResponseWriter, r *http.Request, handlers map[string]mcpHandler) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	request, err := decodeMCPRequest(r)
	if err != nil {
		utils.BuildErrorResponse(log, w, err)
		return
	}

	handler, ok := handlers[strings.ToLower(request.Method)]
	if !ok {
		utils.BuildErrorResponse(log, w, exceptions.ErrUnknownMethod(request.Method))
		return
	}

	message, data, err := handler(ctx, request.Params)
	if err != nil {
		writeUsecaseError(log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, http.StatusOK, message, data)
}

func writeUsecaseError(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}
