package controllers

import (
	"assistant-service/internal/app/contracts"
	"assistant-service/internal/pkg/constvars"
	"assistant-service/internal/pkg/dto/requests"
	"assistant-service/internal/pkg/exceptions"
	"assistant-service/internal/pkg/utils"
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type TimetableController struct {
	Log              *zap.Logger
	TimetableUsecase contracts.TimetableUsecase
	handlers         map[string]mcpHandler
}

func NewTimetableController(logger *zap.Logger, timetableUsecase contracts.TimetableUsecase) *TimetableController {
	ctrl := &TimetableController{
		Log:              logger,
		TimetableUsecase: timetableUsecase,
	}
	ctrl.handlers = map[string]mcpHandler{
		constvars.MCPMethodWeekType: ctrl.weekType,
		constvars.MCPMethodDay:      ctrl.day,
		constvars.MCPMethodAt:       ctrl.at,
		constvars.MCPMethodNext:     ctrl.next,
		constvars.MCPMethodFind:     ctrl.find,
		constvars.MCPMethodPeriod:   ctrl.period,
		constvars.MCPMethodReload:   ctrl.reload,
	}
	return ctrl
}

func (ctrl *TimetableController) MCP(w http.ResponseWriter, r *http.Request) {
	dispatchMCP(ctrl.Log, w, r, ctrl.handlers)
}

func (ctrl *TimetableController) Status(w http.ResponseWriter, r *http.Request) {
	response, err := ctrl.TimetableUsecase.Status(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetStatusSuccessMessage, response)
}

// Day serves GET /day?date=YYYY-MM-DD. Unlike the MCP method, the date is
// required here.
func (ctrl *TimetableController) Day(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	date := strings.TrimSpace(r.URL.Query().Get(constvars.URLQueryParamDate))
	if date == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingParam(constvars.URLQueryParamDate))
		return
	}

	response, err := ctrl.TimetableUsecase.Day(ctx, &requests.TimetableParams{Date: date})
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDayLessonsSuccessMessage, response)
}

func (ctrl *TimetableController) weekType(ctx context.Context, params map[string]interface{}) (string, interface{}, error) {
	response, err := ctrl.TimetableUsecase.WeekType(ctx, utils.MapMCPParamsToTimetableParams(params))
	return constvars.GetWeekTypeSuccessMessage, response, err
}

func (ctrl *TimetableController) day(ctx context.Context, params map[string]interface{}) (string, interface{}, error) {
	response, err := ctrl.TimetableUsecase.Day(ctx, utils.MapMCPParamsToTimetableParams(params))
	return constvars.GetDayLessonsSuccessMessage, response, err
}

func (ctrl *TimetableController) at(ctx context.Context, params map[string]interface{}) (string, interface{}, error) {
	response, err := ctrl.TimetableUsecase.At(ctx, utils.MapMCPParamsToTimetableParams(params))
	return constvars.GetLessonAtSuccessMessage, response, err
}

func (ctrl *TimetableController) next(ctx context.Context, params map[string]interface{}) (string, interface{}, error) {
	response, err := ctrl.TimetableUsecase.Next(ctx, utils.MapMCPParamsToTimetableParams(params))
	return constvars.GetNextLessonSuccessMessage, response, err
}

func (ctrl *TimetableController) find(ctx context.Context, params map[string]interface{}) (string, interface{}, error) {
	response, err := ctrl.TimetableUsecase.Find(ctx, utils.MapMCPParamsToTimetableParams(params))
	return constvars.FindLessonsSuccessMessage, response, err
}

func (ctrl *TimetableController) period(ctx context.Context, params map[string]interface{}) (string, interface{}, error) {
	response, err := ctrl.TimetableUsecase.Period(ctx, utils.MapMCPParamsToTimetableParams(params))
	return constvars.GetPeriodSuccessMessage, response, err
}

func (ctrl *TimetableController) reload(ctx context.Context, params map[string]interface{}) (string, interface{}, error) {
	response, err := ctrl.TimetableUsecase.Reload(ctx)
	return constvars.ReloadTimetableSuccessMessage, response, err
}
