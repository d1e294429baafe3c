package controllers

import (
	"assistant-service/internal/app/contracts"
	"assistant-service/internal/pkg/constvars"
	"assistant-service/internal/pkg/dto/requests"
	"assistant-service/internal/pkg/exceptions"
	"assistant-service/internal/pkg/utils"
	"context"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

type GeoController struct {
	Log              *zap.Logger
	GeocodingUsecase contracts.GeocodingUsecase
	handlers         map[string]mcpHandler
}

func NewGeoController(logger *zap.Logger, geocodingUsecase contracts.GeocodingUsecase) *GeoController {
	ctrl := &GeoController{
		Log:              logger,
		GeocodingUsecase: geocodingUsecase,
	}
	ctrl.handlers = map[string]mcpHandler{
		constvars.MCPMethodGeocode: ctrl.geocode,
		constvars.MCPMethodReverse: ctrl.reverse,
	}
	return ctrl
}

func (ctrl *GeoController) MCP(w http.ResponseWriter, r *http.Request) {
	dispatchMCP(ctrl.Log, w, r, ctrl.handlers)
}

func (ctrl *GeoController) Geocode(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	query := r.URL.Query()
	params := &requests.GeocodeParams{
		Query: strings.TrimSpace(query.Get(constvars.URLQueryParamQuery)),
		Limit: constvars.GeoDefaultLimit,
	}
	if raw := strings.TrimSpace(query.Get(constvars.URLQueryParamLimit)); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInvalidLimit(err, raw))
			return
		}
		params.Limit = limit
	}
	if err := utils.ValidateStruct(params); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	response, err := ctrl.GeocodingUsecase.Geocode(ctx, params)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GeocodeSuccessMessage, response)
}

func (ctrl *GeoController) Reverse(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	query := r.URL.Query()
	params, err := utils.ParseReverseParams(query.Get(constvars.URLQueryParamLat), query.Get(constvars.URLQueryParamLon))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	response, err := ctrl.GeocodingUsecase.Reverse(ctx, params)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReverseSuccessMessage, response)
}

func (ctrl *GeoController) Status(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetStatusSuccessMessage, ctrl.GeocodingUsecase.Status(r.Context()))
}

func (ctrl *GeoController) geocode(ctx context.Context, params map[string]interface{}) (string, interface{}, error) {
	request, err := utils.MapMCPParamsToGeocodeParams(params)
	if err != nil {
		return "", nil, err
	}
	response, err := ctrl.GeocodingUsecase.Geocode(ctx, request)
	return constvars.GeocodeSuccessMessage, response, err
}

func (ctrl *GeoController) reverse(ctx context.Context, params map[string]interface{}) (string, interface{}, error) {
	request, err := utils.MapMCPParamsToReverseParams(params)
	if err != nil {
		return "", nil, err
	}
	response, err := ctrl.GeocodingUsecase.Reverse(ctx, request)
	return constvars.ReverseSuccessMessage, response, err
}
