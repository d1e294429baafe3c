package geocoding

import (
	"assistant-service/internal/app/contracts"
	"assistant-service/internal/pkg/constvars"
	"assistant-service/internal/pkg/dto/requests"
	"assistant-service/internal/pkg/dto/responses"
	"assistant-service/internal/pkg/utils"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type geocodingUsecase struct {
	NominatimClient contracts.NominatimClient
	RedisRepository contracts.RedisRepository
	CacheTTL        time.Duration
	MinInterval     time.Duration
	Log             *zap.Logger
}

// NewGeocodingUsecase wires the upstream client. redisRepository may be nil,
// in which case every request goes upstream.
func NewGeocodingUsecase(
	nominatimClient contracts.NominatimClient,
	redisRepository contracts.RedisRepository,
	cacheTTL time.Duration,
	minInterval time.Duration,
	logger *zap.Logger,
) contracts.GeocodingUsecase {
	return &geocodingUsecase{
		NominatimClient: nominatimClient,
		RedisRepository: redisRepository,
		CacheTTL:        cacheTTL,
		MinInterval:     minInterval,
		Log:             logger,
	}
}

func (uc *geocodingUsecase) Geocode(ctx context.Context, params *requests.GeocodeParams) (*responses.Geocode, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("geocodingUsecase.Geocode called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueryStringKey, params.Query),
	)

	cacheKey := fmt.Sprintf("%s:SEARCH:%s:%d", constvars.GeoCacheKeyPrefix, normalizeQuery(params.Query), params.Limit)
	response := &responses.Geocode{}
	if uc.readCache(ctx, cacheKey, response) {
		return response, nil
	}

	places, err := uc.NominatimClient.Search(ctx, params.Query, params.Limit)
	if err != nil {
		return nil, err
	}

	response = &responses.Geocode{Matches: len(places)}
	if len(places) > 0 {
		top := places[0]
		lat := parseCoordinate(top.Lat)
		lon := parseCoordinate(top.Lon)
		response.Lat = &lat
		response.Lon = &lon
		response.DisplayName = top.DisplayName
		response.Raw = top.Raw
	}

	uc.writeCache(ctx, cacheKey, response)
	uc.Log.Info("geocodingUsecase.Geocode succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("matches", response.Matches),
	)
	return response, nil
}

func (uc *geocodingUsecase) Reverse(ctx context.Context, params *requests.ReverseParams) (*responses.Reverse, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("geocodingUsecase.Reverse called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Float64(constvars.LoggingLatitudeKey, params.Lat),
		zap.Float64(constvars.LoggingLongitudeKey, params.Lon),
	)

	cacheKey := fmt.Sprintf("%s:REVERSE:%s:%s", constvars.GeoCacheKeyPrefix,
		strconv.FormatFloat(params.Lat, 'f', 6, 64),
		strconv.FormatFloat(params.Lon, 'f', 6, 64),
	)
	response := &responses.Reverse{}
	if uc.readCache(ctx, cacheKey, response) {
		return response, nil
	}

	place, err := uc.NominatimClient.Reverse(ctx, params.Lat, params.Lon)
	if err != nil {
		return nil, err
	}

	response = &responses.Reverse{
		Lat:         params.Lat,
		Lon:         params.Lon,
		DisplayName: place.DisplayName,
		Address:     place.Address,
		Raw:         place.Raw,
	}

	uc.writeCache(ctx, cacheKey, response)
	uc.Log.Info("geocodingUsecase.Reverse succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return response, nil
}

func (uc *geocodingUsecase) Status(ctx context.Context) *responses.GeoStatus {
	return &responses.GeoStatus{
		UpstreamBaseURL: uc.NominatimClient.BaseURL(),
		UserAgent:       uc.NominatimClient.UserAgent(),
		MinIntervalMs:   int(uc.MinInterval / time.Millisecond),
		CacheEnabled:    uc.RedisRepository != nil,
	}
}

// readCache reports a hit only when a cached value decoded cleanly. Cache
// failures are logged and treated as misses.
func (uc *geocodingUsecase) readCache(ctx context.Context, key string, out interface{}) bool {
	if uc.RedisRepository == nil {
		return false
	}
	requestID := utils.GetRequestID(ctx)

	data, err := uc.RedisRepository.Get(ctx, key)
	if err != nil {
		uc.Log.Warn("geocodingUsecase.readCache error retrieving data from Redis",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCacheKey, key),
			zap.Error(err),
		)
		return false
	}
	if data == "" {
		uc.Log.Debug("geocodingUsecase.readCache miss",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCacheKey, key),
		)
		return false
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		uc.Log.Warn("geocodingUsecase.readCache error parsing JSON from Redis",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCacheKey, key),
			zap.Error(err),
		)
		return false
	}

	uc.Log.Info("geocodingUsecase.readCache hit",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCacheKey, key),
		zap.Bool(constvars.LoggingCacheHitKey, true),
	)
	return true
}

func (uc *geocodingUsecase) writeCache(ctx context.Context, key string, value interface{}) {
	if uc.RedisRepository == nil {
		return
	}
	if err := uc.RedisRepository.Set(ctx, key, value, uc.CacheTTL); err != nil {
		uc.Log.Warn("geocodingUsecase.writeCache error caching data in Redis",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingCacheKey, key),
			zap.Error(err),
		)
	}
}

func normalizeQuery(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}

func parseCoordinate(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return value
}
