package nominatim

import (
	"assistant-service/internal/app/contracts"
	"assistant-service/internal/pkg/constvars"
	"assistant-service/internal/pkg/exceptions"
	"assistant-service/internal/pkg/utils"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const upstreamName = "nominatim"

type nominatimClient struct {
	BaseUrl    string
	Agent      string
	HTTPClient *http.Client
	Throttle   contracts.Throttle
	Log        *zap.Logger
}

// NewNominatimClient returns a client for the Nominatim search and reverse
// APIs. Every request goes through throttle first.
func NewNominatimClient(baseUrl, userAgent string, timeout time.Duration, throttle contracts.Throttle, logger *zap.Logger) contracts.NominatimClient {
	return &nominatimClient{
		BaseUrl:    strings.TrimRight(baseUrl, "/"),
		Agent:      userAgent,
		HTTPClient: &http.Client{Timeout: timeout},
		Throttle:   throttle,
		Log:        logger,
	}
}

func (c *nominatimClient) BaseURL() string {
	return c.BaseUrl
}

func (c *nominatimClient) UserAgent() string {
	return c.Agent
}

func (c *nominatimClient) Search(ctx context.Context, query string, limit int) ([]contracts.NominatimPlace, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("nominatimClient.Search called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueryStringKey, query),
	)

	values := url.Values{}
	values.Set("q", query)
	values.Set("format", "json")
	values.Set("limit", strconv.Itoa(limit))

	var items []map[string]interface{}
	if err := c.getJSON(ctx, "/search", values, &items); err != nil {
		return nil, err
	}

	places := make([]contracts.NominatimPlace, 0, len(items))
	for _, item := range items {
		places = append(places, toPlace(item))
	}

	c.Log.Info("nominatimClient.Search succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("matches", len(places)),
	)
	return places, nil
}

func (c *nominatimClient) Reverse(ctx context.Context, lat, lon float64) (*contracts.NominatimPlace, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("nominatimClient.Reverse called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Float64(constvars.LoggingLatitudeKey, lat),
		zap.Float64(constvars.LoggingLongitudeKey, lon),
	)

	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	values.Set("format", "json")

	var item map[string]interface{}
	if err := c.getJSON(ctx, "/reverse", values, &item); err != nil {
		return nil, err
	}

	place := toPlace(item)
	return &place, nil
}

func (c *nominatimClient) getJSON(ctx context.Context, path string, values url.Values, out interface{}) error {
	requestID := utils.GetRequestID(ctx)

	if err := c.Throttle.Wait(ctx); err != nil {
		return err
	}

	endpoint := c.BaseUrl + path + "?" + values.Encode()
	c.Log.Debug("nominatimClient.getJSON built URL",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUpstreamURLKey, endpoint),
	)

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, endpoint, nil)
	if err != nil {
		c.Log.Error("nominatimClient.getJSON error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderUserAgent, c.Agent)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("nominatimClient.getJSON error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		io.Copy(io.Discard, resp.Body)
		c.Log.Error("nominatimClient.getJSON unexpected status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		)
		return exceptions.ErrUpstreamStatus(upstreamName, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.Log.Error("nominatimClient.getJSON error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrDecodeResponse(err, upstreamName)
	}
	return nil
}

func toPlace(item map[string]interface{}) contracts.NominatimPlace {
	place := contracts.NominatimPlace{Raw: item}
	place.Lat = stringField(item, "lat")
	place.Lon = stringField(item, "lon")
	place.DisplayName = stringField(item, "display_name")
	if address, ok := item["address"].(map[string]interface{}); ok {
		place.Address = address
	}
	return place
}

// stringField reads a field Nominatim may send as either a string or a number.
func stringField(item map[string]interface{}, key string) string {
	switch v := item[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
