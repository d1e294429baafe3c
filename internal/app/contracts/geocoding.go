package contracts

import (
	"assistant-service/internal/pkg/dto/requests"
	"assistant-service/internal/pkg/dto/responses"
	"context"
)

// NominatimPlace is the subset of a Nominatim search/reverse item we read.
// The untouched object is kept in Raw.
type NominatimPlace struct {
	Lat         string
	Lon         string
	DisplayName string
	Address     map[string]interface{}
	Raw         map[string]interface{}
}

type NominatimClient interface {
	Search(ctx context.Context, query string, limit int) ([]NominatimPlace, error)
	Reverse(ctx context.Context, lat, lon float64) (*NominatimPlace, error)
	BaseURL() string
	UserAgent() string
}

// Throttle gates outbound calls to an upstream provider.
type Throttle interface {
	Wait(ctx context.Context) error
}

type GeocodingUsecase interface {
	Geocode(ctx context.Context, params *requests.GeocodeParams) (*responses.Geocode, error)
	Reverse(ctx context.Context, params *requests.ReverseParams) (*responses.Reverse, error)
	Status(ctx context.Context) *responses.GeoStatus
}
