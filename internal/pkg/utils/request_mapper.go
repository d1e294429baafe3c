package utils

import (
	"assistant-service/internal/pkg/constvars"
	"assistant-service/internal/pkg/dto/requests"
	"assistant-service/internal/pkg/exceptions"
	"fmt"
	"strconv"
	"strings"
)

// LookupParam resolves a canonical parameter against its alias list in
// constvars.ParamAliases. Aliases are tried in order and matched against
// the request keys case-insensitively; the first present alias wins.
func LookupParam(params map[string]interface{}, canonical string) (interface{}, bool) {
	if len(params) == 0 {
		return nil, false
	}
	aliases, ok := constvars.ParamAliases[canonical]
	if !ok {
		aliases = []string{canonical}
	}

	folded := make(map[string]interface{}, len(params))
	for key, value := range params {
		lower := strings.ToLower(strings.TrimSpace(key))
		if _, seen := folded[lower]; !seen {
			folded[lower] = value
		}
	}

	for _, alias := range aliases {
		if value, found := folded[alias]; found && value != nil {
			return value, true
		}
	}
	return nil, false
}

// LookupStringParam returns the trimmed string form of a parameter, or "".
func LookupStringParam(params map[string]interface{}, canonical string) string {
	value, ok := LookupParam(params, canonical)
	if !ok {
		return ""
	}
	return strings.TrimSpace(stringify(value))
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

func MapMCPParamsToTimetableParams(params map[string]interface{}) *requests.TimetableParams {
	out := &requests.TimetableParams{
		Date:     LookupStringParam(params, constvars.ParamDate),
		DateTime: LookupStringParam(params, constvars.ParamDateTime),
		From:     LookupStringParam(params, constvars.ParamFrom),
		Subject:  LookupStringParam(params, constvars.ParamSubject),
		Period:   LookupStringParam(params, constvars.ParamPeriod),
	}

	if last, ok := LookupParam(params, constvars.ParamLast); ok {
		switch v := last.(type) {
		case bool:
			out.Last = v
		default:
			parsed, err := strconv.ParseBool(stringify(v))
			out.Last = err == nil && parsed
		}
	}
	if strings.EqualFold(out.Period, constvars.PeriodLastKeyword) {
		out.Last = true
		out.Period = ""
	}
	return out
}

func MapMCPParamsToGeocodeParams(params map[string]interface{}) (*requests.GeocodeParams, error) {
	out := &requests.GeocodeParams{
		Query: LookupStringParam(params, constvars.ParamGeoQuery),
		Limit: constvars.GeoDefaultLimit,
	}
	if raw := LookupStringParam(params, constvars.ParamGeoLimit); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, exceptions.ErrInvalidLimit(err, raw)
		}
		out.Limit = limit
	}
	if err := ValidateStruct(out); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}
	return out, nil
}

func MapMCPParamsToReverseParams(params map[string]interface{}) (*requests.ReverseParams, error) {
	rawLat := LookupStringParam(params, constvars.ParamLat)
	rawLon := LookupStringParam(params, constvars.ParamLon)
	return ParseReverseParams(rawLat, rawLon)
}

func ParseReverseParams(rawLat, rawLon string) (*requests.ReverseParams, error) {
	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		return nil, exceptions.ErrInvalidCoordinates(err, rawLat, rawLon)
	}
	lon, err := strconv.ParseFloat(rawLon, 64)
	if err != nil {
		return nil, exceptions.ErrInvalidCoordinates(err, rawLat, rawLon)
	}
	out := &requests.ReverseParams{Lat: lat, Lon: lon}
	if err := ValidateStruct(out); err != nil {
		return nil, exceptions.ErrInvalidCoordinates(err, rawLat, rawLon)
	}
	return out, nil
}
