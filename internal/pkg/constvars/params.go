package constvars

const (
	ParamDate     = "date"
	ParamDateTime = "datetime"
	ParamFrom     = "from"
	ParamSubject  = "subject"
	ParamPeriod   = "n"
	ParamLast     = "last"

	ParamGeoQuery = "q"
	ParamGeoLimit = "limit"
	ParamLat      = "lat"
	ParamLon      = "lon"
)

// ParamAliases lists, per canonical parameter, the accepted request keys in
// lookup order. Keys are compared case-insensitively; the first hit wins.
var ParamAliases = map[string][]string{
	ParamDate:     {"date", "day", "on"},
	ParamDateTime: {"datetime", "at", "time", "when"},
	ParamFrom:     {"from", "since", "start"},
	ParamSubject:  {"subject", "q", "query"},
	ParamPeriod:   {"n", "ordinal", "period"},
	ParamLast:     {"last"},

	ParamGeoQuery: {"q", "query", "address"},
	ParamGeoLimit: {"limit"},
	ParamLat:      {"lat", "latitude"},
	ParamLon:      {"lon", "lng", "longitude"},
}

const (
	URLQueryParamDate  = "date"
	URLQueryParamQuery = "q"
	URLQueryParamLimit = "limit"
	URLQueryParamLat   = "lat"
	URLQueryParamLon   = "lon"
)
