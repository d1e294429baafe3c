package responses

type Geocode struct {
	Matches     int                    `json:"matches"`
	Lat         *float64               `json:"lat,omitempty"`
	Lon         *float64               `json:"lon,omitempty"`
	DisplayName string                 `json:"display_name,omitempty"`
	Raw         map[string]interface{} `json:"raw,omitempty"`
}

type Reverse struct {
	Lat         float64                `json:"lat"`
	Lon         float64                `json:"lon"`
	DisplayName string                 `json:"display_name"`
	Address     map[string]interface{} `json:"address"`
	Raw         map[string]interface{} `json:"raw"`
}

type GeoStatus struct {
	UpstreamBaseURL string `json:"upstream_base_url"`
	UserAgent       string `json:"user_agent"`
	MinIntervalMs   int    `json:"min_interval_ms"`
	CacheEnabled    bool   `json:"cache_enabled"`
}
