package requests

// MCPRequest is the body accepted on POST /mcp by both services.
type MCPRequest struct {
	Method string                 `json:"method" validate:"required,mcp_method"`
	Params map[string]interface{} `json:"params"`
}

// TimetableParams holds the timetable parameters after alias resolution.
// Empty strings mean the parameter was absent.
type TimetableParams struct {
	Date     string
	DateTime string
	From     string
	Subject  string
	Period   string
	Last     bool
}

type GeocodeParams struct {
	Query string `json:"q" validate:"required"`
	Limit int    `json:"limit" validate:"gte=1,lte=50"`
}

type ReverseParams struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lon float64 `json:"lon" validate:"longitude"`
}
