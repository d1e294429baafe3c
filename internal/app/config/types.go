package config

import "time"

type (
	DriverConfig struct {
		Redis  Redis
		Logger Logger
		Minio  Minio
	}
	Redis struct {
		Enabled  bool
		Host     string
		Port     string
		Password string
		DB       int
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	Minio struct {
		Host     string
		Port     string
		Username string
		Password string
		UseSSL   bool
	}
)

type InternalConfig struct {
	App       App
	Timetable AppTimetable
	Geo       AppGeo
	Chat      AppChat
	OpenAI    AppOpenAI
}

type App struct {
	Env                        string
	Timezone                   string
	MaxRequests                int
	ShutdownTimeoutInSeconds   int
	RequestBodyLimitInKilobyte int
}

type AppTimetable struct {
	Port            string
	Source          string
	CSVPath         string
	WeekAStart      string
	MinioBucketName string
	MinioObjectName string
	ReloadOnSIGHUP  bool
	ReloadCronSpec  string
}

type AppGeo struct {
	Port             string
	NominatimBaseURL string
	UserAgent        string
	MinInterval      time.Duration
	HTTPTimeout      time.Duration
	CacheTTL         time.Duration
}

type AppChat struct {
	Provider          string
	GeoEndpoint       string
	TimetableEndpoint string
	HistoryDB         string
	HistoryLimit      int
	MCPTimeout        time.Duration
}

type AppOpenAI struct {
	BaseURL     string
	APIKey      string
	Model       string
	Timeout     time.Duration
	Temperature float64
}
