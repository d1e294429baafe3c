package config

import (
	"assistant-service/internal/pkg/utils"
	"time"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Redis: Redis{
			Enabled:  utils.GetEnvBool("REDIS_ENABLED", false),
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		Minio: Minio{
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Username: utils.GetEnvString("MINIO_USERNAME", ""),
			Password: utils.GetEnvString("MINIO_PASSWORD", ""),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Europe/London"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 20),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			RequestBodyLimitInKilobyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_KILOBYTE", 64),
		},
		Timetable: AppTimetable{
			Port:            utils.GetEnvString("TIMETABLE_PORT", ":8082"),
			Source:          utils.GetEnvString("TIMETABLE_SOURCE", "file"),
			CSVPath:         utils.GetEnvString("TIMETABLE_CSV_PATH", "timetable.csv"),
			WeekAStart:      utils.GetEnvString("TIMETABLE_WEEK_A_START", ""),
			MinioBucketName: utils.GetEnvString("TIMETABLE_MINIO_BUCKET_NAME", "timetable"),
			MinioObjectName: utils.GetEnvString("TIMETABLE_MINIO_OBJECT_NAME", "timetable.csv"),
			ReloadOnSIGHUP:  utils.GetEnvBool("TIMETABLE_RELOAD_ON_SIGHUP", true),
			ReloadCronSpec:  utils.GetEnvString("TIMETABLE_RELOAD_CRON_SPEC", ""),
		},
		Geo: AppGeo{
			Port:             utils.GetEnvString("GEO_PORT", ":8081"),
			NominatimBaseURL: utils.GetEnvString("GEO_NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
			UserAgent:        utils.GetEnvString("GEO_USER_AGENT", "assistant-geo/0.1 (+you@example.com)"),
			MinInterval:      utils.GetEnvDuration("GEO_MIN_INTERVAL_MS", time.Second, time.Millisecond),
			HTTPTimeout:      utils.GetEnvDuration("GEO_HTTP_TIMEOUT_IN_SECONDS", 20*time.Second, time.Second),
			CacheTTL:         utils.GetEnvDuration("GEO_CACHE_TTL_IN_MINUTES", 24*time.Hour, time.Minute),
		},
		Chat: AppChat{
			Provider:          utils.GetEnvString("CHAT_PROVIDER", "echo"),
			GeoEndpoint:       utils.GetEnvString("CHAT_GEO_ENDPOINT", "http://127.0.0.1:8081/mcp"),
			TimetableEndpoint: utils.GetEnvString("CHAT_TIMETABLE_ENDPOINT", "http://127.0.0.1:8082/mcp"),
			HistoryDB:         utils.GetEnvString("CHAT_HISTORY_DB", ""),
			HistoryLimit:      utils.GetEnvInt("CHAT_HISTORY_LIMIT", 20),
			MCPTimeout:        utils.GetEnvDuration("CHAT_MCP_TIMEOUT_IN_SECONDS", 10*time.Second, time.Second),
		},
		OpenAI: AppOpenAI{
			BaseURL:     utils.GetEnvString("OPENAI_BASE_URL", "https://api.openai.com"),
			APIKey:      utils.GetEnvString("OPENAI_API_KEY", ""),
			Model:       utils.GetEnvString("OPENAI_MODEL", "gpt-4o-mini"),
			Timeout:     utils.GetEnvDuration("OPENAI_TIMEOUT_IN_SECONDS", 30*time.Second, time.Second),
			Temperature: utils.GetEnvFloat("OPENAI_TEMPERATURE", 0.2),
		},
	}
}
