package main

import (
	"assistant-service/internal/app/config"
	"assistant-service/internal/app/contracts"
	"assistant-service/internal/app/delivery/cli"
	"assistant-service/internal/app/drivers/database"
	"assistant-service/internal/app/drivers/logger"
	"assistant-service/internal/app/services/core/assistant"
	"assistant-service/internal/app/services/core/chat"
	"assistant-service/internal/app/services/shared/mcpclient"
	"assistant-service/internal/app/services/shared/providers"
	"assistant-service/internal/app/services/shared/transcript"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const defaultHistoryDBKeyword = "default"

var (
	chatProvider          string
	chatGeoEndpoint       string
	chatTimetableEndpoint string
	chatHistoryDB         string
	chatHistoryLimit      int
	chatVerbose           bool
)

func main() {
	rootCmd := newRootCmd(config.NewInternalConfig())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(internalConfig *config.InternalConfig) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "assistant",
		Short:         "Chat assistant for timetable and geocoding questions",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAssistantCmd(cmd, internalConfig)
		},
	}

	defaults := internalConfig.Chat
	rootCmd.Flags().StringVar(&chatProvider, "provider", defaults.Provider, "text provider (echo|openai)")
	rootCmd.Flags().StringVar(&chatGeoEndpoint, "geo-endpoint", defaults.GeoEndpoint, "geo service MCP endpoint")
	rootCmd.Flags().StringVar(&chatTimetableEndpoint, "timetable-endpoint", defaults.TimetableEndpoint, "timetable service MCP endpoint")
	rootCmd.Flags().StringVar(&chatHistoryDB, "history-db", defaults.HistoryDB, `SQLite transcript path ("default" for the XDG data dir, empty disables)`)
	rootCmd.Flags().IntVar(&chatHistoryLimit, "history-limit", defaults.HistoryLimit, "messages shown by /history saved")
	rootCmd.Flags().BoolVar(&chatVerbose, "verbose", false, "log debug output to stderr")

	return rootCmd
}

func runAssistantCmd(cmd *cobra.Command, internalConfig *config.InternalConfig) error {
	fileCfg, err := config.LoadAssistantFileConfig(config.DefaultAssistantConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "provider", &chatProvider, fileCfg.Chat.Provider)
	applyStringConfig(cmd, "geo-endpoint", &chatGeoEndpoint, fileCfg.Chat.GeoEndpoint)
	applyStringConfig(cmd, "timetable-endpoint", &chatTimetableEndpoint, fileCfg.Chat.TimetableEndpoint)
	applyStringConfig(cmd, "history-db", &chatHistoryDB, fileCfg.Chat.HistoryDB)
	applyIntConfig(cmd, "history-limit", &chatHistoryLimit, fileCfg.Chat.HistoryLimit)
	applyBoolConfig(cmd, "verbose", &chatVerbose, fileCfg.Chat.Verbose)

	driverConfig := config.NewDriverConfig()
	driverConfig.Logger.Level = logrus.WarnLevel.String()
	if chatVerbose {
		driverConfig.Logger.Level = logrus.DebugLevel.String()
	}
	log := logger.NewLogrusLogger(internalConfig, driverConfig, os.Stderr)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.WithError(err).Warnf("unknown APP_TIMEZONE %q, using UTC", internalConfig.App.Timezone)
		location = time.UTC
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openTranscriptStore(ctx, chatHistoryDB)
	if err != nil {
		log.WithError(err).Warn("transcript store unavailable, history is kept in memory only")
	}
	if store != nil {
		defer func() {
			if cerr := store.Close(); cerr != nil {
				log.WithError(cerr).Warn("failed to close transcript store")
			}
		}()
	}

	newProvider := func(name string) (contracts.Provider, error) {
		return providers.NewProvider(name, internalConfig.OpenAI, log)
	}
	provider, err := newProvider(chatProvider)
	if err != nil {
		return err
	}

	newMCPClient := func(endpoint string) contracts.MCPClient {
		return mcpclient.NewMCPClient(endpoint, internalConfig.Chat.MCPTimeout, log)
	}

	session := chat.NewSession(uuid.NewString(), store, log)
	assistantUsecase := assistant.NewAssistantUsecase(
		newMCPClient(chatGeoEndpoint),
		newMCPClient(chatTimetableEndpoint),
		provider,
		session,
		location,
		log,
	)
	log.WithFields(logrus.Fields{
		"session_id": session.ID,
		"provider":   provider.Name(),
		"persistent": session.Persistent(),
	}).Debug("assistant started")

	repl := cli.NewREPL(os.Stdin, os.Stdout, assistantUsecase, cli.Options{
		NewProvider:     newProvider,
		NewMCPClient:    newMCPClient,
		DefaultEndpoint: chatGeoEndpoint,
		HistoryLimit:    chatHistoryLimit,
	}, log)
	return repl.Run(ctx)
}

// openTranscriptStore returns a nil store when path is empty.
func openTranscriptStore(ctx context.Context, path string) (contracts.TranscriptStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	if path == defaultHistoryDBKeyword {
		path = config.DefaultHistoryDBPath()
	}
	db, err := database.NewSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	store, err := transcript.NewTranscriptSQLiteRepository(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}
