package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/skillgate/interviewd/internal/ai"
	"github.com/skillgate/interviewd/internal/ai/gemini"
	"github.com/skillgate/interviewd/internal/ai/openai"
	"github.com/skillgate/interviewd/internal/bank"
	"github.com/skillgate/interviewd/internal/httpapi"
	"github.com/skillgate/interviewd/internal/interview"
	"github.com/skillgate/interviewd/internal/logger"
	"github.com/skillgate/interviewd/internal/metrics"
	"github.com/skillgate/interviewd/internal/results"
	"github.com/skillgate/interviewd/internal/secrets"
	"github.com/skillgate/interviewd/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	defaultListen        = ":8080"
	defaultSessionTTL    = 30 * time.Minute
	defaultSweepInterval = time.Minute
	shutdownTimeout      = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the interview HTTP service",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "listen address, overrides the config file")

	viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))
}

func serve(_ *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the interviewd service", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	m := metrics.New()

	engine, memory, err := buildEngine(ctx, config, logger, m)
	if err != nil {
		logger.Fatal("building the interview engine", zap.Error(err))
	}

	go memory.RunSweeper(ctx, sweepInterval(config), logger)

	listen := strings.TrimSpace(viper.GetString("listen"))
	if listen == "" {
		listen = config.Listen
	}
	if listen == "" {
		listen = defaultListen
	}

	server := &http.Server{
		Addr:              listen,
		Handler:           httpapi.New(engine, logger, m).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("address", listen))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		logger.Fatal("http server stopped", zap.Error(err))
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown incomplete", zap.Error(err))
	}
}

// buildEngine wires the bank, session store, delegates and results sink into
// an engine. Shared by the serve and practice commands.
func buildEngine(ctx context.Context, config *Config, logger *zap.Logger, m *metrics.Metrics) (*interview.Engine, *store.Memory, error) {
	questionBank, err := bank.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading the question bank: %w", err)
	}

	delegate, err := newDelegate(ctx, config.AI, logger)
	if err != nil {
		return nil, nil, err
	}

	memory := store.NewMemory(sessionTTL(config))

	deps := interview.Deps{
		Store:   memory,
		Bank:    questionBank,
		Logger:  logger,
		Metrics: m,
	}
	if delegate != nil {
		deps.Generator = delegate
		deps.Grader = delegate
	}
	if config.Results != nil && config.Results.Dir != "" {
		deps.Results = results.NewWriter(config.Results.Dir)
	}

	return interview.NewEngine(engineConfig(config), deps), memory, nil
}

// newDelegate builds the model-backed question generator and grader. Returns
// nil without error when AI is disabled; the engine then runs on the bank and
// heuristics alone.
func newDelegate(ctx context.Context, cfg *AIConfig, log *zap.Logger) (*ai.Delegate, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))

	var generator ai.ContentGenerator
	switch provider {
	case "", "openai":
		provider = "openai"
		var openaiCfg OpenAIConfig
		if cfg.OpenAI != nil {
			openaiCfg = *cfg.OpenAI
		}
		apiKey, err := secrets.Load(secrets.Source{
			Name: "openai api key",
			File: openaiCfg.APIKeyFile,
			Env:  "OPENAI_API_KEY",
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.openai.api-key-file or OPENAI_API_KEY)", err)
		}
		generator, err = openai.New(apiKey, openaiCfg.Model, openaiCfg.MaxTokens, openaiCfg.Temperature)
		if err != nil {
			return nil, err
		}
	case "gemini":
		var geminiCfg GeminiConfig
		if cfg.Gemini != nil {
			geminiCfg = *cfg.Gemini
		}
		apiKey, err := secrets.Load(secrets.Source{
			Name: "gemini api key",
			File: geminiCfg.APIKeyFile,
			Env:  "GEMINI_API_KEY",
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
		}
		generator, err = gemini.New(ctx, apiKey, geminiCfg.Model)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	delegateLogger := logger.WithDelegateFields(log, provider, generator.Model())

	return ai.NewDelegate(generator, delegateLogger, cfg.MaxLogLength), nil
}

func sessionTTL(config *Config) time.Duration {
	if config.Session != nil && config.Session.TTLMinutes > 0 {
		return time.Duration(config.Session.TTLMinutes) * time.Minute
	}
	return defaultSessionTTL
}

func sweepInterval(config *Config) time.Duration {
	if config.Session != nil && config.Session.SweepIntervalSec > 0 {
		return time.Duration(config.Session.SweepIntervalSec) * time.Second
	}
	return defaultSweepInterval
}
