package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/careercompass/career-compass/internal/ai/gemini"
	"github.com/careercompass/career-compass/internal/analyze"
	"github.com/careercompass/career-compass/internal/chat"
	"github.com/careercompass/career-compass/internal/extract"
	"github.com/careercompass/career-compass/internal/logger"
	"github.com/careercompass/career-compass/internal/secrets"
	"github.com/careercompass/career-compass/internal/server"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the career-compass HTTP API",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("address", "a", "", "listen address (default :8000)")
	viper.BindPFlag("server.address", serveCmd.Flags().Lookup("address"))
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		panic(fmt.Sprintf("creating a logger: %s", err))
	}

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	log.Info("starting career-compass", zap.String("version", version))

	analyzer, session, err := buildCore(ctx, config, log)
	if err != nil {
		log.Fatal("building AI components", zap.Error(err))
	}

	extractor := extract.NewDocumentExtractor(log)

	srv := &http.Server{
		Addr:    config.Server.Address,
		Handler: server.New(analyzer, session, extractor, log).Router(),
	}

	go func() {
		log.Info("listening", zap.String("address", config.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("graceful shutdown failed", zap.Error(err))
	}
}

// buildCore wires the Gemini clients, the analyzer and the chat session.
// Two clients share one API key but use different temperatures: analysis
// favors determinism, chat favors variety.
func buildCore(ctx context.Context, config *Config, log *zap.Logger) (*analyze.Analyzer, *chat.Session, error) {
	provider := strings.TrimSpace(strings.ToLower(config.AI.Provider))
	if provider != "" && provider != "gemini" {
		return nil, nil, fmt.Errorf("unsupported ai provider: %s", config.AI.Provider)
	}

	g := config.AI.Gemini

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: g.APIKey,
		Env:   "GEMINI_API_KEY",
		File:  g.APIKeyFile,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	aiLogger := logger.WithCommonFields(log, "gemini", g.Model)

	analysisClient, err := gemini.NewClient(ctx, apiKey, g.Model, g.AnalysisTemperature, aiLogger)
	if err != nil {
		return nil, nil, err
	}

	chatClient, err := gemini.NewClient(ctx, apiKey, g.Model, g.ChatTemperature, aiLogger)
	if err != nil {
		return nil, nil, err
	}

	analyzer := analyze.NewAnalyzer(analysisClient, g.MaxLogLength, aiLogger)
	session := chat.NewSession(chatClient, g.MaxLogLength, aiLogger)

	return analyzer, session, nil
}
