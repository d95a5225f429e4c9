package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/papersec/llmcall"
	"github.com/hazyhaar/papersec/papersec"
)

var (
	flagConfig   string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "papersec",
	Short: "Extract the canonical sections of scientific papers from Markdown",
	Long: `papersec splits a scientific paper's Markdown rendering into its five
canonical sections: Abstract, Introduction, Methods, Results & Discussion,
and Conclusion. A bilingual pattern pass does most of the work; documents
it cannot fully resolve are escalated to a model service when an API key
is configured.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "config file (yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level (debug|info|warn|error)")
	rootCmd.AddCommand(extractCmd, serveCmd, mcpCmd)
}

// fileConfig is the on-disk configuration.
type fileConfig struct {
	APIKey              string `yaml:"api_key"`
	Endpoint            string `yaml:"endpoint"`
	ModelName           string `yaml:"model"`
	TimeoutSeconds      int    `yaml:"timeout_seconds"`
	ShortThreshold      int    `yaml:"short_threshold"`
	MaxDocumentChars    int    `yaml:"max_document_chars"`
	FullTemplatePath    string `yaml:"full_template_path"`
	MissingTemplatePath string `yaml:"missing_template_path"`
	RunLogPath          string `yaml:"runlog_path"`
	ListenAddr          string `yaml:"listen_addr"`
}

// loadConfig reads the optional yaml config file and applies environment
// overrides. PAPERSEC_API_KEY wins over DEEPSEEK_API_KEY wins over the file.
func loadConfig() (fileConfig, error) {
	var cfg fileConfig
	if flagConfig != "" {
		data, err := os.ReadFile(flagConfig)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}
	if v := os.Getenv("DEEPSEEK_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("PAPERSEC_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("PAPERSEC_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8086"
	}
	return cfg, nil
}

func newLogger() *slog.Logger {
	var lvl slog.Level
	switch flagLogLevel {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}

// newExtractor builds the extractor from configuration. Without an API key
// the extractor runs heuristic-only.
func newExtractor(cfg fileConfig, logger *slog.Logger) *papersec.Extractor {
	var model papersec.Caller
	if cfg.APIKey != "" {
		model = llmcall.New(llmcall.Config{
			Endpoint: cfg.Endpoint,
			Model:    cfg.ModelName,
			APIKey:   cfg.APIKey,
			Timeout:  time.Duration(cfg.TimeoutSeconds) * time.Second,
			Logger:   logger,
		})
	} else {
		logger.Info("no API key configured, model escalation disabled")
	}
	return papersec.New(papersec.Config{
		Model:               model,
		ShortThreshold:      cfg.ShortThreshold,
		MaxDocumentChars:    cfg.MaxDocumentChars,
		FullTemplatePath:    cfg.FullTemplatePath,
		MissingTemplatePath: cfg.MissingTemplatePath,
		Logger:              logger,
	})
}
