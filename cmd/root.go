package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "career-compass"

	defaultAddress             = ":8000"
	defaultMaxLogLength        = 200
	defaultAnalysisTemperature = 0.3
	defaultChatTemperature     = 0.7
)

type Config struct {
	Server *ServerConfig `mapstructure:"server"`
	AI     *AIConfig     `mapstructure:"ai"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey              string  `mapstructure:"api-key"`
	APIKeyFile          string  `mapstructure:"api-key-file"`
	Model               string  `mapstructure:"model"`
	MaxLogLength        int     `mapstructure:"max-log-length"`
	AnalysisTemperature float32 `mapstructure:"analysis-temperature"`
	ChatTemperature     float32 `mapstructure:"chat-temperature"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "career-compass is an AI-powered job match analysis and career guidance service",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is career-compass.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config is needed only for the serve and chat commands.
	if serveCmd.CalledAs() == "" && chatCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// The config file is optional: everything has a default or an env fallback.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config == nil {
		config = &Config{}
	}
	applyDefaults(config)

	return config, nil
}

func applyDefaults(config *Config) {
	if config.Server == nil {
		config.Server = &ServerConfig{}
	}
	if config.Server.Address == "" {
		config.Server.Address = defaultAddress
	}

	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Provider == "" {
		config.AI.Provider = "gemini"
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}

	g := config.AI.Gemini
	if g.MaxLogLength <= 0 {
		g.MaxLogLength = defaultMaxLogLength
	}
	if g.AnalysisTemperature == 0 {
		g.AnalysisTemperature = defaultAnalysisTemperature
	}
	if g.ChatTemperature == 0 {
		g.ChatTemperature = defaultChatTemperature
	}
}
