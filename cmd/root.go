package cmd

import (
	"errors"
	"log"
	"time"

	"github.com/skillgate/interviewd/internal/interview"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "interviewd"
)

type Config struct {
	Listen    string           `mapstructure:"listen"`
	Interview *InterviewConfig `mapstructure:"interview"`
	Session   *SessionConfig   `mapstructure:"session"`
	Results   *ResultsConfig   `mapstructure:"results"`
	AI        *AIConfig        `mapstructure:"ai"`
}

type InterviewConfig struct {
	RequiredSkills       []string          `mapstructure:"required-skills"`
	MatchThreshold       float64           `mapstructure:"match-threshold"`
	MaxQuestions         int               `mapstructure:"max-questions"`
	QuestionTimeLimitSec int               `mapstructure:"question-time-limit-sec"`
	FallbackConfidence   float64           `mapstructure:"fallback-confidence"`
	DefaultResume        string            `mapstructure:"default-resume"`
	Thresholds           *ThresholdsConfig `mapstructure:"thresholds"`
}

type ThresholdsConfig struct {
	RequiredSkillMin float64 `mapstructure:"required-skill-min"`
	SoftSkillMin     float64 `mapstructure:"soft-skill-min"`
	ConfidenceMin    float64 `mapstructure:"confidence-min"`
	CheatingMax      float64 `mapstructure:"cheating-max"`
}

type SessionConfig struct {
	TTLMinutes       int `mapstructure:"ttl-minutes"`
	SweepIntervalSec int `mapstructure:"sweep-interval-sec"`
}

type ResultsConfig struct {
	Dir string `mapstructure:"dir"`
}

type AIConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	Provider           string        `mapstructure:"provider"`
	DelegateTimeoutSec int           `mapstructure:"delegate-timeout-sec"`
	MaxLogLength       int           `mapstructure:"max-log-length"`
	OpenAI             *OpenAIConfig `mapstructure:"openai"`
	Gemini             *GeminiConfig `mapstructure:"gemini"`
}

type OpenAIConfig struct {
	APIKeyFile  string  `mapstructure:"api-key-file"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max-tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

type GeminiConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "interviewd runs structured mock interviews with resume gating and AI-assisted grading",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is interviewd.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Local development keys live in .env; absence is fine.
	_ = godotenv.Load()

	// Config is needed only for the serve and practice commands.
	if serveCmd.CalledAs() == "" && practiceCmd.CalledAs() == "" {
		return
	}

	if err := readConfig(viper.GetViper(), cfgFile, "."); err != nil {
		log.Fatal(err)
	}
}

// readConfig points v at the config file and reads it. Running on defaults
// without a config file is supported, a broken config file is not.
func readConfig(v *viper.Viper, file, path string) error {
	if file != "" {
		v.SetConfigFile(file)
		return v.ReadInConfig()
	}

	v.AddConfigPath(path)
	v.SetConfigName(app)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}

	return config, nil
}

// engineConfig maps the file configuration onto the engine's config, leaving
// unset values for the engine defaults.
func engineConfig(config *Config) interview.Config {
	cfg := interview.Config{}

	if c := config.Interview; c != nil {
		cfg.RequiredSkills = c.RequiredSkills
		cfg.MatchThreshold = c.MatchThreshold
		cfg.MaxQuestions = c.MaxQuestions
		cfg.QuestionTimeLimit = time.Duration(c.QuestionTimeLimitSec) * time.Second
		cfg.FallbackConfidence = c.FallbackConfidence
		cfg.DefaultResume = c.DefaultResume
		if t := c.Thresholds; t != nil {
			cfg.Thresholds = interview.Thresholds{
				RequiredSkillMin: t.RequiredSkillMin,
				SoftSkillMin:     t.SoftSkillMin,
				ConfidenceMin:    t.ConfidenceMin,
				CheatingMax:      t.CheatingMax,
			}
		}
	}
	if c := config.AI; c != nil {
		cfg.DelegateTimeout = time.Duration(c.DelegateTimeoutSec) * time.Second
	}

	return cfg
}
