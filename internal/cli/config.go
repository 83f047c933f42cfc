package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/futureintern/platform/internal/chatbot"
	"github.com/futureintern/platform/internal/gateway"
	"github.com/futureintern/platform/internal/session"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings is the CLI configuration after file, env and flag merging.
type Settings struct {
	APIURL      string        `mapstructure:"api_url"`
	SessionFile string        `mapstructure:"session_file"`
	Timeout     time.Duration `mapstructure:"timeout"`
	OpenAI      OpenAI        `mapstructure:"openai"`
}

// OpenAI configures the local chatbot used by `chat` when --remote is off.
type OpenAI struct {
	APIKey string `mapstructure:"api_key"`
	APIURL string `mapstructure:"api_url"`
	Model  string `mapstructure:"model"`
}

// configDir returns ~/.futureintern
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".futureintern")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_url", gateway.DefaultBaseURL)
	v.SetDefault("timeout", "30s")
	v.SetDefault("openai.api_url", chatbot.DefaultAPIURL)
	v.SetDefault("openai.model", chatbot.DefaultModel)

	if path, err := session.DefaultPath(); err == nil {
		v.SetDefault("session_file", path)
	} else {
		v.SetDefault("session_file", filepath.Join(".", "session.json"))
	}
}

// newViper prepares a viper instance reading ~/.futureintern/config.yaml (or
// configFile when set) and FUTUREINTERN_* env vars.
func newViper(configFile string) *viper.Viper {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("FUTUREINTERN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Nested keys are not picked up by AutomaticEnv during Unmarshal
	_ = v.BindEnv("openai.api_key", "FUTUREINTERN_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("openai.api_url", "FUTUREINTERN_OPENAI_API_URL")
	_ = v.BindEnv("openai.model", "FUTUREINTERN_OPENAI_MODEL")

	setDefaults(v)
	return v
}

// loadSettings reads the config file (optional unless named explicitly) and
// unmarshals it. A .env file in the working directory is loaded first.
func loadSettings(v *viper.Viper, explicit bool) (*Settings, error) {
	_ = godotenv.Load()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	s.APIURL = strings.TrimRight(s.APIURL, "/")
	if s.Timeout <= 0 {
		s.Timeout = 30 * time.Second
	}
	return &s, nil
}
