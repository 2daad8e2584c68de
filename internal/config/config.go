package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gookit/validate"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host string `mapstructure:"host" validate:"required"`
	Port int    `mapstructure:"port" validate:"required|uint|min:1"`
}

type StorageConfig struct {
	Driver  string `mapstructure:"driver" validate:"required|in:sqlite,disk"`
	DBPath  string `mapstructure:"dbPath"`
	DataDir string `mapstructure:"dataDir"`
}

type AuthConfig struct {
	// Password guards the API when set; an empty password leaves the
	// service open, which is acceptable for a private deployment.
	Password  string `mapstructure:"password"`
	SecretKey string `mapstructure:"secretKey"`
}

type ThemeConfig struct {
	// Default is the platform-reported color scheme the theme state is
	// seeded from on every start.
	Default string `mapstructure:"default" validate:"required|in:light,dark"`
}

type TelegramConfig struct {
	BotToken string `mapstructure:"botToken"`
	ChatID   string `mapstructure:"chatID"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"required|in:trace,debug,info,warn,error"`
}

type Config struct {
	AppName  string
	Timezone string         `mapstructure:"timezone"`
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Theme    ThemeConfig    `mapstructure:"theme"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// Load reads the optional YAML config file and the SOMNIA_* environment,
// environment winning over file, defaults under both.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("timezone", "UTC")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.dbPath", filepath.Join("data", "somnia.db"))
	v.SetDefault("storage.dataDir", filepath.Join("data", "journal"))
	v.SetDefault("theme.default", "light")
	v.SetDefault("logger.level", "info")
	v.SetDefault("metrics.enabled", true)

	v.BindEnv("timezone", "SOMNIA_TZ")
	v.BindEnv("server.host", "SOMNIA_HOST")
	v.BindEnv("server.port", "SOMNIA_PORT")
	v.BindEnv("storage.driver", "SOMNIA_STORAGE_DRIVER")
	v.BindEnv("storage.dbPath", "SOMNIA_DB_PATH")
	v.BindEnv("storage.dataDir", "SOMNIA_DATA_DIR")
	v.BindEnv("auth.password", "SOMNIA_PASSWORD")
	v.BindEnv("auth.secretKey", "SOMNIA_SECRET_KEY")
	v.BindEnv("theme.default", "SOMNIA_THEME")
	v.BindEnv("telegram.botToken", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("telegram.chatID", "TELEGRAM_CHAT_ID")
	v.BindEnv("metrics.enabled", "SOMNIA_METRICS_ENABLED")
	v.BindEnv("logger.level", "SOMNIA_LOG_LEVEL")

	if configPath != "" {
		filename := filepath.Base(configPath)
		v.AddConfigPath(filepath.Dir(configPath))
		v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	conf := Config{}
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}
	conf.AppName = "Somnia"

	if err := Validate(&conf); err != nil {
		return nil, err
	}

	return &conf, nil
}

func Validate(conf *Config) error {
	checker := validate.Struct(conf)
	if !checker.Validate() {
		return fmt.Errorf("invalid config: %s", checker.Errors.One())
	}
	return nil
}
