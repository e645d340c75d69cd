package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"instafilter/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	// Logging
	LogLevel string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn warning error"`

	// Photo library
	LibraryDir  string `mapstructure:"LIBRARY_DIR" validate:"required"`
	SaveFormat  string `mapstructure:"SAVE_FORMAT" validate:"oneof=png jpeg"`
	JPEGQuality int    `mapstructure:"JPEG_QUALITY" validate:"min=1,max=100"`

	// Editor defaults
	DefaultFilter    string  `mapstructure:"DEFAULT_FILTER" validate:"required,filter"`
	DefaultIntensity float64 `mapstructure:"DEFAULT_INTENSITY" validate:"min=0,max=1"`
	DefaultRadius    float64 `mapstructure:"DEFAULT_RADIUS" validate:"min=0,max=1"`
	DefaultScale     float64 `mapstructure:"DEFAULT_SCALE" validate:"min=0,max=1"`

	// Window
	WindowWidth  float32 `mapstructure:"WINDOW_WIDTH" validate:"min=320"`
	WindowHeight float32 `mapstructure:"WINDOW_HEIGHT" validate:"min=240"`
}

// EditorState builds the session start state from the configured defaults
func (c *Config) EditorState() models.EditorState {
	kind, err := models.ParseFilterKind(c.DefaultFilter)
	if err != nil {
		kind = models.DefaultFilter
	}
	return models.NewEditorStateWith(kind, c.DefaultIntensity, c.DefaultRadius, c.DefaultScale)
}

// use reflect to bind environment variables based on mapstructure tags
func bindEnv(c Config) {
	typ := reflect.TypeOf(c)
	for i := 0; i < typ.NumField(); i++ {
		if tag := typ.Field(i).Tag.Get("mapstructure"); tag != "" {
			viper.BindEnv(tag)
		}
	}
}

func defaultLibraryDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), "Instafilter")
	}
	return filepath.Join(home, "Pictures", "Instafilter")
}

func LoadConfig(ctx context.Context) (*Config, error) {
	bindEnv(Config{})
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LIBRARY_DIR", defaultLibraryDir())
	viper.SetDefault("SAVE_FORMAT", "png")
	viper.SetDefault("JPEG_QUALITY", 95)
	viper.SetDefault("DEFAULT_FILTER", models.DefaultFilter.String())
	viper.SetDefault("DEFAULT_INTENSITY", models.DefaultRawValue)
	viper.SetDefault("DEFAULT_RADIUS", models.DefaultRawValue)
	viper.SetDefault("DEFAULT_SCALE", models.DefaultRawValue)
	viper.SetDefault("WINDOW_WIDTH", 900)
	viper.SetDefault("WINDOW_HEIGHT", 700)

	if path := os.Getenv("INSTAFILTER_CONFIG"); path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{}
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.SaveFormat = strings.ToLower(cfg.SaveFormat)
	if cfg.SaveFormat == "jpg" {
		cfg.SaveFormat = "jpeg"
	}

	if err := newValidator().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterValidation("filter", func(fl validator.FieldLevel) bool {
		_, err := models.ParseFilterKind(fl.Field().String())
		return err == nil
	})
	return validate
}
