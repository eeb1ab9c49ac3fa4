// Package config loads the settings of the luxsig command.
//
// Settings start from Defaults, are overlaid by the YAML file named in
// LUXSIG_CONFIG_FILE when set, and then by LUXSIG_* environment variables:
//
//	LUXSIG_CULTURE              output culture, e.g. "es-ES"
//	LUXSIG_UI_CULTURE           culture of accepted localized format tags
//	LUXSIG_DATA_FORMAT          numeric display pattern of body values, e.g. "0.###"
//	LUXSIG_MILLISECONDS_FORMAT  seconds token of date-times, e.g. ":ss.ff"
//	LUXSIG_COMPRESSION          none, zstd, s2 or lz4
//	LUXSIG_LOG_LEVEL            debug, info, warn or error
//	LUXSIG_LOG_FORMAT           text or json
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"github.com/arloliu/luxsig/codec"
	"github.com/arloliu/luxsig/culture"
	"github.com/arloliu/luxsig/format"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "LUXSIG"

// FileEnv names the environment variable holding the optional settings file path.
const FileEnv = EnvPrefix + "_CONFIG_FILE"

// Settings holds the user settings applied to reads and writes.
type Settings struct {
	Culture            string          `yaml:"culture" envconfig:"CULTURE" validate:"required,culture"`
	UICulture          string          `yaml:"ui_culture" envconfig:"UI_CULTURE" validate:"omitempty,culture"`
	DataFormat         string          `yaml:"data_format" envconfig:"DATA_FORMAT" validate:"numberpattern"`
	MillisecondsFormat string          `yaml:"milliseconds_format" envconfig:"MILLISECONDS_FORMAT" validate:"omitempty,startswith=:s"`
	Compression        string          `yaml:"compression" envconfig:"COMPRESSION" validate:"oneof=none zstd s2 lz4"`
	Logging            LoggingSettings `yaml:"logging" envconfig:"LOG"`
}

// LoggingSettings selects the level and handler of the command logger.
type LoggingSettings struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=text json"`
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Settings {
	return Settings{
		Culture:     "en-US",
		DataFormat:  codec.DefaultDataFormat,
		Compression: "none",
		Logging: LoggingSettings{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the settings from the optional file and the environment, then validates them.
func Load() (*Settings, error) {
	s := Defaults()

	if path := os.Getenv(FileEnv); path != "" {
		if err := loadFile(path, &s); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &s); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &s, nil
}

func loadFile(path string, s *Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, s)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("culture", isCulture)
	_ = v.RegisterValidation("numberpattern", isNumberPattern)

	return v
}

func isCulture(fl validator.FieldLevel) bool {
	_, err := culture.Resolve(fl.Field().String())
	return err == nil
}

func isNumberPattern(fl validator.FieldLevel) bool {
	_, err := culture.CompileNumberPattern(fl.Field().String())
	return err == nil
}

// Validate checks every field and reports all violations in one error.
func (s *Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors) //nolint:errorlint
	if !ok {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, formatFieldError(fe))
	}

	return fmt.Errorf("invalid settings: %s", strings.Join(msgs, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "startswith":
		return fmt.Sprintf("%s must start with %q", field, fe.Param())
	case "culture":
		return fmt.Sprintf("%s: culture %q is not supported", field, fe.Value())
	case "numberpattern":
		return fmt.Sprintf("%s: %q is not a numeric format pattern", field, fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// CompressionType returns the configured compression.
func (s *Settings) CompressionType() format.CompressionType {
	c, _ := format.ParseCompression(s.Compression)
	return c
}

// CodecOptions returns the read and write options carrying s.
func (s *Settings) CodecOptions(logger *slog.Logger) []codec.Option {
	opts := []codec.Option{
		codec.WithLogger(logger),
		codec.WithCulture(s.Culture),
		codec.WithDataFormat(s.DataFormat),
		codec.WithMillisecondsFormat(s.MillisecondsFormat),
	}
	if s.UICulture != "" {
		opts = append(opts, codec.WithUICulture(s.UICulture))
	}

	return opts
}
