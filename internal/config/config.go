// Package config loads the uxpin CLI configuration from defaults, a YAML
// file, environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/shapestone/shape-uxpin/internal/normalize"
	"github.com/shapestone/shape-uxpin/pkg/uxpin"
)

// EnvPrefix is the environment variable prefix for the CLI.
const EnvPrefix = "UXPIN"

// Output formats.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

var (
	// ErrInvalidOutput indicates an unsupported output format.
	ErrInvalidOutput = errors.New("invalid output format")
	// ErrInvalidComma indicates a delimiter that is not a single usable rune.
	ErrInvalidComma = errors.New("invalid field delimiter")
	// ErrInvalidScheme indicates a default scheme that is not "name:" shaped.
	ErrInvalidScheme = errors.New("invalid default scheme")
	// ErrInvalidLogLevel indicates an unknown log level.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidLogFormat indicates a log format other than text or json.
	ErrInvalidLogFormat = errors.New("invalid log format")
	// ErrConfigNotFound indicates that the --config file does not exist.
	ErrConfigNotFound = errors.New("config file not found")
)

// reservedCommas already mean something to the splitter or the markup scanner.
const reservedCommas = "\"\r\n|()"

// Config is the CLI configuration.
type Config struct {
	// Output is the encoding for split and parse results: json or yaml.
	Output string `koanf:"output"`
	// Indent pretty-prints JSON output.
	Indent bool `koanf:"indent"`
	// Comma is the field delimiter, a single character.
	Comma string `koanf:"comma"`
	// DefaultScheme is prefixed to link hrefs without a scheme.
	DefaultScheme string `koanf:"default_scheme"`

	Log LogConfig `koanf:"log"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `koanf:"level"`
	// Format is text or json.
	Format string `koanf:"format"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	opts := uxpin.DefaultOptions()
	return Config{
		Output:        OutputJSON,
		Indent:        true,
		Comma:         string(opts.Comma),
		DefaultScheme: opts.DefaultScheme,
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// FlagMappings maps CLI flag names to configuration keys.
var FlagMappings = map[string]string{
	"output":         "output",
	"indent":         "indent",
	"comma":          "comma",
	"default-scheme": "default_scheme",
	"log-level":      "log.level",
	"log-format":     "log.format",
}

// Load builds the configuration from defaults, the optional YAML file at
// configPath, UXPIN__* environment variables and explicitly set flags, in
// increasing priority. flags may be nil.
func Load(configPath string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		if err := k.Load(file.Provider(configPath), koanfyaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix+"__", ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	if flags != nil {
		if err := loadFlags(k, flags); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// envKey maps UXPIN__LOG__LEVEL to log.level.
func envKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix+"__"))
	return strings.ReplaceAll(key, "__", ".")
}

// loadFlags applies only the flags the user set, so flag defaults never
// mask the file or the environment.
func loadFlags(k *koanf.Koanf, flags *pflag.FlagSet) error {
	var errs []error
	flags.Visit(func(f *pflag.Flag) {
		key, ok := FlagMappings[f.Name]
		if !ok {
			return
		}
		if err := k.Set(key, f.Value.String()); err != nil {
			errs = append(errs, fmt.Errorf("flag --%s: %w", f.Name, err))
		}
	})
	return errors.Join(errs...)
}

// WriteYAML writes the configuration as YAML using the configuration keys.
func (c Config) WriteYAML(w io.Writer) error {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(c, "koanf"), nil); err != nil {
		return err
	}
	data, err := k.Marshal(koanfyaml.Parser())
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.Output) {
	case OutputJSON, OutputYAML:
	default:
		errs = append(errs, fmt.Errorf("%w: %q (want json or yaml)", ErrInvalidOutput, c.Output))
	}

	if utf8.RuneCountInString(c.Comma) != 1 {
		errs = append(errs, fmt.Errorf("%w: %q must be a single character", ErrInvalidComma, c.Comma))
	} else if r, _ := utf8.DecodeRuneInString(c.Comma); r == utf8.RuneError || strings.ContainsRune(reservedCommas, r) {
		errs = append(errs, fmt.Errorf("%w: %q is reserved", ErrInvalidComma, c.Comma))
	}

	// An empty scheme falls back to http:// in the scanner.
	if c.DefaultScheme != "" && !normalize.HasScheme(c.DefaultScheme) {
		errs = append(errs, fmt.Errorf("%w: %q (want e.g. https://)", ErrInvalidScheme, c.DefaultScheme))
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json", "":
	default:
		errs = append(errs, fmt.Errorf("%w: %q (want text or json)", ErrInvalidLogFormat, c.Log.Format))
	}

	return errors.Join(errs...)
}

// Options converts the configuration to parser options.
func (c Config) Options() uxpin.Options {
	comma, _ := utf8.DecodeRuneInString(c.Comma)
	return uxpin.Options{
		Comma:         comma,
		DefaultScheme: c.DefaultScheme,
	}
}

// NewLogger returns a logger writing to w with the configured level and format.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.Log.Level)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(c.Log.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, s)
	}
}
