package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/shapestone/shape-uxpin/internal/config"
)

// app carries the loaded configuration and I/O streams for one invocation.
type app struct {
	cfgFile string
	cfg     config.Config
	logger  *slog.Logger

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut}
	defaults := config.Defaults()

	root := &cobra.Command{
		Use:   "uxpin",
		Short: "Parse UXPin inline markup",
		Long: `uxpin reads CSV-like text containing icon(...) and link(...) calls and
prints the recognized tokens.

Configuration is read from --config (YAML), UXPIN__* environment variables
and flags, in increasing priority. Nested keys use a double underscore:
UXPIN__LOG__LEVEL=debug.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (YAML)")
	flags.StringP("output", "o", defaults.Output, "output format: json or yaml")
	flags.Bool("indent", defaults.Indent, "indent JSON output")
	flags.String("comma", defaults.Comma, "field delimiter")
	flags.String("default-scheme", defaults.DefaultScheme, "scheme prefixed to links without one")
	flags.String("log-level", defaults.Log.Level, "log level: debug, info, warn or error")
	flags.String("log-format", defaults.Log.Format, "log format: text or json")

	root.AddCommand(
		newParseCmd(a),
		newSplitCmd(a),
		newRenderCmd(a),
		newConfigCmd(a),
	)
	return root
}

// setup loads the configuration and installs the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg
	a.logger = cfg.NewLogger(a.errOut)
	slog.SetDefault(a.logger)

	a.logger.Debug("configuration loaded",
		"config_path", a.cfgFile,
		"output", cfg.Output,
		"comma", cfg.Comma)
	return nil
}

// readInput reads the file named by args, or stdin.
func (a *app) readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(a.in)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

// encode writes v in the configured output format.
func (a *app) encode(v any) error {
	if strings.EqualFold(a.cfg.Output, config.OutputYAML) {
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(a.out)
	enc.SetEscapeHTML(false)
	if a.cfg.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
