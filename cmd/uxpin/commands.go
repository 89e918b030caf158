package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shapestone/shape-uxpin/pkg/markup"
	"github.com/shapestone/shape-uxpin/pkg/uxpin"
)

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse markup into tokens",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			input, err := a.readInput(args)
			if err != nil {
				return err
			}

			tokens := uxpin.ParseWithOptions(input, a.cfg.Options())
			a.logger.Debug("parsed markup",
				"bytes", len(input),
				"tokens", len(tokens),
				"leaves", markup.Count(tokens))

			if tokens == nil {
				tokens = []markup.Token{}
			}
			return a.encode(tokens)
		},
	}
}

func newSplitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "split [file]",
		Short: "Split markup into rows of fields",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			input, err := a.readInput(args)
			if err != nil {
				return err
			}

			rows := uxpin.SplitWithOptions(input, a.cfg.Options())
			a.logger.Debug("split markup", "bytes", len(input), "rows", len(rows))
			return a.encode(rows)
		},
	}
}

func newRenderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "render [file]",
		Short: "Render JSON tokens back into markup",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			input, err := a.readInput(args)
			if err != nil {
				return err
			}

			tokens, err := markup.Decode([]byte(input))
			if err != nil {
				return err
			}
			a.logger.Debug("decoded tokens", "tokens", len(tokens))

			_, err = io.WriteString(a.out, uxpin.RenderWithOptions(tokens, a.cfg.Options()))
			return err
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.cfg.WriteYAML(a.out); err != nil {
				return fmt.Errorf("dump config: %w", err)
			}
			return nil
		},
	}
}
