package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-jobform/pkg/render"
	"github.com/goliatone/go-jobform/pkg/renderers/tui"
	"github.com/goliatone/go-jobform/pkg/server"
	"github.com/goliatone/go-jobform/pkg/session"
)

func (c *CLI) promptCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "prompt [action]",
		Short: "Ask for each field in the terminal and print the result",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			outputFormat, ok := tui.ParseOutputFormat(format)
			if !ok {
				return fmt.Errorf("cli: unknown format %q (want url, json or form)", format)
			}
			driver := c.driver
			if driver == nil {
				driver = tui.NewSurveyDriver(c.errOut)
			}
			renderer := tui.New(
				tui.WithPromptDriver(driver),
				tui.WithOutputFormat(outputFormat),
				tui.WithBuilder(c.builder),
				tui.WithTheme(tui.Theme{
					InfoPrefix:  c.status.accent("i "),
					ErrorPrefix: c.status.failure("! "),
				}),
			)

			actionID := ""
			if len(args) == 1 {
				actionID = args[0]
			} else {
				selected, err := renderer.SelectAction(ctx, c.actions)
				if err != nil {
					return c.promptErr(err)
				}
				actionID = selected
			}

			orch, err := c.orchestrator()
			if err != nil {
				return err
			}
			state, err := orch.State(ctx, actionID, nil)
			if err != nil {
				return err
			}
			output, err := renderer.Render(ctx, state, render.RenderOptions{})
			if err != nil {
				return c.promptErr(err)
			}
			fmt.Fprintln(c.out, string(output))
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", string(tui.OutputFormatURL), "Output format (url, json, form)")
	return cmd
}

func (c *CLI) promptErr(err error) error {
	if errors.Is(err, tui.ErrAborted) {
		c.status.Warning("aborted")
	}
	return err
}

func (c *CLI) uiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive terminal form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			url, err := c.runUI(cmd.Context(),
				session.WithRegistry(c.actions),
				session.WithBuilder(c.builder),
				session.WithLogger(c.logger),
			)
			if err != nil {
				return err
			}
			if url != "" {
				fmt.Fprintln(c.out, url)
			}
			return nil
		},
	}
}

func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the operator page over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				c.cfg.Addr = addr
			}
			transformer, err := c.transformer()
			if err != nil {
				return err
			}
			themeCfg, err := c.themeConfig()
			if err != nil {
				return err
			}
			srv, err := server.New(
				server.WithRegistry(c.actions),
				server.WithBuilder(c.builder),
				server.WithTheme(themeCfg),
				server.WithTransformer(transformer),
				server.WithLogger(c.logger),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx, c.cfg.Addr, c.cfg.ShutdownGrace)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default :8000)")
	return cmd
}
