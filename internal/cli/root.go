// Package cli wires the jobform command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-jobform/pkg/app"
	"github.com/goliatone/go-jobform/pkg/clipboard"
	"github.com/goliatone/go-jobform/pkg/config"
	"github.com/goliatone/go-jobform/pkg/logging"
	"github.com/goliatone/go-jobform/pkg/orchestrator"
	"github.com/goliatone/go-jobform/pkg/registry"
	"github.com/goliatone/go-jobform/pkg/renderers/tui"
	"github.com/goliatone/go-jobform/pkg/session"
	"github.com/goliatone/go-jobform/pkg/urlbuilder"
)

// Option customises the command tree, mostly for tests.
type Option func(*CLI)

// WithOutput redirects command output and status lines.
func WithOutput(out, errOut io.Writer) Option {
	return func(c *CLI) {
		if out != nil {
			c.out = out
		}
		if errOut != nil {
			c.errOut = errOut
		}
	}
}

// WithPromptDriver replaces the survey prompts used by `prompt`.
func WithPromptDriver(driver tui.PromptDriver) Option {
	return func(c *CLI) {
		c.driver = driver
	}
}

// WithClipboard replaces the system clipboard used by `build --copy`.
func WithClipboard(w clipboard.Writer) Option {
	return func(c *CLI) {
		if w != nil {
			c.clip = w
		}
	}
}

// WithUIRunner replaces the terminal program started by `ui`.
func WithUIRunner(run func(context.Context, ...session.Option) (string, error)) Option {
	return func(c *CLI) {
		if run != nil {
			c.runUI = run
		}
	}
}

type globalFlags struct {
	baseURL   string
	env       string
	registry  string
	preset    string
	logLevel  string
	logFormat string
	envFile   string
	theme     string
	variant   string
}

// CLI holds the state shared by every command once the root pre-run
// resolved configuration.
type CLI struct {
	out    io.Writer
	errOut io.Writer
	driver tui.PromptDriver
	clip   clipboard.Writer
	runUI  func(context.Context, ...session.Option) (string, error)

	flags   globalFlags
	cfg     config.Config
	logger  *slog.Logger
	actions *registry.Registry
	builder *urlbuilder.Builder
	status  *printer
}

// NewCommand builds the root command.
func NewCommand(options ...Option) *cobra.Command {
	c := &CLI{
		out:    os.Stdout,
		errOut: os.Stderr,
		clip:   clipboard.System(),
		runUI:  app.Run,
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	c.status = newPrinter(c.errOut)

	root := &cobra.Command{
		Use:   "jobform",
		Short: "Build parameterised job URLs for the automation server",
		Long: `jobform renders the operator form for a fixed set of maintenance jobs
and turns the entered values into a parambuild URL. It never calls the
automation server itself.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.baseURL, "base-url", "", "Automation server origin (default "+urlbuilder.DefaultBaseURL+")")
	pf.StringVar(&c.flags.env, "env", "", "Value of the env query parameter (default "+urlbuilder.DefaultEnv+")")
	pf.StringVar(&c.flags.registry, "registry", "", "Registry file or directory replacing the built-in actions")
	pf.StringVar(&c.flags.preset, "preset", "", "Label and placeholder overrides (JSON or YAML)")
	pf.StringVar(&c.flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&c.flags.logFormat, "log-format", "", "Log format (text, json)")
	pf.StringVar(&c.flags.envFile, "env-file", "", "Read settings from this .env file")
	pf.StringVar(&c.flags.theme, "theme", "", "Page theme ("+orchestrator.DefaultThemeName+")")
	pf.StringVar(&c.flags.variant, "theme-variant", "", "Theme variant (e.g. dark)")

	root.AddCommand(
		c.actionsCommand(),
		c.fieldsCommand(),
		c.buildCommand(),
		c.inspectCommand(),
		c.promptCommand(),
		c.uiCommand(),
		c.serveCommand(),
		c.openapiCommand(),
	)
	return root
}

// Execute runs the command tree against the process arguments.
func Execute(ctx context.Context) error {
	return NewCommand().ExecuteContext(ctx)
}

func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	var files []string
	if c.flags.envFile != "" {
		files = append(files, c.flags.envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	override := func(name string, target *string, value string) {
		if flags.Changed(name) {
			*target = value
		}
	}
	override("base-url", &cfg.BaseURL, c.flags.baseURL)
	override("env", &cfg.Env, c.flags.env)
	override("registry", &cfg.RegistryFile, c.flags.registry)
	override("preset", &cfg.PresetFile, c.flags.preset)
	override("log-level", &cfg.LogLevel, c.flags.logLevel)
	override("log-format", &cfg.LogFormat, c.flags.logFormat)
	override("theme", &cfg.Theme, c.flags.theme)
	override("theme-variant", &cfg.ThemeVariant, c.flags.variant)
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	c.logger = logging.New(cfg.LogLevel, cfg.LogFormat, c.errOut)

	c.actions = registry.Default()
	if cfg.RegistryFile != "" {
		reg, err := registry.Load(cfg.RegistryFile)
		if err != nil {
			return err
		}
		c.actions = reg
	}
	c.builder = urlbuilder.New(cfg.BuilderOptions()...)

	c.logger.Debug("configuration resolved",
		slog.String("base_url", cfg.BaseURL),
		slog.String("env", cfg.Env),
		slog.Int("actions", c.actions.Len()),
	)
	return nil
}

func (c *CLI) transformer() (orchestrator.Transformer, error) {
	if c.cfg.PresetFile == "" {
		return nil, nil
	}
	path := c.cfg.PresetFile
	return orchestrator.LoadPresetTransformer(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

func (c *CLI) themeConfig() (*theme.RendererConfig, error) {
	switch c.cfg.Theme {
	case "":
		return nil, nil
	case orchestrator.DefaultThemeName:
		return orchestrator.ResolveTheme(orchestrator.DefaultThemeManifest(), c.cfg.ThemeVariant)
	default:
		return nil, fmt.Errorf("cli: unknown theme %q", c.cfg.Theme)
	}
}

func (c *CLI) orchestrator() (*orchestrator.Orchestrator, error) {
	transformer, err := c.transformer()
	if err != nil {
		return nil, err
	}
	themeCfg, err := c.themeConfig()
	if err != nil {
		return nil, err
	}
	return orchestrator.New(
		orchestrator.WithRegistry(c.actions),
		orchestrator.WithBuilder(c.builder),
		orchestrator.WithTheme(themeCfg),
		orchestrator.WithTransformer(transformer),
	), nil
}
