package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/grepo-cli/grepo/config"
	"github.com/grepo-cli/grepo/internal/git"
	"github.com/grepo-cli/grepo/internal/output"
	"github.com/grepo-cli/grepo/internal/search"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "grepo",
		Usage:   "Organize and search a set of watched git repositories",
		Version: "0.2.0",
		Commands: []*cli.Command{
			WatchCmd(),
			BranchCmd(),
			CommitsCmd(),
			ScanCmd(),
			ConfigCmd(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: "Repository backend (native, gitcli)",
				Value: "native",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Max repositories processed concurrently (0 = number of CPUs)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Abort the whole operation after this duration (0 = no limit)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
	}
}

// CommandContext bundles the collaborators every command needs.
type CommandContext struct {
	Ctx        context.Context
	Config     config.File
	ConfigPath string
	Searcher   *search.Searcher
	Backend    git.Backend
	Logger     *zap.Logger
	Console    *output.Console
}

// SaveConfig persists the (possibly mutated) configuration back to the
// file it was loaded from.
func (ctx *CommandContext) SaveConfig() error {
	return config.Save(ctx.ConfigPath, ctx.Config)
}

// executeWithContext loads configuration, builds the searcher and
// logger, and runs fn with an optional deadline applied.
func executeWithContext(c *cli.Context, fn func(*CommandContext, *cli.Context) error) error {
	logger, err := buildLogger(c.Bool("verbose"))
	if err != nil {
		return err
	}
	defer logger.Sync()

	configPath := c.String("config")
	if configPath == "" {
		configPath, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	backend, err := parseBackendFlag(c.String("backend"))
	if err != nil {
		return err
	}

	ctx := context.Background()
	if timeout := c.Duration("timeout"); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	return fn(&CommandContext{
		Ctx:        ctx,
		Config:     cfg,
		ConfigPath: configPath,
		Searcher:   search.NewSearcher(backend, logger, search.Options{Workers: c.Int("workers")}),
		Backend:    backend,
		Logger:     logger,
		Console:    output.NewConsole(),
	}, c)
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}

func parseBackendFlag(s string) (git.Backend, error) {
	switch s {
	case "", "native":
		return git.NewGoGitBackend(), nil
	case "gitcli":
		return git.NewCLIBackend(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (expected native or gitcli)", s)
	}
}

// splitNames parses a comma-separated name list, trimming whitespace
// and dropping empty entries.
func splitNames(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}

// requireArg returns the first positional argument or a usage error.
func requireArg(c *cli.Context, name string) (string, error) {
	value := c.Args().First()
	if value == "" {
		return "", fmt.Errorf("missing required argument: %s", name)
	}
	return value, nil
}
