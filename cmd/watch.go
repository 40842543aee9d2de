package cmd

import (
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

// WatchCmd returns the watch command group.
func WatchCmd() *cli.Command {
	return &cli.Command{
		Name:    "watch",
		Aliases: []string{"w"},
		Usage:   "Manage the list of watched repositories",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add repositories to the watched list (comma-separated names)",
				ArgsUsage: "<names>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "reset",
						Usage: "Clear the watched list before adding",
					},
				},
				Action: watchAddAction,
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Remove repositories from the watched list (comma-separated names)",
				ArgsUsage: "<names>",
				Action:    watchRemoveAction,
			},
			{
				Name:   "list",
				Usage:  "Show the watched repositories",
				Action: watchListAction,
			},
		},
	}
}

func watchAddAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		arg, err := requireArg(c, "names")
		if err != nil {
			return err
		}

		if c.Bool("reset") {
			ctx.Config.Repos = nil
		}

		var valid []string
		for _, name := range splitNames(arg) {
			if !ctx.Searcher.IsValidRepository(ctx.Config.BasePath, name) {
				color.Yellow("Skipping %s: not a valid repo", name)
				continue
			}
			valid = append(valid, name)
		}
		ctx.Config.AddRepos(valid)

		if err := ctx.SaveConfig(); err != nil {
			return err
		}
		ctx.Console.WriteNames("Watched repos:", ctx.Config.Repos)
		return nil
	})
}

func watchRemoveAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		arg, err := requireArg(c, "names")
		if err != nil {
			return err
		}

		missing := ctx.Config.RemoveRepos(splitNames(arg))
		for _, name := range missing {
			color.Yellow("Repo %s is not watched", name)
		}

		if err := ctx.SaveConfig(); err != nil {
			return err
		}
		ctx.Console.WriteNames("Watched repos:", ctx.Config.Repos)
		return nil
	})
}

func watchListAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		ctx.Console.WriteNames("Watched repos:", ctx.Config.Repos)
		return nil
	})
}
