package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// ConfigCmd returns the config command group.
func ConfigCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect and update saved settings",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the saved settings",
				Action: configShowAction,
			},
			{
				Name:   "path",
				Usage:  "Show the location of the config file",
				Action: configPathAction,
			},
			{
				Name:      "base-dir",
				Usage:     "Show or update the base directory of watched repositories",
				ArgsUsage: "[path]",
				Action:    configBaseDirAction,
			},
		},
	}
}

func configShowAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		fmt.Printf("base_path: %s\n", ctx.Config.BasePath)
		fmt.Println("repos:")
		for _, repo := range ctx.Config.Repos {
			fmt.Printf("  - %s\n", repo)
		}
		return nil
	})
}

func configPathAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		fmt.Println(ctx.ConfigPath)
		return nil
	})
}

func configBaseDirAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		newPath := c.Args().First()
		if newPath == "" {
			fmt.Println(ctx.Config.BasePath)
			return nil
		}

		previous := ctx.Config.BasePath
		ctx.Config.BasePath = newPath
		if err := ctx.SaveConfig(); err != nil {
			return err
		}
		fmt.Printf("Updated base path from %s to %s\n", previous, newPath)
		return nil
	})
}
