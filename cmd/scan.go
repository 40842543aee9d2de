package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/grepo-cli/grepo/internal/discovery"
)

// ScanCmd returns the scan command.
func ScanCmd() *cli.Command {
	return &cli.Command{
		Name:    "scan",
		Aliases: []string{"sbd"},
		Usage:   "Replace the watched list with repositories found under the base path",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Glob pattern for directory names to skip (repeatable)",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Skip the confirmation prompt",
			},
		},
		Action: scanAction,
	}
}

func scanAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		if !c.Bool("yes") {
			prompt := fmt.Sprintf(
				"This will replace your watched repos with directories found under %s. Continue? [y/N]: ",
				ctx.Config.BasePath)
			if !confirm(prompt) {
				return nil
			}
		}

		scanner := discovery.NewScanner(ctx.Backend, ctx.Logger, c.StringSlice("exclude"))
		repos, err := scanner.Scan(ctx.Config.BasePath)
		if err != nil {
			return err
		}

		ctx.Config.Repos = repos
		if err := ctx.SaveConfig(); err != nil {
			return err
		}
		ctx.Console.WriteNames("Watched repos:", repos)
		return nil
	})
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
