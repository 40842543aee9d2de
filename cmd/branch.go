package cmd

import (
	"github.com/urfave/cli/v2"
)

// BranchCmd returns the branch command group.
func BranchCmd() *cli.Command {
	return &cli.Command{
		Name:    "branch",
		Aliases: []string{"b"},
		Usage:   "Inspect branches across all watched repositories",
		Subcommands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Find branches whose name contains a pattern",
				ArgsUsage: "<pattern>",
				Action:    branchSearchAction,
			},
			{
				Name:   "list",
				Usage:  "List the local branches of every watched repository",
				Action: branchListAction,
			},
			{
				Name:    "current",
				Aliases: []string{"curr"},
				Usage:   "Show the branch each watched repository is on",
				Action:  branchCurrentAction,
			},
		},
	}
}

func branchSearchAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		pattern, err := requireArg(c, "pattern")
		if err != nil {
			return err
		}

		matches, err := ctx.Searcher.SearchBranches(ctx.Ctx, ctx.Config.Set(), pattern)
		if err != nil {
			return err
		}
		ctx.Console.WriteBranchMatches(pattern, matches)
		return nil
	})
}

func branchListAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		branches, err := ctx.Searcher.ListBranches(ctx.Ctx, ctx.Config.Set())
		if err != nil {
			return err
		}
		ctx.Console.WriteBranchList(branches)
		return nil
	})
}

func branchCurrentAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		statuses, err := ctx.Searcher.CurrentBranches(ctx.Ctx, ctx.Config.Set())
		if err != nil {
			return err
		}
		ctx.Console.WriteCurrentBranches(statuses)
		return nil
	})
}
