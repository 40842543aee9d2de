package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/grepo-cli/grepo/internal/search"
)

// CommitsCmd returns the commits command.
func CommitsCmd() *cli.Command {
	return &cli.Command{
		Name:      "commits",
		Aliases:   []string{"cm"},
		Usage:     "Search commit history across every branch of every watched repository",
		ArgsUsage: "<pattern>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "author",
				Aliases: []string{"a"},
				Usage:   "Also match the pattern against the author string",
			},
		},
		Action: commitsAction,
	}
}

func commitsAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		pattern, err := requireArg(c, "pattern")
		if err != nil {
			return err
		}

		matches, err := ctx.Searcher.SearchCommits(ctx.Ctx, ctx.Config.Set(), search.CommitQuery{
			Pattern:       pattern,
			IncludeAuthor: c.Bool("author"),
		})
		if err != nil {
			return err
		}
		ctx.Console.WriteCommitMatches(pattern, matches)
		return nil
	})
}
