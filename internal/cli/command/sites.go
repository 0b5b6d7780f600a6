package command

import (
	"context"
	"encoding/json"

	"github.com/urfave/cli/v2"
)

// SitesCommand shows site and application traffic rankings.
func SitesCommand() *cli.Command {
	return &cli.Command{
		Name:  "sites",
		Usage: "Show site and application traffic rankings",
		Subcommands: []*cli.Command{
			{
				Name:  "top",
				Usage: "Show top visited sites",
				Flags: []cli.Flag{paramFlag()},
				Action: func(c *cli.Context) error {
					params, err := parseParams(c)
					if err != nil {
						return err
					}
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.Sites.TopSites(ctx, params)
					})
				},
			},
			{
				Name:  "apps",
				Usage: "Show top applications by traffic",
				Action: func(c *cli.Context) error {
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.Sites.TopApps(ctx)
					})
				},
			},
			{
				Name:  "categories",
				Usage: "Show application categories",
				Action: func(c *cli.Context) error {
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.Sites.AppCategories(ctx)
					})
				},
			},
		},
	}
}
