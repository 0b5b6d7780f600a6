package command

import (
	"context"
	"encoding/json"

	"github.com/urfave/cli/v2"
)

// DistributorCommand manages distributor accounts.
func DistributorCommand() *cli.Command {
	return &cli.Command{
		Name:  "distributor",
		Usage: "Manage distributor accounts",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all distributors",
				Action: func(c *cli.Context) error {
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.Distributors.List(ctx)
					})
				},
			},
			{
				Name:      "get",
				Usage:     "Show a single distributor",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "distributor id")
					if err != nil {
						return err
					}
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.Distributors.Get(ctx, id)
					})
				},
			},
			{
				Name:  "create",
				Usage: "Create a distributor",
				Flags: []cli.Flag{payloadFlag()},
				Action: func(c *cli.Context) error {
					data, err := parsePayload(c)
					if err != nil {
						return err
					}
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.Distributors.Create(ctx, data)
					})
				},
			},
			{
				Name:      "update",
				Usage:     "Update a distributor",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{payloadFlag()},
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "distributor id")
					if err != nil {
						return err
					}
					data, err := parsePayload(c)
					if err != nil {
						return err
					}
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.Distributors.Update(ctx, id, data)
					})
				},
			},
			{
				Name:      "isps",
				Usage:     "List ISP accounts under a distributor",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "distributor id")
					if err != nil {
						return err
					}
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.Distributors.ISPs(ctx, id)
					})
				},
			},
		},
	}
}
