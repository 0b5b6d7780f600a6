package command

import (
	"context"
	"encoding/json"

	"github.com/urfave/cli/v2"
)

// ISPCommand manages ISP accounts.
func ISPCommand() *cli.Command {
	return &cli.Command{
		Name:  "isp",
		Usage: "Manage ISP accounts",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all ISP accounts",
				Action: func(c *cli.Context) error {
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.ISPs.List(ctx)
					})
				},
			},
			{
				Name:      "get",
				Usage:     "Show a single ISP account",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "isp id")
					if err != nil {
						return err
					}
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.ISPs.Get(ctx, id)
					})
				},
			},
			{
				Name:  "create",
				Usage: "Create an ISP account",
				Flags: []cli.Flag{payloadFlag()},
				Action: func(c *cli.Context) error {
					data, err := parsePayload(c)
					if err != nil {
						return err
					}
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.ISPs.Create(ctx, data)
					})
				},
			},
			{
				Name:      "update",
				Usage:     "Update an ISP account",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{payloadFlag()},
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "isp id")
					if err != nil {
						return err
					}
					data, err := parsePayload(c)
					if err != nil {
						return err
					}
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.ISPs.Update(ctx, id, data)
					})
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete an ISP account",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "isp id")
					if err != nil {
						return err
					}
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.ISPs.Delete(ctx, id)
					})
				},
			},
			{
				Name:      "suspend",
				Usage:     "Suspend an ISP account",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "isp id")
					if err != nil {
						return err
					}
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.ISPs.Suspend(ctx, id)
					})
				},
			},
			{
				Name:      "activate",
				Usage:     "Reactivate a suspended ISP account",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "isp id")
					if err != nil {
						return err
					}
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.ISPs.Activate(ctx, id)
					})
				},
			},
			{
				Name:      "telemetry",
				Usage:     "Show telemetry for an ISP account",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "isp id")
					if err != nil {
						return err
					}
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.ISPs.Telemetry(ctx, id)
					})
				},
			},
			{
				Name:      "dashboard",
				Usage:     "Show the dashboard summary for an ISP account",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "isp id")
					if err != nil {
						return err
					}
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.ISPs.Dashboard(ctx, id)
					})
				},
			},
		},
	}
}
