package command

import (
	"context"
	"encoding/json"

	"github.com/urfave/cli/v2"
)

// UserCommand manages console user accounts.
func UserCommand() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "Manage console user accounts",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all users",
				Action: func(c *cli.Context) error {
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.Users.List(ctx)
					})
				},
			},
			{
				Name:      "get",
				Usage:     "Show a single user",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "user id")
					if err != nil {
						return err
					}
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.Users.Get(ctx, id)
					})
				},
			},
			{
				Name:      "update",
				Usage:     "Update a user",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{payloadFlag()},
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "user id")
					if err != nil {
						return err
					}
					data, err := parsePayload(c)
					if err != nil {
						return err
					}
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.Users.Update(ctx, id, data)
					})
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a user",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "user id")
					if err != nil {
						return err
					}
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.Users.Delete(ctx, id)
					})
				},
			},
		},
	}
}
