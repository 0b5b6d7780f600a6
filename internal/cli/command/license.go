package command

import (
	"context"
	"encoding/json"

	"github.com/urfave/cli/v2"
)

// LicenseCommand manages ISP licenses.
func LicenseCommand() *cli.Command {
	return &cli.Command{
		Name:  "license",
		Usage: "Manage licenses",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all licenses",
				Action: func(c *cli.Context) error {
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.Licenses.List(ctx)
					})
				},
			},
			{
				Name:      "get",
				Usage:     "Show a single license",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "license id")
					if err != nil {
						return err
					}
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.Licenses.Get(ctx, id)
					})
				},
			},
			{
				Name:  "create",
				Usage: "Issue a new license",
				Flags: []cli.Flag{payloadFlag()},
				Action: func(c *cli.Context) error {
					data, err := parsePayload(c)
					if err != nil {
						return err
					}
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.Licenses.Create(ctx, data)
					})
				},
			},
			{
				Name:      "revoke",
				Usage:     "Revoke a license",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "license id")
					if err != nil {
						return err
					}
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.Licenses.Revoke(ctx, id)
					})
				},
			},
			{
				Name:  "validate",
				Usage: "Validate a license key",
				Flags: []cli.Flag{payloadFlag()},
				Action: func(c *cli.Context) error {
					data, err := parsePayload(c)
					if err != nil {
						return err
					}
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.Licenses.Validate(ctx, data)
					})
				},
			},
		},
	}
}
