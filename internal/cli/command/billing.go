package command

import (
	"context"
	"encoding/json"

	"github.com/urfave/cli/v2"
)

// BillingCommand covers plans and invoices.
func BillingCommand() *cli.Command {
	return &cli.Command{
		Name:  "billing",
		Usage: "Manage plans and invoices",
		Subcommands: []*cli.Command{
			{
				Name:  "plans",
				Usage: "List available plans",
				Action: func(c *cli.Context) error {
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.Plans.List(ctx)
					})
				},
			},
			{
				Name:      "plan",
				Usage:     "Show a single plan",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "plan id")
					if err != nil {
						return err
					}
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.Plans.Get(ctx, id)
					})
				},
			},
			{
				Name:  "invoices",
				Usage: "List invoices",
				Action: func(c *cli.Context) error {
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.Invoices.List(ctx)
					})
				},
			},
			{
				Name:  "invoice-create",
				Usage: "Create an invoice",
				Flags: []cli.Flag{payloadFlag()},
				Action: func(c *cli.Context) error {
					data, err := parsePayload(c)
					if err != nil {
						return err
					}
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.Invoices.Create(ctx, data)
					})
				},
			},
			{
				Name:      "pay",
				Usage:     "Mark an invoice as paid",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "invoice id")
					if err != nil {
						return err
					}
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.Invoices.MarkPaid(ctx, id)
					})
				},
			},
			{
				Name:  "check-overdue",
				Usage: "Run the overdue invoice check",
				Action: func(c *cli.Context) error {
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.Invoices.CheckOverdue(ctx)
					})
				},
			},
		},
	}
}
