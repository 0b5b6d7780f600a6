package command

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/urfave/cli/v2"
)

// paramFlag is the shared repeatable query parameter flag.
func paramFlag() *cli.StringSliceFlag {
	return &cli.StringSliceFlag{
		Name:    "param",
		Aliases: []string{"P"},
		Usage:   "Query parameter as key=value (repeatable)",
	}
}

// parseParams turns repeated --param key=value flags into query values.
func parseParams(c *cli.Context) (url.Values, error) {
	params := url.Values{}
	for _, pair := range c.StringSlice("param") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --param %q, expected key=value", pair)
		}
		params.Add(key, value)
	}
	return params, nil
}

// LogsCommand inspects and maintains system logs.
func LogsCommand() *cli.Command {
	return &cli.Command{
		Name:  "logs",
		Usage: "Inspect system logs",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List log entries",
				Flags: []cli.Flag{paramFlag()},
				Action: func(c *cli.Context) error {
					params, err := parseParams(c)
					if err != nil {
						return err
					}
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.Logs.List(ctx, params)
					})
				},
			},
			{
				Name:  "stats",
				Usage: "Show log statistics",
				Action: func(c *cli.Context) error {
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.Logs.Stats(ctx)
					})
				},
			},
			{
				Name:  "cleanup",
				Usage: "Delete old log entries",
				Action: func(c *cli.Context) error {
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.Logs.Cleanup(ctx)
					})
				},
			},
		},
	}
}

// SettingsCommand reads and updates system settings.
func SettingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "Read and update system settings",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all settings",
				Action: func(c *cli.Context) error {
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.Settings.List(ctx)
					})
				},
			},
			{
				Name:      "get",
				Usage:     "Show a single setting",
				ArgsUsage: "<key>",
				Action: func(c *cli.Context) error {
					key, err := requireArg(c, "setting key")
					if err != nil {
						return err
					}
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.Settings.Get(ctx, key)
					})
				},
			},
			{
				Name:      "set",
				Usage:     "Update a setting",
				ArgsUsage: "<key> <value>",
				Action: func(c *cli.Context) error {
					key, err := requireArg(c, "setting key")
					if err != nil {
						return err
					}
					value := c.Args().Get(1)
					if value == "" {
						return fmt.Errorf("setting value required")
					}
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.Settings.Update(ctx, key, value)
					})
				},
			},
		},
	}
}

// DashboardCommand shows the console dashboard summary and telemetry stats.
func DashboardCommand() *cli.Command {
	return &cli.Command{
		Name:  "dashboard",
		Usage: "Show dashboard statistics",
		Subcommands: []*cli.Command{
			{
				Name:  "stats",
				Usage: "Show the dashboard summary",
				Action: func(c *cli.Context) error {
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.Dashboard.Stats(ctx)
					})
				},
			},
			{
				Name:  "telemetry",
				Usage: "Show aggregated telemetry statistics",
				Flags: []cli.Flag{paramFlag()},
				Action: func(c *cli.Context) error {
					params, err := parseParams(c)
					if err != nil {
						return err
					}
					return runRaw(c, func(ctx context.Context, env *Env) (json.RawMessage, error) {
						return env.API.Telemetry.Stats(ctx, params)
					})
				},
			},
		},
	}
}
