package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/netpanel/netpanel-go/internal/api"
	"github.com/netpanel/netpanel-go/internal/cli/config"
	"github.com/netpanel/netpanel-go/internal/cli/output"
	"github.com/netpanel/netpanel-go/internal/core/session"
	"github.com/netpanel/netpanel-go/internal/credstore"
	"github.com/netpanel/netpanel-go/internal/telemetry/logger"
	"github.com/netpanel/netpanel-go/internal/telemetry/metric"
	"github.com/netpanel/netpanel-go/internal/transport"
	"github.com/netpanel/netpanel-go/pkg/crypto/seal"
)

// Build information, set via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// requestTimeout bounds each command's API call.
const requestTimeout = 30 * time.Second

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "netpanel-cli",
		Usage:   "NetPanel console management tool",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			LoginCommand(),
			LogoutCommand(),
			WhoamiCommand(),
			RegisterCommand(),
			RefreshCommand(),
			ISPCommand(),
			UserCommand(),
			LicenseCommand(),
			DistributorCommand(),
			BillingCommand(),
			LogsCommand(),
			SettingsCommand(),
			DashboardCommand(),
			SitesCommand(),
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Config file path (default ~/.netpanel/cli.yaml)",
		},
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "API endpoint root (e.g. https://console.example.com/api)",
			EnvVars: []string{"NETPANEL_SERVER"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable verbose logging",
		},
	}
}

// Env is the wired client stack for one invocation: config, credential
// store, request pipeline, API services and the session manager, constructed
// once and passed by handle.
type Env struct {
	Config  *config.CLIConfig
	Store   credstore.Store
	Session *session.Manager
	API     *api.Client
	Log     logger.Logger
}

// BuildEnv wires the client stack from config and global flags. Tests may
// pre-place an *Env in the app metadata to substitute their own store and
// server.
func BuildEnv(c *cli.Context) (*Env, error) {
	if e, ok := c.App.Metadata["env"].(*Env); ok {
		return e, nil
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if server := c.String("server"); server != "" {
		cfg.Server = server
	}
	if out := c.String("output"); out != "" {
		cfg.Output = out
	}

	logCfg := logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}
	if c.Bool("verbose") {
		logCfg.Level = "debug"
	}
	log := logger.New(logCfg)

	var fileOpts []credstore.FileOption
	if cfg.Credentials.Key != "" {
		key, err := seal.ParseKey(cfg.Credentials.Key)
		if err != nil {
			return nil, err
		}
		fileOpts = append(fileOpts, credstore.WithSealKey(key))
	}
	store, err := credstore.NewFile(cfg.Credentials.File, fileOpts...)
	if err != nil {
		return nil, err
	}

	return wireEnv(cfg, store, log), nil
}

// wireEnv assembles pipeline, API client and session manager over a store.
// The pipeline's invalidated hook routes through the session manager so the
// in-memory aggregate is cleared along with the persisted pair.
func wireEnv(cfg *config.CLIConfig, store credstore.Store, log logger.Logger) *Env {
	env := &Env{Config: cfg, Store: store, Log: log}

	metrics := metric.New(prometheus.NewRegistry())
	pipelineOpts := []transport.PipelineOption{
		transport.WithLogger(log),
		transport.WithMetrics(metrics),
		transport.WithInvalidatedHook(func() {
			if env.Session != nil {
				env.Session.Invalidate()
			}
		}),
	}
	if cfg.RateLimit.RPS > 0 {
		pipelineOpts = append(pipelineOpts, transport.WithRateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	httpClient := transport.NewClient(cfg.Server, transport.NewPipeline(store, pipelineOpts...))
	env.API = api.New(httpClient)
	env.Session = session.NewManager(store, env.API.Auth,
		session.WithLogger(log),
		session.WithMetrics(metrics),
		session.WithInvalidatedHandler(func() {
			fmt.Fprintln(os.Stderr, "session expired: run 'netpanel-cli login' to sign in again")
		}),
	)
	return env
}

// cmdContext returns the bounded context for one API call.
func cmdContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// outputFormat resolves the effective format from flags and config.
func outputFormat(c *cli.Context, env *Env) output.Format {
	if f := c.String("output"); f != "" {
		return output.Format(f)
	}
	if env.Config != nil && env.Config.Output != "" {
		return output.Format(env.Config.Output)
	}
	return output.FormatTable
}

// renderPayload prints a raw server payload in the selected format. The
// server's data envelope is unwrapped for presentation only; the payload
// itself is not reshaped.
func renderPayload(c *cli.Context, env *Env, raw json.RawMessage) error {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		// Not JSON; print as-is.
		fmt.Fprintln(c.App.Writer, string(raw))
		return nil
	}

	if m, ok := decoded.(map[string]any); ok && len(m) == 1 {
		if data, ok := m["data"]; ok {
			decoded = data
		}
	}

	formatter := output.NewFormatter(outputFormat(c, env), c.Bool("wide"))
	return formatter.Format(c.App.Writer, decoded)
}

// payloadFlag is the shared --data flag for create/update commands.
func payloadFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "data",
		Aliases: []string{"d"},
		Usage:   "Request payload as a JSON object",
	}
}

// parsePayload decodes the --data flag. A missing flag yields nil.
func parsePayload(c *cli.Context) (any, error) {
	raw := c.String("data")
	if raw == "" {
		return nil, nil
	}
	var data any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("parse --data: %w", err)
	}
	return data, nil
}

// runRaw wires the environment, runs a single API call and renders its raw
// payload. Most resource subcommands reduce to this shape.
func runRaw(c *cli.Context, fn func(ctx context.Context, env *Env) (json.RawMessage, error)) error {
	env, err := BuildEnv(c)
	if err != nil {
		return err
	}

	ctx, cancel := cmdContext()
	defer cancel()

	raw, err := fn(ctx, env)
	if err != nil {
		return err
	}
	return renderPayload(c, env, raw)
}

// mustJSON marshals a value known to be encodable.
func mustJSON(v any) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return raw
}

// tokenFromPayload pulls a token out of a refresh response, unwrapping the
// data envelope when present. Returns "" when no token is found.
func tokenFromPayload(raw json.RawMessage) string {
	var envelope struct {
		Token string `json:"token"`
		Data  struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return ""
	}
	if envelope.Data.Token != "" {
		return envelope.Data.Token
	}
	return envelope.Token
}

// requireArg returns the first positional argument or an error naming it.
func requireArg(c *cli.Context, name string) (string, error) {
	v := c.Args().First()
	if v == "" {
		return "", fmt.Errorf("%s required", name)
	}
	return v, nil
}
