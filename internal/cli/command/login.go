package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/netpanel/netpanel-go/internal/credstore"
)

// LoginCommand signs in and persists the issued credential pair.
func LoginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Sign in to the console and store the session credentials",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "email",
				Aliases:  []string{"e"},
				Usage:    "Account email",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "password",
				Aliases:  []string{"p"},
				Usage:    "Account password",
				EnvVars:  []string{"NETPANEL_PASSWORD"},
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			env, err := BuildEnv(c)
			if err != nil {
				return err
			}

			ctx, cancel := cmdContext()
			defer cancel()

			if err := env.Session.Login(ctx, c.String("email"), c.String("password")); err != nil {
				return fmt.Errorf("%s", env.Session.Err())
			}

			user := env.Session.User()
			fmt.Fprintf(c.App.Writer, "Logged in as %s (%s)\n", user.Name, user.EffectiveRole())
			return nil
		},
	}
}

// LogoutCommand clears the stored session.
func LogoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Sign out and clear the stored session credentials",
		Action: func(c *cli.Context) error {
			env, err := BuildEnv(c)
			if err != nil {
				return err
			}

			env.Session.CheckAuth()
			env.Session.Logout()
			fmt.Fprintln(c.App.Writer, "Logged out")
			return nil
		},
	}
}

// WhoamiCommand shows the restored session identity.
func WhoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the current session identity",
		Action: func(c *cli.Context) error {
			env, err := BuildEnv(c)
			if err != nil {
				return err
			}

			if !env.Session.CheckAuth() {
				return fmt.Errorf("not logged in")
			}

			user := env.Session.User()
			return renderPayload(c, env, mustJSON(map[string]any{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
				"role":  string(user.EffectiveRole()),
			}))
		},
	}
}

// RegisterCommand creates a new account. Registration does not sign in; the
// created account logs in separately.
func RegisterCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "Register a new account",
		Flags: []cli.Flag{payloadFlag()},
		Action: func(c *cli.Context) error {
			env, err := BuildEnv(c)
			if err != nil {
				return err
			}
			data, err := parsePayload(c)
			if err != nil {
				return err
			}

			ctx, cancel := cmdContext()
			defer cancel()

			raw, err := env.API.Auth.Register(ctx, data)
			if err != nil {
				return err
			}
			return renderPayload(c, env, raw)
		},
	}
}

// RefreshCommand exchanges the stored token for a fresh one. The new token
// is persisted only while a session is held; a refresh racing a logout must
// not resurrect credentials.
func RefreshCommand() *cli.Command {
	return &cli.Command{
		Name:  "refresh",
		Usage: "Refresh the stored session token",
		Action: func(c *cli.Context) error {
			env, err := BuildEnv(c)
			if err != nil {
				return err
			}

			if !env.Session.CheckAuth() {
				return fmt.Errorf("not logged in")
			}

			ctx, cancel := cmdContext()
			defer cancel()

			raw, err := env.API.Auth.RefreshToken(ctx)
			if err != nil {
				return err
			}

			if token := tokenFromPayload(raw); token != "" && env.Session.IsAuthenticated() {
				if err := env.Store.Set(credstore.KeyToken, token); err != nil {
					return err
				}
			}
			fmt.Fprintln(c.App.Writer, "Session refreshed")
			return nil
		},
	}
}
