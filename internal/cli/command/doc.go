// Package command provides CLI command definitions for netpanel-cli.
//
// It uses urfave/cli/v2 for command parsing. Session commands (login,
// logout, whoami) drive the session manager; the resource command groups are
// thin wrappers over the API services and render the server payloads
// unmodified in the selected output format.
package command
