// Package main provides the entry point for netpanel-cli.
//
// The CLI tool provides command-line access to the NetPanel console API for:
//
//   - Session management (login, logout, whoami, refresh)
//   - ISP, user, license and distributor administration
//   - Billing (plans, invoices, overdue checks)
//   - System logs, settings and dashboard statistics
//
// Usage:
//
//	netpanel-cli [command] [flags]
//	netpanel-cli login --email admin@example.com
//	netpanel-cli isp list --output json
package main
