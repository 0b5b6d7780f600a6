package api

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/netpanel/netpanel-go/internal/transport"
)

// The services below are mechanical endpoint tables. Identifiers are taken
// as strings and escaped into the path; payloads and results pass through
// unmodified.

// UsersService maps the /users endpoints.
type UsersService struct {
	http *transport.Client
}

func (s *UsersService) List(ctx context.Context) (json.RawMessage, error) {
	return getRaw(ctx, s.http, "/users", nil)
}

func (s *UsersService) Get(ctx context.Context, id string) (json.RawMessage, error) {
	return getRaw(ctx, s.http, "/users/"+url.PathEscape(id), nil)
}

func (s *UsersService) Update(ctx context.Context, id string, data any) (json.RawMessage, error) {
	return putRaw(ctx, s.http, "/users/"+url.PathEscape(id), nil, data)
}

func (s *UsersService) Delete(ctx context.Context, id string) (json.RawMessage, error) {
	return deleteRaw(ctx, s.http, "/users/"+url.PathEscape(id))
}

// ISPService maps the /isps endpoints.
type ISPService struct {
	http *transport.Client
}

func (s *ISPService) List(ctx context.Context) (json.RawMessage, error) {
	return getRaw(ctx, s.http, "/isps", nil)
}

func (s *ISPService) Get(ctx context.Context, id string) (json.RawMessage, error) {
	return getRaw(ctx, s.http, "/isps/"+url.PathEscape(id), nil)
}

func (s *ISPService) Create(ctx context.Context, data any) (json.RawMessage, error) {
	return postRaw(ctx, s.http, "/isps", data)
}

func (s *ISPService) Update(ctx context.Context, id string, data any) (json.RawMessage, error) {
	return putRaw(ctx, s.http, "/isps/"+url.PathEscape(id), nil, data)
}

func (s *ISPService) Delete(ctx context.Context, id string) (json.RawMessage, error) {
	return deleteRaw(ctx, s.http, "/isps/"+url.PathEscape(id))
}

func (s *ISPService) Suspend(ctx context.Context, id string) (json.RawMessage, error) {
	return postRaw(ctx, s.http, "/isps/"+url.PathEscape(id)+"/suspend", nil)
}

func (s *ISPService) Activate(ctx context.Context, id string) (json.RawMessage, error) {
	return postRaw(ctx, s.http, "/isps/"+url.PathEscape(id)+"/activate", nil)
}

func (s *ISPService) Telemetry(ctx context.Context, id string) (json.RawMessage, error) {
	return getRaw(ctx, s.http, "/isps/"+url.PathEscape(id)+"/telemetry", nil)
}

func (s *ISPService) Dashboard(ctx context.Context, id string) (json.RawMessage, error) {
	return getRaw(ctx, s.http, "/isps/"+url.PathEscape(id)+"/dashboard", nil)
}

// LicenseService maps the /licenses endpoints.
type LicenseService struct {
	http *transport.Client
}

func (s *LicenseService) List(ctx context.Context) (json.RawMessage, error) {
	return getRaw(ctx, s.http, "/licenses", nil)
}

func (s *LicenseService) Get(ctx context.Context, id string) (json.RawMessage, error) {
	return getRaw(ctx, s.http, "/licenses/"+url.PathEscape(id), nil)
}

func (s *LicenseService) Create(ctx context.Context, data any) (json.RawMessage, error) {
	return postRaw(ctx, s.http, "/licenses", data)
}

func (s *LicenseService) Revoke(ctx context.Context, id string) (json.RawMessage, error) {
	return postRaw(ctx, s.http, "/licenses/"+url.PathEscape(id)+"/revoke", nil)
}

func (s *LicenseService) Validate(ctx context.Context, data any) (json.RawMessage, error) {
	return postRaw(ctx, s.http, "/licenses/validate", data)
}

// DistributorService maps the /distributors endpoints.
type DistributorService struct {
	http *transport.Client
}

func (s *DistributorService) List(ctx context.Context) (json.RawMessage, error) {
	return getRaw(ctx, s.http, "/distributors", nil)
}

func (s *DistributorService) Get(ctx context.Context, id string) (json.RawMessage, error) {
	return getRaw(ctx, s.http, "/distributors/"+url.PathEscape(id), nil)
}

func (s *DistributorService) Create(ctx context.Context, data any) (json.RawMessage, error) {
	return postRaw(ctx, s.http, "/distributors", data)
}

func (s *DistributorService) Update(ctx context.Context, id string, data any) (json.RawMessage, error) {
	return putRaw(ctx, s.http, "/distributors/"+url.PathEscape(id), nil, data)
}

func (s *DistributorService) ISPs(ctx context.Context, id string) (json.RawMessage, error) {
	return getRaw(ctx, s.http, "/distributors/"+url.PathEscape(id)+"/isps", nil)
}

// PlanService maps the /plans endpoints.
type PlanService struct {
	http *transport.Client
}

func (s *PlanService) List(ctx context.Context) (json.RawMessage, error) {
	return getRaw(ctx, s.http, "/plans", nil)
}

func (s *PlanService) Get(ctx context.Context, id string) (json.RawMessage, error) {
	return getRaw(ctx, s.http, "/plans/"+url.PathEscape(id), nil)
}

// InvoiceService maps the /invoices endpoints.
type InvoiceService struct {
	http *transport.Client
}

func (s *InvoiceService) List(ctx context.Context) (json.RawMessage, error) {
	return getRaw(ctx, s.http, "/invoices", nil)
}

func (s *InvoiceService) Create(ctx context.Context, data any) (json.RawMessage, error) {
	return postRaw(ctx, s.http, "/invoices", data)
}

func (s *InvoiceService) MarkPaid(ctx context.Context, id string) (json.RawMessage, error) {
	return postRaw(ctx, s.http, "/invoices/"+url.PathEscape(id)+"/pay", nil)
}

func (s *InvoiceService) CheckOverdue(ctx context.Context) (json.RawMessage, error) {
	return postRaw(ctx, s.http, "/invoices/check-overdue", nil)
}

// TelemetryService maps the /telemetry endpoints.
type TelemetryService struct {
	http *transport.Client
}

func (s *TelemetryService) Stats(ctx context.Context, params url.Values) (json.RawMessage, error) {
	return getRaw(ctx, s.http, "/telemetry/stats", params)
}

// LogService maps the /logs endpoints.
type LogService struct {
	http *transport.Client
}

func (s *LogService) List(ctx context.Context, params url.Values) (json.RawMessage, error) {
	return getRaw(ctx, s.http, "/logs", params)
}

func (s *LogService) Stats(ctx context.Context) (json.RawMessage, error) {
	return getRaw(ctx, s.http, "/logs/stats", nil)
}

func (s *LogService) Cleanup(ctx context.Context) (json.RawMessage, error) {
	return deleteRaw(ctx, s.http, "/logs/cleanup")
}

// SettingsService maps the /settings endpoints. The key travels as a query
// parameter, matching the server's routes.
type SettingsService struct {
	http *transport.Client
}

func (s *SettingsService) List(ctx context.Context) (json.RawMessage, error) {
	return getRaw(ctx, s.http, "/settings", nil)
}

func (s *SettingsService) Get(ctx context.Context, key string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("key", key)
	return getRaw(ctx, s.http, "/settings/get", q)
}

func (s *SettingsService) Update(ctx context.Context, key string, value any) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("key", key)
	return putRaw(ctx, s.http, "/settings/update", q, map[string]any{"value": value})
}

// DashboardService maps the /dashboard endpoints.
type DashboardService struct {
	http *transport.Client
}

func (s *DashboardService) Stats(ctx context.Context) (json.RawMessage, error) {
	return getRaw(ctx, s.http, "/dashboard/stats", nil)
}

// SiteService maps the top sites and apps endpoints.
type SiteService struct {
	http *transport.Client
}

func (s *SiteService) TopSites(ctx context.Context, params url.Values) (json.RawMessage, error) {
	return getRaw(ctx, s.http, "/sites/top", params)
}

func (s *SiteService) TopApps(ctx context.Context) (json.RawMessage, error) {
	return getRaw(ctx, s.http, "/apps/top", nil)
}

func (s *SiteService) AppCategories(ctx context.Context) (json.RawMessage, error) {
	return getRaw(ctx, s.http, "/apps/categories", nil)
}
