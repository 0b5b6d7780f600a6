package api

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/netpanel/netpanel-go/internal/transport"
)

// Client bundles the per-resource services over one HTTP client.
type Client struct {
	http *transport.Client

	Auth         *AuthService
	Users        *UsersService
	ISPs         *ISPService
	Licenses     *LicenseService
	Distributors *DistributorService
	Plans        *PlanService
	Invoices     *InvoiceService
	Telemetry    *TelemetryService
	Logs         *LogService
	Settings     *SettingsService
	Dashboard    *DashboardService
	Sites        *SiteService
}

// New creates the API client over the given transport client.
func New(http *transport.Client) *Client {
	c := &Client{http: http}
	c.Auth = &AuthService{http: http}
	c.Users = &UsersService{http: http}
	c.ISPs = &ISPService{http: http}
	c.Licenses = &LicenseService{http: http}
	c.Distributors = &DistributorService{http: http}
	c.Plans = &PlanService{http: http}
	c.Invoices = &InvoiceService{http: http}
	c.Telemetry = &TelemetryService{http: http}
	c.Logs = &LogService{http: http}
	c.Settings = &SettingsService{http: http}
	c.Dashboard = &DashboardService{http: http}
	c.Sites = &SiteService{http: http}
	return c
}

// The raw helpers issue one call and hand back the body unmodified.

func getRaw(ctx context.Context, hc *transport.Client, path string, query url.Values) (json.RawMessage, error) {
	resp, err := hc.Get(ctx, path, query)
	if err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := transport.ParseResponse(resp, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func postRaw(ctx context.Context, hc *transport.Client, path string, body any) (json.RawMessage, error) {
	resp, err := hc.Post(ctx, path, body)
	if err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := transport.ParseResponse(resp, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func putRaw(ctx context.Context, hc *transport.Client, path string, query url.Values, body any) (json.RawMessage, error) {
	resp, err := hc.PutQuery(ctx, path, query, body)
	if err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := transport.ParseResponse(resp, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func deleteRaw(ctx context.Context, hc *transport.Client, path string) (json.RawMessage, error) {
	resp, err := hc.Delete(ctx, path)
	if err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := transport.ParseResponse(resp, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
