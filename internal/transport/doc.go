// Package transport implements the authorized request pipeline for the
// NetPanel API.
//
// Pipeline is request/response middleware around a base http.RoundTripper:
// outbound requests get the bearer credential read from the credential store,
// inbound 401 responses clear the store and raise the session-invalidated
// hook while the original response still reaches the caller. Client is the
// fixed-origin JSON HTTP client every resource call is routed through.
package transport
