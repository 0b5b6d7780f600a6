// Package api provides the typed call-builders for the NetPanel backend.
//
// AuthService is the auth collaborator consumed by the session manager. The
// remaining services are mechanical endpoint mappings with no logic of their
// own: each call is routed through the request pipeline and the server
// payload is returned unmodified as raw JSON.
package api
