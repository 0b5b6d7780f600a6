// Package domain defines the core domain models for the NetPanel client.
//
// Domain models are pure value objects without any IO dependencies or
// framework coupling: the user profile, tenant roles, and the structured
// error type shared by the session layer, the request pipeline, and the
// resource clients.
package domain
