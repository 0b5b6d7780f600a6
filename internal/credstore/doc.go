// Package credstore provides durable key/value persistence for the session
// credential and the serialized user profile.
//
// The store is a deliberately small capability: two logical string keys,
// synchronous reads and writes, absence reported as a boolean rather than an
// error. It is injected into the session manager and the request pipeline so
// tests can substitute the in-memory implementation for the file-backed one.
package credstore
