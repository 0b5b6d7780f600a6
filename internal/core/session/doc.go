// Package session implements the client session lifecycle for the NetPanel
// console.
//
// Manager is the single owner of the in-memory session aggregate (token,
// user profile, loading flag, last login error) and keeps it consistent with
// the injected credential store. It is constructed once at process start and
// passed by handle; there is no ambient global session.
package session
