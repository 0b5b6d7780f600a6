package credstore

// Well-known keys. The token is stored raw; the user profile is stored as
// JSON. The two are always written and removed as a pair by the session
// layer, never independently.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Store is the credential persistence capability.
//
// Implementations must make writes durable before returning (the
// process-restart survival contract) and must treat removal of an absent key
// as a no-op, so concurrent clears degrade gracefully.
type Store interface {
	// Get returns the value for key, or ("", false) when absent.
	Get(key string) (string, bool)

	// Set durably writes key to value.
	Set(key, value string) error

	// Remove durably deletes key. Removing an absent key is a no-op.
	Remove(key string) error
}
