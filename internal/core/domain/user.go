package domain

import "encoding/json"

// Role identifies a tenant role on the NetPanel console.
type Role string

// Tenant roles. RoleGuest is the fallback for an unset or unknown role,
// never a value the server issues.
const (
	RoleAdmin       Role = "admin"
	RoleDistributor Role = "distributor"
	RoleGuest       Role = "guest"
)

// UserProfile is the server-owned description of the logged-in user.
//
// The profile travels with the session token: the two are persisted and
// cleared together, never independently. Extra points the server may add to
// the payload are preserved verbatim so a round trip through the credential
// store does not lose fields this client does not know about.
type UserProfile struct {
	ID    int64  `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  Role   `json:"role"`

	// Extra holds server-defined fields outside the known set.
	Extra map[string]json.RawMessage `json:"-"`
}

// knownProfileFields are the keys unmarshalled into typed fields.
var knownProfileFields = map[string]bool{
	"id":    true,
	"name":  true,
	"email": true,
	"role":  true,
}

// UnmarshalJSON decodes the known fields and keeps the remainder in Extra.
func (u *UserProfile) UnmarshalJSON(data []byte) error {
	type profile UserProfile
	var p profile
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k := range raw {
		if knownProfileFields[k] {
			delete(raw, k)
		}
	}
	if len(raw) > 0 {
		p.Extra = raw
	}

	*u = UserProfile(p)
	return nil
}

// MarshalJSON re-emits the typed fields merged with Extra.
func (u UserProfile) MarshalJSON() ([]byte, error) {
	type profile UserProfile
	base, err := json.Marshal(profile(u))
	if err != nil {
		return nil, err
	}

	if len(u.Extra) == 0 {
		return base, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range u.Extra {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// EffectiveRole returns the profile role, or RoleGuest when unset.
func (u *UserProfile) EffectiveRole() Role {
	if u == nil || u.Role == "" {
		return RoleGuest
	}
	return u.Role
}

// IsAdmin reports whether the profile carries the administrator role.
func (u *UserProfile) IsAdmin() bool {
	return u.EffectiveRole() == RoleAdmin
}

// IsDistributor reports whether the profile carries the distributor role.
func (u *UserProfile) IsDistributor() bool {
	return u.EffectiveRole() == RoleDistributor
}

// Clone returns a deep copy of the profile.
func (u *UserProfile) Clone() *UserProfile {
	if u == nil {
		return nil
	}
	c := *u
	if u.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(u.Extra))
		for k, v := range u.Extra {
			c.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return &c
}
