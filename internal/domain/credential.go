package domain

import "time"

// CredentialKind identifies the scope of a bearer credential.
type CredentialKind string

// Credential kinds. A user credential, when present, always takes
// precedence over the app credential for authorization.
const (
	// AppToken is the application-level credential obtained with the shared secret.
	AppToken CredentialKind = "app"

	// UserToken is the user-level credential obtained through a login flow.
	UserToken CredentialKind = "user"
)

// Credential is a bearer token presented in an Authorization header.
// At most one live value exists per kind; credentials are replaced
// wholesale, never mutated in place.
type Credential struct {
	// Kind is the credential scope (app or user).
	Kind CredentialKind `json:"kind"`

	// Value is the opaque bearer token.
	Value string `json:"value"`

	// AcquiredAt is when the credential was obtained.
	AcquiredAt time.Time `json:"acquiredAt"`
}

// Empty reports whether the credential carries no usable token value.
func (c Credential) Empty() bool {
	return c.Value == ""
}
