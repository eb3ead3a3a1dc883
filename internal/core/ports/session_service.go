package ports

// SessionService signs and verifies the stateless session tokens issued at
// login and checked by the authentication guard.
type SessionService interface {
	// Issue signs a token embedding email as the identity claim plus any
	// caller-supplied extra claims, expiring a fixed interval from issuance.
	// The caller is responsible for verifying the identity externally first.
	Issue(email string, extra map[string]any) (string, error)
	// Verify returns the embedded identity claim, or domain.ErrUnauthenticated
	// when the token is missing, malformed, tampered, or expired. It never
	// queries the store.
	Verify(token string) (string, error)
}
