package token

import "errors"

// Verification failures. Every failure is terminal for the token.
var (
	// ErrInvalidSignature covers tampered, undecodable and wrongly signed tokens.
	ErrInvalidSignature = errors.New("token: invalid signature")
	// ErrExpired means the expiry instant has passed.
	ErrExpired = errors.New("token: expired")
	// ErrMalformedClaims means the signature is valid but a required claim
	// is missing or unacceptable.
	ErrMalformedClaims = errors.New("token: malformed claims")
)
