package types

import "github.com/google/uuid"

// TokenClaims is the identity carried by a verified token.
type TokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
}
