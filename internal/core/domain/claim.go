package domain

import "time"

// Claim is the verified payload of an access token. It is never persisted;
// it references a user by id only.
type Claim struct {
	SubjectID string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
