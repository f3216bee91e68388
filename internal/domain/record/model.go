package record

import (
	"time"
)

// Record is a stored secret. Content is ciphertext produced on the sender's
// device and is never interpreted by the server.
type Record struct {
	ID        string             `json:"id"`
	Content   string             `json:"content"`
	Type      RecType            `json:"type"`
	MimeType  *string            `json:"mimeType,omitempty"`
	ExpireIn  ExpirationSettings `json:"expireIn"`
	CreatedAt time.Time          `json:"createdAt"`
	ExpiresAt time.Time          `json:"expiresAt"`
}

// IsExpired reports whether the record has outlived its expiration policy at now.
func (r *Record) IsExpired(now time.Time) bool {
	return r.ExpireIn.IsExpired(r.CreatedAt, now)
}
