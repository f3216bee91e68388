package record

import (
	"fmt"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

type ExpirationUnit string

const (
	ExpirationUnitMinutes ExpirationUnit = "minutes"
	ExpirationUnitHours   ExpirationUnit = "hours"
)

func (ExpirationUnit) Schema(huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type: "string",
		Enum: []any{
			string(ExpirationUnitMinutes),
			string(ExpirationUnitHours),
		},
		Description: "Unit of the expiration value",
		Examples:    []any{ExpirationUnitMinutes},
	}
}

// Validate rejects units other than minutes and hours.
func (u ExpirationUnit) Validate() error {
	switch u {
	case ExpirationUnitMinutes, ExpirationUnitHours:
		return nil
	}
	return fmt.Errorf("%w: unknown unit %q", ErrInvalidExpiration, u)
}

func (u ExpirationUnit) String() string {
	return string(u)
}

func (u ExpirationUnit) duration() time.Duration {
	switch u {
	case ExpirationUnitHours:
		return time.Hour
	case ExpirationUnitMinutes:
		return time.Minute
	default:
		return 0
	}
}

// ExpirationSettings describes how long a record may live after creation.
// It is attached to a record once and never changed afterwards.
type ExpirationSettings struct {
	Value int            `json:"value" minimum:"1" doc:"How many units the record lives"`
	Unit  ExpirationUnit `json:"unit" doc:"minutes or hours"`
}

func (e ExpirationSettings) Validate() error {
	if e.Value <= 0 {
		return fmt.Errorf("%w: value must be positive, got %d", ErrInvalidExpiration, e.Value)
	}
	return e.Unit.Validate()
}

// Duration returns the lifetime as a time.Duration. Invalid settings yield 0.
func (e ExpirationSettings) Duration() time.Duration {
	if e.Value <= 0 {
		return 0
	}
	return time.Duration(e.Value) * e.Unit.duration()
}

// ExpiresAt is the first instant at which a record created at createdAt is expired.
func (e ExpirationSettings) ExpiresAt(createdAt time.Time) time.Time {
	return createdAt.Add(e.Duration())
}

// IsExpired reports whether now >= createdAt + expireIn.
func (e ExpirationSettings) IsExpired(createdAt, now time.Time) bool {
	return !now.Before(e.ExpiresAt(createdAt))
}

func (e ExpirationSettings) String() string {
	return fmt.Sprintf("%d %s", e.Value, e.Unit)
}
