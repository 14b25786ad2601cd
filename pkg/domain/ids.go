// Package domain holds typed identifiers shared across bounded contexts.
//
// Each identifier wraps uuid.UUID so the compiler rejects passing a ClientID
// where a StaffID is expected.
package domain

import (
	"github.com/google/uuid"

	dErrors "amlengine/pkg/domain-errors"
)

type (
	UserID       uuid.UUID
	StaffID      uuid.UUID
	ClientID     uuid.UUID
	AssessmentID uuid.UUID
)

func (id UserID) String() string       { return uuid.UUID(id).String() }
func (id StaffID) String() string      { return uuid.UUID(id).String() }
func (id ClientID) String() string     { return uuid.UUID(id).String() }
func (id AssessmentID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id StaffID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id ClientID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id AssessmentID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// ParseUserID validates an inbound user identifier.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user_id")
	return UserID(u), err
}

// ParseStaffID validates an inbound staff identifier.
func ParseStaffID(s string) (StaffID, error) {
	u, err := parseUUID(s, "staff_id")
	return StaffID(u), err
}

// ParseClientID validates an inbound client identifier.
func ParseClientID(s string) (ClientID, error) {
	u, err := parseUUID(s, "client_id")
	return ClientID(u), err
}

// ParseAssessmentID validates an inbound assessment identifier.
func ParseAssessmentID(s string) (AssessmentID, error) {
	u, err := parseUUID(s, "assessment_id")
	return AssessmentID(u), err
}

func parseUUID(s, field string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" must be a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" must not be nil")
	}
	return u, nil
}

// Text marshaling keeps identifiers as canonical UUID strings in JSON.

func (id UserID) MarshalText() ([]byte, error)       { return uuid.UUID(id).MarshalText() }
func (id StaffID) MarshalText() ([]byte, error)      { return uuid.UUID(id).MarshalText() }
func (id ClientID) MarshalText() ([]byte, error)     { return uuid.UUID(id).MarshalText() }
func (id AssessmentID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *UserID) UnmarshalText(b []byte) error       { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *StaffID) UnmarshalText(b []byte) error      { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *ClientID) UnmarshalText(b []byte) error     { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *AssessmentID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
