package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "amlengine/pkg/domain-errors"
)

// IDs must be valid, non-empty, non-nil UUIDs at every trust boundary.
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseClientID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseClientID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseAssessmentID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		parsed, err := ParseClientID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, ClientID(validUUID), parsed)
		assert.Equal(t, validUUID.String(), parsed.String())
	})
}

func TestTypeDistinction(t *testing.T) {
	clientID := ClientID(uuid.New())
	staffID := StaffID(uuid.New())

	// var _ ClientID = staffID would not compile.
	assert.NotEqual(t, uuid.UUID(clientID), uuid.UUID(staffID))
	assert.True(t, ClientID{}.IsNil())
	assert.False(t, clientID.IsNil())
}

func TestParseID_SecurityInvariants(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"SQL injection attempt", "'; DROP TABLE client_aml_assessment;--", true},
		{"Path traversal", "../../../etc/passwd", true},
		{"Null byte injection", "550e8400\x00-e29b-41d4-a716-446655440000", true},
		{"Oversized input", strings.Repeat("a", 1000), true},
		{"Unicode zero-width space", "550e8400\u200B-e29b-41d4-a716-446655440000", true},
		{"Empty string", "", true},
		{"Nil UUID", uuid.Nil.String(), true},
		{"Valid lowercase", "550e8400-e29b-41d4-a716-446655440000", false},
		{"Valid uppercase", "550E8400-E29B-41D4-A716-446655440000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseUserID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIDsMarshalAsUUIDStrings(t *testing.T) {
	raw := "550e8400-e29b-41d4-a716-446655440000"
	clientID, err := ParseClientID(raw)
	require.NoError(t, err)

	out, err := json.Marshal(struct {
		ClientID ClientID `json:"client_id"`
	}{clientID})
	require.NoError(t, err)
	assert.JSONEq(t, `{"client_id":"`+raw+`"}`, string(out))

	var back struct {
		ClientID ClientID `json:"client_id"`
	}
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, clientID, back.ClientID)
}
