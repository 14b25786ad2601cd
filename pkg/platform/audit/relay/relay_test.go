package relay

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"amlengine/pkg/platform/audit/store/postgres"
)

func TestRecord(t *testing.T) {
	entry := postgres.OutboxEntry{
		ID:            uuid.New(),
		AggregateType: "client",
		AggregateID:   "2f1e7b5a-2c1d-4b7e-9f3a-1d2c3b4a5e6f",
		EventType:     "aml_assessment_created",
		Payload:       []byte(`{"action":"aml_assessment_created"}`),
		CreatedAt:     time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC),
	}

	rec := Record("aml.audit", entry)

	assert.Equal(t, "aml.audit", rec.Topic)
	assert.Equal(t, []byte(entry.AggregateID), rec.Key)
	assert.Equal(t, entry.Payload, rec.Value)
	assert.Equal(t, entry.CreatedAt, rec.Timestamp)

	headers := map[string]string{}
	for _, h := range rec.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "aml_assessment_created", headers["event_type"])
	assert.Equal(t, "client", headers["aggregate_type"])
	assert.Equal(t, entry.ID.String(), headers["outbox_id"])
}
