package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventCategories(t *testing.T) {
	assert.Equal(t, CategoryCompliance, EventAssessmentCreated.Category())
	assert.Equal(t, CategoryCompliance, EventAssessmentRejected.Category())
	assert.Equal(t, CategoryCompliance, EventSanctionsScreened.Category())
	assert.Equal(t, CategorySecurity, EventAccessDenied.Category())
	assert.Equal(t, CategoryOperations, EventRiskScoreComputed.Category())
	assert.Equal(t, CategoryOperations, AuditEvent("unknown").Category())
}
