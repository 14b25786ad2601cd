package audit

import (
	"context"
	"time"

	id "amlengine/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
type EventCategory string

const (
	// CategoryCompliance covers events with regulatory significance: every
	// assessment, decision and screening. Long retention, fail-closed writes.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers access violations.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine reads and calculations.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	// UserID is the authenticated caller.
	UserID id.UserID
	// ActorID is the caller's staff id when resolved.
	ActorID string
	// Subject is the client the action concerns.
	Subject string
	// ResourceID is the assessment touched, if any.
	ResourceID string
	Action     string
	Decision   string
	Reason     string
	RequestID  string
	ClientIP   string
	UserAgent  string
}

type AuditEvent string

const (
	EventAssessmentCreated  AuditEvent = "aml_assessment_created"
	EventAssessmentApproved AuditEvent = "aml_assessment_approved"
	EventAssessmentRejected AuditEvent = "aml_assessment_rejected"
	EventSanctionsScreened  AuditEvent = "sanctions_screened"
	EventScreeningDegraded  AuditEvent = "sanctions_screening_degraded"
	EventAccessDenied       AuditEvent = "aml_access_denied"
	EventRiskScoreComputed  AuditEvent = "risk_score_calculated"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventAssessmentCreated:  CategoryCompliance,
	EventAssessmentApproved: CategoryCompliance,
	EventAssessmentRejected: CategoryCompliance,
	EventSanctionsScreened:  CategoryCompliance,
	EventScreeningDegraded:  CategorySecurity,
	EventAccessDenied:       CategorySecurity,
	EventRiskScoreComputed:  CategoryOperations,
}

// Category returns the category for the event, defaulting to operations.
func (e AuditEvent) Category() EventCategory {
	if c, ok := eventCategories[e]; ok {
		return c
	}
	return CategoryOperations
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}
