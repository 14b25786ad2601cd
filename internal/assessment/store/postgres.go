package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"amlengine/internal/assessment/models"
	"amlengine/internal/risk"
	id "amlengine/pkg/domain"
	"amlengine/pkg/platform/sentinel"
	txcontext "amlengine/pkg/platform/tx"
)

const dateLayout = "2006-01-02"

// PostgresStore persists assessments in aml_assessments. Every statement
// joins the transaction carried in ctx, if any.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const assessmentColumns = `id, client_id, assessed_by, assessment_date,
	client_type_risk, service_risk, geographic_risk, transaction_risk, total_risk_score, risk_rating,
	is_pep, COALESCE(pep_category, ''), COALESCE(pep_position, ''), COALESCE(pep_jurisdiction, ''),
	requires_edd, edd_reasons, edd_completed_at,
	sanctions_screened, sanctions_screened_at, sanctions_match, COALESCE(sanctions_details, ''),
	COALESCE(source_of_funds, ''), COALESCE(source_of_funds_details, ''), COALESCE(source_of_wealth, ''),
	status, approved_by, approved_at, COALESCE(rejection_reason, ''),
	next_review_date, COALESCE(notes, ''), created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, a *models.AmlAssessment) error {
	_, err := txcontext.QuerierFrom(ctx, s.db).ExecContext(ctx, `
		INSERT INTO aml_assessments (id, client_id, assessed_by, assessment_date,
			client_type_risk, service_risk, geographic_risk, transaction_risk, total_risk_score, risk_rating,
			is_pep, pep_category, pep_position, pep_jurisdiction,
			requires_edd, edd_reasons, edd_completed_at,
			sanctions_screened, sanctions_screened_at, sanctions_match, sanctions_details,
			source_of_funds, source_of_funds_details, source_of_wealth,
			status, approved_by, approved_at, rejection_reason,
			next_review_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4,
			$5, $6, $7, $8, $9, $10,
			$11, NULLIF($12, ''), NULLIF($13, ''), NULLIF($14, ''),
			$15, $16, $17,
			$18, $19, $20, NULLIF($21, ''),
			NULLIF($22, ''), NULLIF($23, ''), NULLIF($24, ''),
			$25, $26, $27, NULLIF($28, ''),
			$29::date, NULLIF($30, ''), $31, $32)`,
		uuid.UUID(a.ID), uuid.UUID(a.ClientID), uuid.UUID(a.AssessedBy), a.AssessmentDate,
		a.ClientTypeRisk, a.ServiceRisk, a.GeographicRisk, a.TransactionRisk, a.TotalRiskScore, string(a.RiskRating),
		a.IsPEP, string(a.PEPCategory), a.PEPPosition, a.PEPJurisdiction,
		a.RequiresEDD, pq.Array(nonNil(a.EDDReasons)), a.EDDCompletedAt,
		a.SanctionsScreened, a.SanctionsScreenedAt, a.SanctionsMatch, a.SanctionsDetails,
		string(a.SourceOfFunds), a.SourceOfFundsDetails, a.SourceOfWealth,
		string(a.Status), nullStaff(a.ApprovedBy), a.ApprovedAt, a.RejectionReason,
		a.NextReviewDate.Format(dateLayout), a.Notes, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create assessment: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, assessmentID id.AssessmentID) (*models.AmlAssessment, error) {
	row := txcontext.QuerierFrom(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+assessmentColumns+` FROM aml_assessments WHERE id = $1`, uuid.UUID(assessmentID))
	a, err := scanAssessment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find assessment: %w", err)
	}
	return a, nil
}

func (s *PostgresStore) FindLatestByClient(ctx context.Context, clientID id.ClientID) (*models.AmlAssessment, error) {
	row := txcontext.QuerierFrom(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+assessmentColumns+` FROM aml_assessments
		WHERE client_id = $1
		ORDER BY assessment_date DESC, created_at DESC
		LIMIT 1`, uuid.UUID(clientID))
	a, err := scanAssessment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find latest assessment: %w", err)
	}
	return a, nil
}

func (s *PostgresStore) ListByClient(ctx context.Context, clientID id.ClientID) ([]*models.AmlAssessment, error) {
	return s.query(ctx, "list assessments",
		`SELECT `+assessmentColumns+` FROM aml_assessments
		WHERE client_id = $1
		ORDER BY assessment_date DESC, created_at DESC`, uuid.UUID(clientID))
}

func (s *PostgresStore) ListPending(ctx context.Context, f models.PendingFilter) ([]*models.AmlAssessment, int, error) {
	if len(f.ClientIDs) == 0 {
		return []*models.AmlAssessment{}, 0, nil
	}
	clientIDs := pq.Array(clientIDStrings(f.ClientIDs))
	q := txcontext.QuerierFrom(ctx, s.db)

	var total int
	err := q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM aml_assessments
		WHERE status = 'PENDING' AND client_id = ANY($1::uuid[])
			AND ($2 = '' OR risk_rating = $2)`,
		clientIDs, string(f.Rating)).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count pending assessments: %w", err)
	}

	out, err := s.query(ctx, "list pending assessments",
		`SELECT `+assessmentColumns+` FROM aml_assessments
		WHERE status = 'PENDING' AND client_id = ANY($1::uuid[])
			AND ($2 = '' OR risk_rating = $2)
		ORDER BY assessment_date DESC, created_at DESC
		LIMIT $3 OFFSET $4`,
		clientIDs, string(f.Rating), f.Limit, f.Offset)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *PostgresStore) ListDue(ctx context.Context, f models.DueFilter) ([]*models.AmlAssessment, error) {
	if len(f.ClientIDs) == 0 {
		return []*models.AmlAssessment{}, nil
	}
	return s.query(ctx, "list due assessments",
		`SELECT `+assessmentColumns+` FROM aml_assessments
		WHERE client_id = ANY($1::uuid[])
			AND next_review_date BETWEEN $2::date AND $3::date
		ORDER BY next_review_date ASC, created_at ASC`,
		pq.Array(clientIDStrings(f.ClientIDs)), f.From.Format(dateLayout), f.To.Format(dateLayout))
}

// UpdateDecision writes the workflow columns only. With a non-empty expected
// status the write is conditional; zero rows then means either the row is
// gone or its status moved.
func (s *PostgresStore) UpdateDecision(ctx context.Context, a *models.AmlAssessment, expected models.Status) error {
	q := txcontext.QuerierFrom(ctx, s.db)
	res, err := q.ExecContext(ctx, `
		UPDATE aml_assessments
		SET status = $2, approved_by = $3, approved_at = $4, rejection_reason = NULLIF($5, ''),
			updated_at = $6
		WHERE id = $1 AND ($7 = '' OR status = $7)`,
		uuid.UUID(a.ID), string(a.Status), nullStaff(a.ApprovedBy), a.ApprovedAt, a.RejectionReason,
		a.UpdatedAt, string(expected),
	)
	if err != nil {
		return fmt.Errorf("update assessment decision: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update assessment decision: %w", err)
	}
	if n > 0 {
		return nil
	}
	if expected == "" {
		return sentinel.ErrNotFound
	}
	var exists bool
	if err := q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM aml_assessments WHERE id = $1)`, uuid.UUID(a.ID)).Scan(&exists); err != nil {
		return fmt.Errorf("update assessment decision: %w", err)
	}
	if !exists {
		return sentinel.ErrNotFound
	}
	return sentinel.ErrInvalidState
}

// UpdateScreening writes the sanctions columns only.
func (s *PostgresStore) UpdateScreening(ctx context.Context, a *models.AmlAssessment) error {
	res, err := txcontext.QuerierFrom(ctx, s.db).ExecContext(ctx, `
		UPDATE aml_assessments
		SET sanctions_screened = $2, sanctions_screened_at = $3, sanctions_match = $4,
			sanctions_details = NULLIF($5, ''), updated_at = $6
		WHERE id = $1`,
		uuid.UUID(a.ID), a.SanctionsScreened, a.SanctionsScreenedAt, a.SanctionsMatch,
		a.SanctionsDetails, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update assessment screening: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update assessment screening: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) query(ctx context.Context, op, query string, args ...any) ([]*models.AmlAssessment, error) {
	rows, err := txcontext.QuerierFrom(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]*models.AmlAssessment, 0)
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAssessment(row scanner) (*models.AmlAssessment, error) {
	var (
		a                                          models.AmlAssessment
		assessmentID, clientID, assessedBy         uuid.UUID
		rating, pepCategory, sourceOfFunds, status string
		eddReasons                                 pq.StringArray
		approvedBy                                 uuid.NullUUID
		eddCompletedAt, screenedAt, approvedAt     sql.NullTime
	)
	if err := row.Scan(
		&assessmentID, &clientID, &assessedBy, &a.AssessmentDate,
		&a.ClientTypeRisk, &a.ServiceRisk, &a.GeographicRisk, &a.TransactionRisk, &a.TotalRiskScore, &rating,
		&a.IsPEP, &pepCategory, &a.PEPPosition, &a.PEPJurisdiction,
		&a.RequiresEDD, &eddReasons, &eddCompletedAt,
		&a.SanctionsScreened, &screenedAt, &a.SanctionsMatch, &a.SanctionsDetails,
		&sourceOfFunds, &a.SourceOfFundsDetails, &a.SourceOfWealth,
		&status, &approvedBy, &approvedAt, &a.RejectionReason,
		&a.NextReviewDate, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	a.ID = id.AssessmentID(assessmentID)
	a.ClientID = id.ClientID(clientID)
	a.AssessedBy = id.StaffID(assessedBy)
	a.RiskRating = risk.Rating(rating)
	a.PEPCategory = models.PEPCategory(pepCategory)
	a.SourceOfFunds = models.SourceOfFunds(sourceOfFunds)
	a.Status = models.Status(status)
	a.EDDReasons = nonNil([]string(eddReasons))
	a.EDDCompletedAt = timePtr(eddCompletedAt)
	a.SanctionsScreenedAt = timePtr(screenedAt)
	a.ApprovedAt = timePtr(approvedAt)
	if approvedBy.Valid {
		staffID := id.StaffID(approvedBy.UUID)
		a.ApprovedBy = &staffID
	}
	return &a, nil
}

func nullStaff(s *id.StaffID) uuid.NullUUID {
	if s == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(*s), Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func clientIDStrings(ids []id.ClientID) []string {
	out := make([]string, len(ids))
	for i, v := range ids {
		out[i] = v.String()
	}
	return out
}
