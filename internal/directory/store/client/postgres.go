package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"amlengine/internal/directory/models"
	"amlengine/internal/risk"
	id "amlengine/pkg/domain"
	"amlengine/pkg/platform/sentinel"
	txcontext "amlengine/pkg/platform/tx"
)

// PostgresStore reads clients and writes their compliance snapshot.
// Writes join the transaction carried in ctx, if any.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const clientColumns = `id, name, client_type, country, businesses,
	COALESCE(aml_risk_rating, ''), is_pep, requires_enhanced_due_diligence, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, c *models.Client) error {
	_, err := txcontext.QuerierFrom(ctx, s.db).ExecContext(ctx, `
		INSERT INTO clients (id, name, client_type, country, businesses,
			aml_risk_rating, is_pep, requires_enhanced_due_diligence, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10)`,
		uuid.UUID(c.ID), c.Name, string(c.Type), c.Country, pq.Array(c.Businesses),
		string(c.AmlRiskRating), c.IsPEP, c.RequiresEnhancedDueDiligence, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, clientID id.ClientID) (*models.Client, error) {
	row := txcontext.QuerierFrom(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = $1`, uuid.UUID(clientID))
	c, err := scanClient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) FindByIDs(ctx context.Context, ids []id.ClientID) (map[id.ClientID]*models.Client, error) {
	out := make(map[id.ClientID]*models.Client, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := txcontext.QuerierFrom(ctx, s.db).QueryContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = ANY($1::uuid[])`, pq.Array(uuidStrings(ids)))
	if err != nil {
		return nil, fmt.Errorf("find clients: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		out[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ListIDsByBusinesses(ctx context.Context, businesses []string) ([]id.ClientID, error) {
	if len(businesses) == 0 {
		return nil, nil
	}
	rows, err := txcontext.QuerierFrom(ctx, s.db).QueryContext(ctx,
		`SELECT id FROM clients WHERE businesses && $1::text[]`, pq.Array(businesses))
	if err != nil {
		return nil, fmt.Errorf("list clients by business: %w", err)
	}
	defer rows.Close()
	var out []id.ClientID
	for rows.Next() {
		var u uuid.UUID
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scan client id: %w", err)
		}
		out = append(out, id.ClientID(u))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate client ids: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) UpdateComplianceFields(ctx context.Context, clientID id.ClientID, update models.ComplianceUpdate) error {
	res, err := txcontext.QuerierFrom(ctx, s.db).ExecContext(ctx, `
		UPDATE clients
		SET aml_risk_rating = $2, is_pep = $3, requires_enhanced_due_diligence = $4, updated_at = $5
		WHERE id = $1`,
		uuid.UUID(clientID), string(update.RiskRating), update.IsPEP, update.RequiresEDD, update.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update client compliance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update client compliance: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanClient(row scanner) (*models.Client, error) {
	var (
		c          models.Client
		u          uuid.UUID
		clientType string
		rating     string
		businesses pq.StringArray
	)
	if err := row.Scan(&u, &c.Name, &clientType, &c.Country, &businesses,
		&rating, &c.IsPEP, &c.RequiresEnhancedDueDiligence, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.ID = id.ClientID(u)
	c.Type = risk.ClientType(clientType)
	c.AmlRiskRating = risk.Rating(rating)
	c.Businesses = []string(businesses)
	return &c, nil
}

func uuidStrings(ids []id.ClientID) []string {
	out := make([]string, len(ids))
	for i, v := range ids {
		out[i] = v.String()
	}
	return out
}
