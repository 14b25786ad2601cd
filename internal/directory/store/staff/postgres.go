package staff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"amlengine/internal/directory/models"
	id "amlengine/pkg/domain"
	"amlengine/pkg/platform/sentinel"
	txcontext "amlengine/pkg/platform/tx"
)

// PostgresStore reads staff records.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const staffColumns = `id, user_id, name, role, businesses, is_active`

func (s *PostgresStore) Create(ctx context.Context, st *models.Staff) error {
	_, err := txcontext.QuerierFrom(ctx, s.db).ExecContext(ctx, `
		INSERT INTO staff (id, user_id, name, role, businesses, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.UUID(st.ID), uuid.UUID(st.UserID), st.Name, string(st.Role), pq.Array(st.Businesses), st.IsActive,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create staff: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByUserID(ctx context.Context, userID id.UserID) (*models.Staff, error) {
	row := txcontext.QuerierFrom(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+staffColumns+` FROM staff WHERE user_id = $1`, uuid.UUID(userID))
	st, err := scanStaff(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find staff by user: %w", err)
	}
	return st, nil
}

func (s *PostgresStore) FindByIDs(ctx context.Context, ids []id.StaffID) (map[id.StaffID]*models.Staff, error) {
	out := make(map[id.StaffID]*models.Staff, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	keys := make([]string, len(ids))
	for i, v := range ids {
		keys[i] = v.String()
	}
	rows, err := txcontext.QuerierFrom(ctx, s.db).QueryContext(ctx,
		`SELECT `+staffColumns+` FROM staff WHERE id = ANY($1::uuid[])`, pq.Array(keys))
	if err != nil {
		return nil, fmt.Errorf("find staff: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		st, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("scan staff: %w", err)
		}
		out[st.ID] = st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate staff: %w", err)
	}
	return out, nil
}

func scanStaff(row interface{ Scan(dest ...any) error }) (*models.Staff, error) {
	var (
		st         models.Staff
		staffID    uuid.UUID
		userID     uuid.UUID
		role       string
		businesses pq.StringArray
	)
	if err := row.Scan(&staffID, &userID, &st.Name, &role, &businesses, &st.IsActive); err != nil {
		return nil, err
	}
	st.ID = id.StaffID(staffID)
	st.UserID = id.UserID(userID)
	st.Role = models.StaffRole(role)
	st.Businesses = []string(businesses)
	return &st, nil
}
