package property

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/raigadbazaar/marketplace/constant"
	"github.com/raigadbazaar/marketplace/model"
)

type SQL struct {
	conn *sqlx.DB
}

type PropertyRepository interface {
	Create(ctx context.Context, req *model.PropertyEntity) (*model.PropertyEntity, error)
	GetByID(ctx context.Context, id uint64) (*model.PropertyEntity, error)
	List(ctx context.Context, filter *model.PropertyFilter) ([]model.PropertyEntity, error)
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.PropertyEntity, error)
	UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uint64, status constant.PropertyStatus, lockedBy *uint64, lockedAt *time.Time) error
}

func NewPropertyRepository(conn *sqlx.DB) PropertyRepository {
	return &SQL{conn: conn}
}

const (
	insertPropertyQuery = `INSERT INTO property
	(title, description, price, location, size_sqft, images, owner_id, owner_name, owner_phone, status, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())`

	getPropertyBase = `SELECT id, title, description, price, location, size_sqft, images,
	owner_id, owner_name, owner_phone, status, locked_by, locked_at, created_at, updated_at
	FROM property`
)

func (s *SQL) Create(ctx context.Context, data *model.PropertyEntity) (*model.PropertyEntity, error) {
	result, err := s.conn.ExecContext(ctx, insertPropertyQuery,
		data.Title, data.Description, data.Price, data.Location, data.SizeSqft, data.Images,
		data.OwnerID, data.OwnerName, data.OwnerPhone, data.Status)
	if err != nil {
		return nil, err
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	data.ID = uint64(lastID)
	return data, nil
}

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.PropertyEntity, error) {
	var entity model.PropertyEntity
	query := getPropertyBase + " WHERE id = ?"
	if err := s.conn.QueryRowxContext(ctx, query, id).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

// List returns properties matching the filter ordered by creation (id) so
// repeated reads over the same snapshot are deterministic.
func (s *SQL) List(ctx context.Context, filter *model.PropertyFilter) ([]model.PropertyEntity, error) {
	query := getPropertyBase + " WHERE true"
	args := make([]any, 0, 3)

	if filter != nil && filter.Query != "" {
		q := "%" + strings.ToLower(filter.Query) + "%"
		query += " AND (LOWER(title) LIKE ? OR LOWER(location) LIKE ?)"
		args = append(args, q, q)
	}
	if filter != nil && filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	query += " ORDER BY id"

	rows, err := s.conn.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.PropertyEntity, 0)
	for rows.Next() {
		var it model.PropertyEntity
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetForUpdateTx reads a property row with a row lock so concurrent status
// transitions on the same property are serialized by the database.
func (s *SQL) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.PropertyEntity, error) {
	var entity model.PropertyEntity
	query := getPropertyBase + " WHERE id = ? FOR UPDATE"
	if err := tx.QueryRowxContext(ctx, query, id).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

// UpdateStatusTx writes status and lock fields together; callers must hold
// the row lock from GetForUpdateTx in the same transaction.
func (s *SQL) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uint64, status constant.PropertyStatus, lockedBy *uint64, lockedAt *time.Time) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE property SET status = ?, locked_by = ?, locked_at = ?, updated_at = NOW() WHERE id = ?",
		status, lockedBy, lockedAt, id)
	return err
}
