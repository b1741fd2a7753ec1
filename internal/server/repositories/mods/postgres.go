// Package mods provides the PostgreSQL-backed repository for modification
// rows, both the shared catalog and car-owned custom mods.
package mods

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkomarov/garagehub/internal/common"
	"github.com/dkomarov/garagehub/internal/dbx"
	"github.com/dkomarov/garagehub/internal/server/models"
)

// PostgresRepository implements mod storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const modColumns = `id, legacy_id, brand, mod_type, part_number, description, category, cost, link, is_custom`

// SelectCatalog returns the catalog snapshot, optionally narrowed to one
// category. Custom rows never appear in the catalog.
func (r *PostgresRepository) SelectCatalog(ctx context.Context, category string) ([]models.Mod, error) {
	query := `SELECT ` + modColumns + ` FROM mods WHERE NOT is_custom`
	args := []any{}
	if category != "" {
		query += ` AND category=$1`
		args = append(args, category)
	}
	query += ` ORDER BY category, brand, mod_type;`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select mods: %w", err)
	}
	defer rows.Close()
	return scanMods(rows)
}

// SelectByCar returns the mods linked to one car in link order.
func (r *PostgresRepository) SelectByCar(ctx context.Context, carID int64) ([]models.Mod, error) {
	query := `SELECT m.id, m.legacy_id, m.brand, m.mod_type, m.part_number, m.description,
			m.category, m.cost, m.link, m.is_custom
		FROM mods m JOIN car_mods cm ON cm.mod_id = m.id
		WHERE cm.car_id=$1 ORDER BY m.id;`
	rows, err := r.db.QueryContext(ctx, query, carID)
	if err != nil {
		return nil, fmt.Errorf("failed to select car mods: %w", err)
	}
	defer rows.Close()
	return scanMods(rows)
}

// SelectByID returns one mod or common.ErrNotFound.
func (r *PostgresRepository) SelectByID(ctx context.Context, id int64) (*models.Mod, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+modColumns+` FROM mods WHERE id=$1;`, id)
	var m models.Mod
	err := scanMod(row, &m)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// InsertCustom persists a custom mod row and returns the assigned id.
func (r *PostgresRepository) InsertCustom(ctx context.Context, mod *models.Mod) (int64, error) {
	query := `
		INSERT INTO mods (legacy_id, brand, mod_type, part_number, description, category, cost, link, is_custom)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
		RETURNING id;
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		mod.LegacyID, mod.Brand, mod.Type, mod.PartNumber, mod.Description,
		mod.Category, mod.Cost, mod.Link,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

// DeleteOrphanCustom removes custom mods no car links to anymore and
// reports how many rows went away.
func (r *PostgresRepository) DeleteOrphanCustom(ctx context.Context) (int64, error) {
	query := `DELETE FROM mods WHERE is_custom AND NOT EXISTS
		(SELECT 1 FROM car_mods WHERE car_mods.mod_id = mods.id);`
	res, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMod(row rowScanner, m *models.Mod) error {
	return row.Scan(&m.ID, &m.LegacyID, &m.Brand, &m.Type, &m.PartNumber,
		&m.Description, &m.Category, &m.Cost, &m.Link, &m.IsCustom)
}

func scanMods(rows *sql.Rows) ([]models.Mod, error) {
	var result []models.Mod
	for rows.Next() {
		var m models.Mod
		if err := scanMod(rows, &m); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}
