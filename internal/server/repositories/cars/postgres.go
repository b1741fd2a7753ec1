// Package cars provides the PostgreSQL-backed repository for garage
// entries, their photos, tags and mod links.
package cars

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkomarov/garagehub/internal/common"
	"github.com/dkomarov/garagehub/internal/dbx"
	"github.com/dkomarov/garagehub/internal/server/models"
)

// PostgresRepository implements car storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert persists the car's scalar facts and returns the assigned id.
// Owned collections are written separately via the Replace methods.
func (r *PostgresRepository) Insert(ctx context.Context, car *models.Car) (int64, error) {
	query := `
		INSERT INTO cars (owner_id, name, make, model, year, trim, color, engine,
			transmission, drivetrain, base_cost, horsepower, torque, category,
			region, description, total_mods, total_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id;
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		car.OwnerID, car.Name, car.Make, car.Model, car.Year, car.Trim, car.Color,
		car.Engine, car.Transmission, car.Drivetrain, car.BaseCost, car.Horsepower,
		car.Torque, car.Category, car.Region, car.Description, car.TotalMods, car.TotalCost,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

// Update replaces the scalar facts of the owner's car. A row for another
// owner is never touched; zero rows affected maps to common.ErrNotFound.
func (r *PostgresRepository) Update(ctx context.Context, car *models.Car) error {
	query := `
		UPDATE cars SET name=$1, make=$2, model=$3, year=$4, trim=$5, color=$6,
			engine=$7, transmission=$8, drivetrain=$9, base_cost=$10, horsepower=$11,
			torque=$12, category=$13, region=$14, description=$15, total_mods=$16,
			total_cost=$17, updated_at=now()
		WHERE id=$18 AND owner_id=$19;
	`
	res, err := r.db.ExecContext(ctx, query,
		car.Name, car.Make, car.Model, car.Year, car.Trim, car.Color,
		car.Engine, car.Transmission, car.Drivetrain, car.BaseCost, car.Horsepower,
		car.Torque, car.Category, car.Region, car.Description, car.TotalMods,
		car.TotalCost, car.ID, car.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireOneRow(res)
}

// Delete removes the owner's car; associated rows go via ON DELETE CASCADE.
func (r *PostgresRepository) Delete(ctx context.Context, ownerID string, carID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cars WHERE id=$1 AND owner_id=$2;`, carID, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireOneRow(res)
}

const carColumns = `id, owner_id, name, make, model, year, trim, color, engine,
		transmission, drivetrain, base_cost, horsepower, torque, category, region,
		description, total_mods, total_cost, created_at, updated_at`

// SelectByOwner returns the owner's cars ordered by creation, without their
// owned collections.
func (r *PostgresRepository) SelectByOwner(ctx context.Context, ownerID string) ([]*models.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE owner_id=$1 ORDER BY id;`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select cars: %w", err)
	}
	defer rows.Close()

	var result []*models.Car
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, car)
	}
	return result, rows.Err()
}

// SelectForOwner returns one car if it belongs to ownerID, else
// common.ErrNotFound.
func (r *PostgresRepository) SelectForOwner(ctx context.Context, ownerID string, carID int64) (*models.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id=$1 AND owner_id=$2;`
	row := r.db.QueryRowContext(ctx, query, carID, ownerID)
	car, err := scanCar(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return car, nil
}

// ReplacePhotos swaps the car's photo list wholesale, keeping commit order
// in the position column.
func (r *PostgresRepository) ReplacePhotos(ctx context.Context, carID int64, photos []models.Photo) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM car_photos WHERE car_id=$1;`, carID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	for i, p := range photos {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO car_photos (car_id, storage_key, is_main, position) VALUES ($1, $2, $3, $4);`,
			carID, p.Key, p.IsMain, i)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}

// ReplaceTags swaps the car's tag set wholesale.
func (r *PostgresRepository) ReplaceTags(ctx context.Context, carID int64, tags []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM car_tags WHERE car_id=$1;`, carID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	for _, t := range tags {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO car_tags (car_id, tag) VALUES ($1, $2);`, carID, t)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}

// ReplaceModLinks swaps the car's mod links wholesale.
func (r *PostgresRepository) ReplaceModLinks(ctx context.Context, carID int64, modIDs []int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM car_mods WHERE car_id=$1;`, carID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	for _, id := range modIDs {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO car_mods (car_id, mod_id) VALUES ($1, $2);`, carID, id)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}

// SelectPhotos returns the car's photos in commit order.
func (r *PostgresRepository) SelectPhotos(ctx context.Context, carID int64) ([]models.Photo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, car_id, storage_key, is_main, position FROM car_photos WHERE car_id=$1 ORDER BY position;`, carID)
	if err != nil {
		return nil, fmt.Errorf("failed to select photos: %w", err)
	}
	defer rows.Close()

	var result []models.Photo
	for rows.Next() {
		var p models.Photo
		if err := rows.Scan(&p.ID, &p.CarID, &p.Key, &p.IsMain, &p.Position); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// SelectTags returns the car's tags in lexical order.
func (r *PostgresRepository) SelectTags(ctx context.Context, carID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT tag FROM car_tags WHERE car_id=$1 ORDER BY tag;`, carID)
	if err != nil {
		return nil, fmt.Errorf("failed to select tags: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCar(row rowScanner) (*models.Car, error) {
	var c models.Car
	err := row.Scan(
		&c.ID, &c.OwnerID, &c.Name, &c.Make, &c.Model, &c.Year, &c.Trim, &c.Color,
		&c.Engine, &c.Transmission, &c.Drivetrain, &c.BaseCost, &c.Horsepower,
		&c.Torque, &c.Category, &c.Region, &c.Description, &c.TotalMods,
		&c.TotalCost, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
