package history

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/utilitybox/internal/client/models"
	"github.com/dmitrijs2005/utilitybox/internal/dbx"
)

// createdLayout is fixed-width so that created_at sorts lexically.
const createdLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Add(ctx context.Context, op *models.Operation) error {
	created := op.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	query := `INSERT INTO operations (id, operation, status, affected, target, created_at)
			values (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		op.Id, op.Operation, op.Status, op.Affected, op.Target,
		created.UTC().Format(createdLayout))
	if err != nil {
		return fmt.Errorf("failed to insert operation: %w", err)
	}
	return nil
}

// Prune deletes all but the newest keep operations and returns how many rows
// went. keep <= 0 deletes nothing.
func (r *SQLiteRepository) Prune(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}

	query := `delete from operations where rowid not in (
			select rowid from operations order by created_at desc, rowid desc limit ?)`
	res, err := r.db.ExecContext(ctx, query, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune operations: %w", err)
	}
	return res.RowsAffected()
}

func (r *SQLiteRepository) List(ctx context.Context, limit int) ([]models.Operation, error) {
	if limit <= 0 {
		limit = -1
	}

	query := `select id, operation, status, affected, target, created_at
			from operations order by created_at desc, rowid desc limit ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select operations: %w", err)
	}
	defer rows.Close()

	var result []models.Operation
	for rows.Next() {
		var (
			item    models.Operation
			created string
		)
		if err := rows.Scan(&item.Id, &item.Operation, &item.Status, &item.Affected, &item.Target, &created); err != nil {
			return nil, err
		}
		if item.CreatedAt, err = time.Parse(createdLayout, created); err != nil {
			return nil, fmt.Errorf("bad created_at %q: %w", created, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
