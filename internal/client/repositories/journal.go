package repositories

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/utilitybox/internal/client/models"
	"github.com/dmitrijs2005/utilitybox/internal/client/repositories/history"
	"github.com/dmitrijs2005/utilitybox/internal/dbx"
)

// Journal is the history.Repository handed to the services. Each Add inserts
// the operation and trims the table to the newest keep rows in a single
// transaction, so a failed trim never leaves an extra row behind.
type Journal struct {
	db   *sql.DB
	keep int
}

// Journal returns a journal over r's database. keep <= 0 disables trimming.
func (r *Repositories) Journal(keep int) *Journal {
	return &Journal{db: r.DB, keep: keep}
}

func (j *Journal) Add(ctx context.Context, op *models.Operation) error {
	return dbx.WithTx(ctx, j.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := history.NewSQLiteRepository(tx)
		if err := repo.Add(ctx, op); err != nil {
			return err
		}
		_, err := repo.Prune(ctx, j.keep)
		return err
	})
}

func (j *Journal) List(ctx context.Context, limit int) ([]models.Operation, error) {
	return history.NewSQLiteRepository(j.db).List(ctx, limit)
}
