// Package history persists a journal of executed operations.
//
// The SQLite implementation writes to the operations table created by the
// embedded goose migrations (internal/client/migrations) and reads back the
// most recent rows first.
//
// Typical Usage
//
//	repo := history.NewSQLiteRepository(db)
//	_ = repo.Add(ctx, &models.Operation{Id: id, Operation: "Sort", Status: 200})
//	last, _ := repo.List(ctx, 20)
package history
