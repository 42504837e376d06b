package db

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/model"
	embedsql "github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/sql"
)

// Batch statuses.
const (
	StatusPending = "pending"
	StatusStored  = "stored"
	StatusFailed  = "failed"
)

// RegisterBatch records a source file under batchID. When a file with the
// same SHA-256 was registered before, the existing batch id is returned;
// alreadyLoaded is set if that batch was stored and force is off.
func RegisterBatch(ctx context.Context, pool *pgxpool.Pool, batchID uuid.UUID, filePath, sha string, force bool) (uuid.UUID, bool, error) {
	var id uuid.UUID
	err := pool.QueryRow(ctx, embedsql.RegisterBatch, batchID, filepath.Base(filePath), sha).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, false, fmt.Errorf("register batch: %w", err)
	}

	// ON CONFLICT DO NOTHING returned no rows: the file was seen before.
	var status string
	if err := pool.QueryRow(ctx, embedsql.LookupBatch, sha).Scan(&id, &status); err != nil {
		return uuid.Nil, false, fmt.Errorf("lookup existing batch: %w", err)
	}
	if status == StatusStored && !force {
		return id, true, nil
	}
	if err := UpdateBatchStatus(ctx, pool, id, StatusPending, 0); err != nil {
		return uuid.Nil, false, err
	}
	return id, false, nil
}

// UpdateBatchStatus sets a batch's status and record count.
func UpdateBatchStatus(ctx context.Context, pool *pgxpool.Pool, batchID uuid.UUID, status string, records int64) error {
	if _, err := pool.Exec(ctx, embedsql.UpdateBatchStatus, batchID, status, records); err != nil {
		return fmt.Errorf("update batch status: %w", err)
	}
	return nil
}

// StoreRecords COPYs records into eligibility.responses under batchID,
// replacing any rows a previous attempt left for the batch, and marks the
// batch stored. Everything happens in one transaction.
func StoreRecords(ctx context.Context, pool *pgxpool.Pool, batchID uuid.UUID, records []model.EligibilityRecord) (int64, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, embedsql.DeleteBatchResponses, batchID); err != nil {
		return 0, fmt.Errorf("clear batch: %w", err)
	}

	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{"eligibility", "responses"},
		model.StoreColumns(),
		NewRecordSource(batchID, records),
	)
	if err != nil {
		return 0, fmt.Errorf("copy responses: %w", err)
	}

	if _, err := tx.Exec(ctx, embedsql.UpdateBatchStatus, batchID, StatusStored, n); err != nil {
		return 0, fmt.Errorf("update batch status: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}
