package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/model"
	embedsql "github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/sql"
)

// LastControlNumber returns the highest control number recorded in
// eligibility.inquiries, or 0 when none was issued yet.
func LastControlNumber(ctx context.Context, pool *pgxpool.Pool) (uint64, error) {
	var n int64
	if err := pool.QueryRow(ctx, embedsql.LastControlNumber).Scan(&n); err != nil {
		return 0, fmt.Errorf("last control number: %w", err)
	}
	return uint64(n), nil
}

// RecordInquiry stores an issued control number. A control number can be
// recorded once; reuse fails on the primary key.
func RecordInquiry(ctx context.Context, pool *pgxpool.Pool, controlNumber uint64, req model.InquiryRequest, createdAt time.Time) error {
	_, err := pool.Exec(ctx, embedsql.RecordInquiry,
		int64(controlNumber),
		req.LastName,
		req.FirstName,
		req.MemberID,
		req.ServiceTypeCode,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("record inquiry %d: %w", controlNumber, err)
	}
	return nil
}
