package db_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/db"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/model"
)

const (
	testPort     = 15433
	testDB       = "eligtest"
	testUser     = "postgres"
	testPassword = "postgres"
)

var testDSN string

// TestMain starts an embedded Postgres when ELIGBRIDGE_PG_TESTS=1; the
// database tests skip otherwise.
func TestMain(m *testing.M) {
	if os.Getenv("ELIGBRIDGE_PG_TESTS") != "1" {
		os.Exit(m.Run())
	}

	testDSN = fmt.Sprintf("postgresql://%s:%s@localhost:%d/%s?sslmode=disable",
		testUser, testPassword, testPort, testDB)

	pg := embeddedpostgres.NewDatabase(
		embeddedpostgres.DefaultConfig().
			Port(uint32(testPort)).
			Database(testDB).
			Username(testUser).
			Password(testPassword).
			Version(embeddedpostgres.V16).
			StartTimeout(30 * time.Second),
	)
	if err := pg.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start embedded postgres: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := pg.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop embedded postgres: %v\n", err)
	}
	os.Exit(code)
}

// setupDB connects, drops the schema and applies migrations.
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testDSN == "" {
		t.Skip("set ELIGBRIDGE_PG_TESTS=1 to run database tests")
	}
	ctx := context.Background()

	pool, err := db.NewPool(ctx, testDSN)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, "DROP SCHEMA IF EXISTS eligibility CASCADE"); err != nil {
		t.Fatalf("drop schema: %v", err)
	}
	if err := db.ApplyMigrations(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	return pool
}

func sampleRecords() []model.EligibilityRecord {
	at := time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)
	return []model.EligibilityRecord{
		{
			TransactionControlNumber: "0001",
			LastName:                 "SMITH",
			FirstName:                "JOHN",
			MemberID:                 "W123",
			Outcome:                  model.NotVerified,
			RejectCode:               "75",
			RejectDetail:             "Subscriber/Insured Not Found",
			EligibilityCode:          "6",
			EligibilityStatus:        "Inactive",
			ServiceTypeCode:          "30",
			ServiceType:              "Health Benefit Plan Coverage",
			PatientResponsibility:    "0.00",
			InquiryTime:              at,
		},
		{
			TransactionControlNumber: "0002",
			LastName:                 "DOE",
			MemberID:                 "X99",
			Outcome:                  model.Verified,
			RejectCode:               "UNKNOWN",
			RejectDetail:             "Validated",
			EligibilityCode:          "1",
			EligibilityStatus:        "Active Coverage",
			ServiceTypeCode:          "30",
			ServiceType:              "Health Benefit Plan Coverage",
			PatientResponsibility:    "25.50",
			InquiryTime:              at,
		},
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	pool := setupDB(t)
	if err := db.ApplyMigrations(context.Background(), pool, zerolog.Nop()); err != nil {
		t.Fatalf("second migration run: %v", err)
	}

	var n int
	if err := pool.QueryRow(context.Background(),
		"SELECT count(*) FROM eligibility.schema_migrations").Scan(&n); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if n != 1 {
		t.Errorf("schema_migrations rows = %d, want 1", n)
	}
}

func TestStoreRecords(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()

	batchID, already, err := db.RegisterBatch(ctx, pool, uuid.New(), "/tmp/in.271", "abc123", false)
	if err != nil {
		t.Fatalf("RegisterBatch: %v", err)
	}
	if already {
		t.Fatal("new file reported as already loaded")
	}

	n, err := db.StoreRecords(ctx, pool, batchID, sampleRecords())
	if err != nil {
		t.Fatalf("StoreRecords: %v", err)
	}
	if n != 2 {
		t.Fatalf("stored %d rows, want 2", n)
	}

	var (
		last     string
		verified bool
		amount   string
	)
	err = pool.QueryRow(ctx,
		`SELECT last_name, verified, patient_responsibility::text
		 FROM eligibility.responses WHERE batch_id = $1 AND sequence = 2`, batchID,
	).Scan(&last, &verified, &amount)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if last != "DOE" || !verified || amount != "25.50" {
		t.Errorf("row 2 = %q verified=%v amount=%q", last, verified, amount)
	}

	var status string
	var count int
	if err := pool.QueryRow(ctx,
		`SELECT status, record_count FROM eligibility.batches WHERE batch_id = $1`, batchID,
	).Scan(&status, &count); err != nil {
		t.Fatalf("query batch: %v", err)
	}
	if status != db.StatusStored || count != 2 {
		t.Errorf("batch status=%q count=%d", status, count)
	}

	// Same file again: skipped without force, replaced with force.
	id2, already, err := db.RegisterBatch(ctx, pool, uuid.New(), "/tmp/in.271", "abc123", false)
	if err != nil || !already || id2 != batchID {
		t.Fatalf("re-register: id=%v already=%v err=%v", id2, already, err)
	}
	id3, already, err := db.RegisterBatch(ctx, pool, uuid.New(), "/tmp/in.271", "abc123", true)
	if err != nil || already || id3 != batchID {
		t.Fatalf("forced re-register: id=%v already=%v err=%v", id3, already, err)
	}
	if _, err := db.StoreRecords(ctx, pool, batchID, sampleRecords()[:1]); err != nil {
		t.Fatalf("restore: %v", err)
	}
	var rows int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM eligibility.responses WHERE batch_id = $1`, batchID).Scan(&rows); err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 1 {
		t.Errorf("rows after forced reload = %d, want 1", rows)
	}
}

func TestControlNumbers(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()

	last, err := db.LastControlNumber(ctx, pool)
	if err != nil {
		t.Fatalf("LastControlNumber: %v", err)
	}
	if last != 0 {
		t.Fatalf("last = %d, want 0", last)
	}

	req := model.InquiryRequest{LastName: "SMITH", MemberID: "W123", ServiceTypeCode: "30"}
	for _, n := range []uint64{1, 2, 7} {
		if err := db.RecordInquiry(ctx, pool, n, req, time.Now()); err != nil {
			t.Fatalf("RecordInquiry(%d): %v", n, err)
		}
	}
	if last, _ = db.LastControlNumber(ctx, pool); last != 7 {
		t.Errorf("last = %d, want 7", last)
	}
	if err := db.RecordInquiry(ctx, pool, 7, req, time.Now()); err == nil {
		t.Error("expected duplicate control number to fail")
	}
}
