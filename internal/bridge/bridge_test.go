package bridge

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/config"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/model"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/x12"
)

const sample271 = "ISA*00*          *00*          *ZZ*PAYER          *ZZ*SUBMITTER      *240309*1430*^*00501*000000007*0*P*:~\n" +
	"GS*HB*PAYER*SUBMITTER*20240309*1430*7*X*005010X279A1~\n" +
	"ST*271*0001*005010X279A1~\n" +
	"NM1*IL*1*SMITH*JOHN****MI*W123~\n" +
	"AAA*N**75*C~\n" +
	"EB*6**30~\n" +
	"SE*5*0001~\n" +
	"ST*271*0002*005010X279A1~\n" +
	"NM1*IL*1*DOE*JANE****MI*X99~\n" +
	"EB*1**30****25~\n" +
	"SE*4*0002~\n" +
	"GE*2*7~\n" +
	"IEA*1*000000007~\n"

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func decodeConfig(t *testing.T, input, out string, workers int) *config.Config {
	t.Helper()
	cfg := &config.Config{FilePath: input, OutPath: out, Workers: workers}
	cfg.ApplyDefaults()
	if err := cfg.ValidateDecode(); err != nil {
		t.Fatalf("ValidateDecode: %v", err)
	}
	return cfg
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	return rows
}

func TestRun_CSV(t *testing.T) {
	input := writeInput(t, "in.271", sample271)
	out := filepath.Join(t.TempDir(), "report.csv")

	summary, err := Run(context.Background(), nil, zerolog.Nop(), decodeConfig(t, input, out, 1))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Records != 2 || summary.Transactions != 2 || summary.NotVerified != 1 || summary.RowsExported != 2 {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if summary.FileSHA256 == "" || summary.BatchID == "" {
		t.Errorf("summary missing identifiers: %+v", summary)
	}

	rows := readCSV(t, out)
	if len(rows) != 3 {
		t.Fatalf("got %d csv lines, want 3", len(rows))
	}
	if strings.Join(rows[0], "|") != strings.Join(model.ReportColumns(), "|") {
		t.Errorf("header = %v", rows[0])
	}
	want := []string{"SMITH", "JOHN", "Not Verified", "Subscriber/Insured Not Found", "Inactive", "0.00", "Health Benefit Plan Coverage"}
	got := []string{rows[1][0], rows[1][1], rows[1][3], rows[1][4], rows[1][5], rows[1][6], rows[1][7]}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("row 1 = %v, want %v", got, want)
	}
	if rows[2][0] != "DOE" || rows[2][3] != "Verified" || rows[2][6] != "25.00" {
		t.Errorf("row 2 = %v", rows[2])
	}
}

func TestRun_ParallelParquetMatchesSequentialCSV(t *testing.T) {
	var b strings.Builder
	for i := range 50 {
		b.WriteString("ST*271*0001~NM1*IL*1*MEMBER")
		b.WriteString(strings.Repeat("X", i%5))
		b.WriteString("~EB*1**30~SE*4*0001~")
	}
	input := writeInput(t, "big.271", b.String())
	dir := t.TempDir()

	csvOut := filepath.Join(dir, "seq.csv")
	if _, err := Run(context.Background(), nil, zerolog.Nop(), decodeConfig(t, input, csvOut, 1)); err != nil {
		t.Fatalf("sequential Run: %v", err)
	}
	pqOut := filepath.Join(dir, "par.parquet")
	summary, err := Run(context.Background(), nil, zerolog.Nop(), decodeConfig(t, input, pqOut, 4))
	if err != nil {
		t.Fatalf("parallel Run: %v", err)
	}
	if summary.Records != 50 {
		t.Fatalf("records = %d, want 50", summary.Records)
	}

	var buf bytes.Buffer
	n, err := ParquetToCSV(pqOut, &buf)
	if err != nil {
		t.Fatalf("ParquetToCSV: %v", err)
	}
	if n != 50 {
		t.Errorf("rows = %d, want 50", n)
	}
	seq, err := os.ReadFile(csvOut)
	if err != nil {
		t.Fatal(err)
	}
	if buf.String() != string(seq) {
		t.Errorf("parallel parquet report differs from sequential csv report")
	}
}

func TestRun_MalformedSegmentsTolerated(t *testing.T) {
	input := writeInput(t, "bad.271", "ST*271*0001~NM1*IL*1*SMITH~*junk~EB*1**30~SE*4*0001~")
	out := filepath.Join(t.TempDir(), "report.csv")

	summary, err := Run(context.Background(), nil, zerolog.Nop(), decodeConfig(t, input, out, 1))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.MalformedSegments != 1 || summary.Records != 1 {
		t.Errorf("unexpected summary: %+v", summary)
	}
}

func TestRun_Errors(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.csv")

	empty := writeInput(t, "empty.271", "\n~~\n")
	_, err := Run(context.Background(), nil, zerolog.Nop(), decodeConfig(t, empty, out, 1))
	var pe *PipelineError
	if !errors.As(err, &pe) || pe.Phase != PhaseTokenize {
		t.Errorf("empty input: expected tokenize PipelineError, got %v", err)
	}

	input := writeInput(t, "in.271", sample271)
	cfg := decodeConfig(t, input, out, 1)
	cfg.Store = true
	_, err = Run(context.Background(), nil, zerolog.Nop(), cfg)
	if !errors.As(err, &pe) || pe.Phase != PhaseStore {
		t.Errorf("store without pool: expected store PipelineError, got %v", err)
	}

	cfg = decodeConfig(t, input, filepath.Join(t.TempDir(), "missing", "report.csv"), 1)
	_, err = Run(context.Background(), nil, zerolog.Nop(), cfg)
	if !errors.As(err, &pe) || pe.Phase != PhaseExport {
		t.Errorf("bad output path: expected export PipelineError, got %v", err)
	}
}

func TestPreflight_Delimiters(t *testing.T) {
	custom := x12.Delimiters{Segment: "'", Element: "|", Repetition: "!", Component: ">"}
	b, err := x12.NewBuilder(x12.WithBuilderDelimiters(custom))
	if err != nil {
		t.Fatal(err)
	}
	inq, err := b.Build(model.InquiryRequest{LastName: "SMITH", MemberID: "W1", ServiceTypeCode: "30"})
	if err != nil {
		t.Fatal(err)
	}
	path := writeInput(t, "in.270", inq.Text)

	pf, err := Preflight(zerolog.Nop(), path, nil)
	if err != nil {
		t.Fatalf("Preflight: %v", err)
	}
	if !pf.Detected || pf.Delimiters != custom {
		t.Errorf("delimiters = %+v detected=%v", pf.Delimiters, pf.Detected)
	}
	if pf.Transactions != 1 || pf.Terminated != 1 || len(pf.Segments) != 9 {
		t.Errorf("transactions=%d terminated=%d segments=%d", pf.Transactions, pf.Terminated, len(pf.Segments))
	}

	// Configured delimiters win over the header.
	pf, err = Preflight(zerolog.Nop(), path, &x12.DefaultDelimiters)
	if err != nil {
		t.Fatalf("Preflight: %v", err)
	}
	if pf.Detected || len(pf.Segments) != 1 {
		t.Errorf("expected one unsplit segment with default delimiters, got %d", len(pf.Segments))
	}
}

func TestLoadTable(t *testing.T) {
	csvPath := writeInput(t, "desc.csv",
		"Inquiry Status Code,Inquiry Details,Status Code,Status Description,Service Type Code,Service Type Description\n"+
			"75,From CSV,1,Active (CSV),30,Coverage (CSV)\n")
	cfg := &config.Config{
		DescriptorCSV: csvPath,
		DescriptorOverrides: map[string]map[string]string{
			"eligibility_status": {"1": "Active (override)"},
		},
	}
	table, err := LoadTable(cfg)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	checks := []struct {
		kind model.DescriptorKind
		code string
		want string
	}{
		{model.InquiryStatus, "75", "From CSV"},
		{model.EligibilityStatus, "1", "Active (override)"},
		{model.ServiceType, "30", "Coverage (CSV)"},
		{model.InquiryStatus, "72", "Invalid/Missing Subscriber/Insured ID"},
	}
	for _, c := range checks {
		if got := table.Resolve(c.kind, c.code); got != c.want {
			t.Errorf("Resolve(%s, %s) = %q, want %q", c.kind, c.code, got, c.want)
		}
	}
}

func TestGenerate(t *testing.T) {
	b, err := x12.NewBuilder(x12.WithFirstControlNumber(10), x12.WithBuilderClock(func() time.Time {
		return time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)
	}))
	if err != nil {
		t.Fatal(err)
	}
	reqs := []model.InquiryRequest{
		{LastName: "smith", FirstName: "john", MemberID: "W1", DateOfBirth: "1980-01-15", ServiceTypeCode: "30"},
		{LastName: "", MemberID: "W2", ServiceTypeCode: "30"},
		{LastName: "doe", MemberID: "W3", DateOfBirth: "not a date", ServiceTypeCode: "30"},
		{LastName: "roe", MemberID: "W4", ServiceTypeCode: " 1 "},
	}

	var recorded []uint64
	record := func(_ context.Context, inq *x12.Inquiry, req model.InquiryRequest) error {
		recorded = append(recorded, inq.ControlNumber)
		return nil
	}
	res, err := Generate(context.Background(), zerolog.Nop(), b, reqs, record)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(res.Inquiries) != 2 || res.Rejected != 2 {
		t.Fatalf("inquiries=%d rejected=%d", len(res.Inquiries), res.Rejected)
	}
	if len(recorded) != 2 || recorded[0] != 10 || recorded[1] != 11 {
		t.Errorf("recorded control numbers = %v, want [10 11]", recorded)
	}
	if !strings.Contains(res.Inquiries[0].Text, "NM1*IL*1*SMITH*JOHN****MI*W1~DMG*D8*19800115~EQ*30~") {
		t.Errorf("unexpected text: %s", res.Inquiries[0].Text)
	}
	if !strings.Contains(res.Inquiries[1].Text, "EQ*1~") {
		t.Errorf("service type not trimmed: %s", res.Inquiries[1].Text)
	}

	var buf bytes.Buffer
	if err := WriteInquiries(&buf, res.Inquiries); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 2 || strings.Count(buf.String(), "ISA*") != 2 {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestGenerate_StopsOnExhaustionAndRecordFailure(t *testing.T) {
	req := model.InquiryRequest{LastName: "SMITH", MemberID: "W1", ServiceTypeCode: "30"}

	b, _ := x12.NewBuilder(x12.WithFirstControlNumber(999999999))
	res, err := Generate(context.Background(), zerolog.Nop(), b, []model.InquiryRequest{req, req}, nil)
	if !errors.Is(err, x12.ErrControlNumberExhausted) {
		t.Fatalf("expected exhaustion, got %v", err)
	}
	if len(res.Inquiries) != 1 {
		t.Errorf("inquiries = %d, want 1", len(res.Inquiries))
	}

	b, _ = x12.NewBuilder()
	boom := errors.New("db down")
	_, err = Generate(context.Background(), zerolog.Nop(), b, []model.InquiryRequest{req}, func(context.Context, *x12.Inquiry, model.InquiryRequest) error {
		return boom
	})
	var pe *PipelineError
	if !errors.As(err, &pe) || pe.Phase != PhaseStore || !errors.Is(err, boom) {
		t.Errorf("expected store PipelineError wrapping boom, got %v", err)
	}
}

func TestLoadInquiries(t *testing.T) {
	path := writeInput(t, "inquiries.yaml", `inquiries:
  - last_name: Smith
    first_name: John
    member_id: W1
    date_of_birth: "1980-01-15"
    service_type: "30"
  - last_name: Doe
    member_id: W2
    service_type: "1"
`)
	reqs, err := LoadInquiries(path)
	if err != nil {
		t.Fatalf("LoadInquiries: %v", err)
	}
	if len(reqs) != 2 || reqs[0].DateOfBirth != "1980-01-15" || reqs[1].ServiceTypeCode != "1" {
		t.Errorf("unexpected inquiries: %+v", reqs)
	}

	if _, err := LoadInquiries(writeInput(t, "empty.yaml", "inquiries: []\n")); err == nil {
		t.Error("expected error for empty list")
	}
}
