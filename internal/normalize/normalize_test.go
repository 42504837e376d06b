package normalize

import (
	"testing"

	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/model"
)

func TestNormalizeCode_KeepsLeadingZeros(t *testing.T) {
	if got := NormalizeCode("  01 "); got != "01" {
		t.Errorf("NormalizeCode = %q, want %q", got, "01")
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"smith", "SMITH"},
		{"  mary   ann ", "MARY ANN"},
		{"o*brien~", "OBRIEN"},
		{"   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeName(tt.in); got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"25", "25.00", false},
		{"25.5", "25.50", false},
		{"0", "0.00", false},
		{" 1234.567 ", "1234.57", false},
		{"-5", "", true},
		{"abc", "", true},
		{"", "", true},
		{"NaN", "", true},
		{"1.005", "1.01", false},
		{"0.004", "0.00", false},
		{".75", "0.75", false},
		{"5.", "5.00", false},
		{"+3", "3.00", false},
		{"0007.1", "7.10", false},
		{"9999999999.99", "9999999999.99", false},
		{"9999999999.995", "", true},
		{"10000000000", "", true},
		{"999999999999999999", "", true},
		{"12345678901234567.89", "", true},
		{"-0", "", true},
		{"1e3", "", true},
		{".", "", true},
		{"1.2.3", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeAmount(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %q", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeAmount(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeAmount(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseDate_Formats(t *testing.T) {
	for _, in := range []string{"19800215", "1980-02-15", "02/15/1980", "Feb 15, 1980"} {
		d := ParseDate(in)
		if d == nil {
			t.Fatalf("ParseDate(%q) returned nil", in)
		}
		if got := X12Date(*d); got != "19800215" {
			t.Errorf("X12Date(ParseDate(%q)) = %q", in, got)
		}
	}
	if ParseDate("not a date") != nil {
		t.Error("expected nil for garbage input")
	}
}

func TestInquiry(t *testing.T) {
	got, err := Inquiry(model.InquiryRequest{
		LastName:        " smith ",
		FirstName:       "john",
		MemberID:        " W123*456 ",
		DateOfBirth:     "1980-02-15",
		ServiceTypeCode: " 30 ",
	})
	if err != nil {
		t.Fatalf("Inquiry: %v", err)
	}
	want := model.InquiryRequest{
		LastName:        "SMITH",
		FirstName:       "JOHN",
		MemberID:        "W123456",
		DateOfBirth:     "19800215",
		ServiceTypeCode: "30",
	}
	if got != want {
		t.Errorf("Inquiry = %+v, want %+v", got, want)
	}
}

func TestInquiry_BadDOB(t *testing.T) {
	if _, err := Inquiry(model.InquiryRequest{LastName: "A", DateOfBirth: "yesterday"}); err == nil {
		t.Fatal("expected error for unparseable date of birth")
	}
}
