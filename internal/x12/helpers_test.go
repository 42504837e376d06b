package x12

import (
	"testing"
	"time"

	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/model"
)

func assertEqual[V comparable](t *testing.T, val V, expected V) {
	t.Helper()
	if val != expected {
		t.Errorf("expected:\n%#v\n\ngot:\n%#v", expected, val)
	}
}

func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

var fixedTime = time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

// mustTokenize splits raw with the default delimiters and fails on
// malformed segments.
func mustTokenize(t *testing.T, raw string) []Segment {
	t.Helper()
	segs, err := Tokenize(raw)
	assertNoError(t, err)
	return segs
}

func sampleRequest() model.InquiryRequest {
	return model.InquiryRequest{
		LastName:        "SMITH",
		FirstName:       "JOHN",
		MemberID:        "W123456789",
		DateOfBirth:     "19800115",
		ServiceTypeCode: "30",
	}
}

// response271 is a two-transaction 271 interchange.
const response271 = "ISA*00*          *00*          *ZZ*PAYER          *ZZ*SUBMITTER      *240309*1430*^*00501*000000007*0*P*:~\n" +
	"GS*HB*PAYER*SUBMITTER*20240309*1430*7*X*005010X279A1~\n" +
	"ST*271*0001*005010X279A1~\n" +
	"BHT*0022*11*000000007*20240309*1430~\n" +
	"NM1*PR*2*ACME HEALTH*****PI*12345~\n" +
	"NM1*IL*1*SMITH*JOHN****MI*W123456789~\n" +
	"EB*1**30**GOLD*****~\n" +
	"EB***30****25~\n" +
	"SE*6*0001~\n" +
	"ST*271*0002*005010X279A1~\n" +
	"BHT*0022*11*000000008*20240309*1430~\n" +
	"NM1*IL*1*DOE*JANE****MI*X99~\n" +
	"AAA*N**72*C~\n" +
	"SE*4*0002~\n" +
	"GE*2*7~\n" +
	"IEA*1*000000007~\n"
