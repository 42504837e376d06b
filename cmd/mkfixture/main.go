// mkfixture writes a synthetic multi-transaction 271 response for tests and
// benchmarks. The mix covers verified and rejected subscribers, benefit
// amounts, unmapped codes and, optionally, damaged transactions.
// Usage: go run ./cmd/mkfixture --out testdata/sample.271 --transactions 500
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/descriptor"
	"github.com/mindycorbett93/Realtime-Eligibility-Bridge/internal/x12"
)

var (
	lastNames  = []string{"SMITH", "JOHNSON", "WILLIAMS", "BROWN", "JONES", "GARCIA", "MILLER", "DAVIS", "RODRIGUEZ", "MARTINEZ"}
	firstNames = []string{"JAMES", "MARY", "JOHN", "PATRICIA", "ROBERT", "JENNIFER", "MICHAEL", "LINDA", ""}
	rejects    = []string{"72", "73", "75", "76", "79", "Z9"}
	statuses   = []string{"1", "6", "B", "C", "A", "ZZ9"}
	services   = []string{"30", "1", "33", "35", "47", "88", "98", "AL", "UC", "X99"}
)

func main() {
	out := flag.String("out", "testdata/sample.271", "output path")
	count := flag.Int("transactions", 200, "number of ST/SE transactions")
	seed := flag.Uint64("seed", 1, "random seed")
	damaged := flag.Bool("damaged", false, "include malformed segments and missing SE terminators")
	newlines := flag.Bool("newlines", true, "put each segment on its own line")
	checkOnly := flag.Bool("check", false, "only tokenize --out and print stats, don't write")
	flag.Parse()

	if *checkOnly {
		check(*out)
		return
	}

	rng := rand.New(rand.NewPCG(*seed, *seed))
	segs := build(rng, *count, *damaged)

	text := x12.Format(segs, x12.DefaultDelimiters)
	if *newlines {
		text = strings.ReplaceAll(text, x12.DefaultDelimiters.Segment, x12.DefaultDelimiters.Segment+"\n")
	}
	if *damaged {
		// Bare element runs have no tag and must be skipped by readers.
		text = strings.Replace(text, "SE*", "*DAMAGED*SEGMENT~SE*", 1)
	}

	if err := os.WriteFile(*out, []byte(text), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d transactions (%d segments) to %s\n", *count, len(segs), *out)
}

func build(rng *rand.Rand, count int, damaged bool) []x12.Segment {
	now := time.Now()
	ctrl := fmt.Sprintf("%09d", rng.IntN(999999999)+1)
	group := strings.TrimLeft(ctrl, "0")

	segs := []x12.Segment{
		{"ISA", "00", strings.Repeat(" ", 10), "00", strings.Repeat(" ", 10),
			"ZZ", fmt.Sprintf("%-15s", "PAYER"), "ZZ", fmt.Sprintf("%-15s", "SUBMITTER"),
			now.Format("060102"), now.Format("1504"), "^", "00501", ctrl, "0", "T", ":"},
		{"GS", "HB", "PAYER", "SUBMITTER", now.Format("20060102"), now.Format("1504"), group, "X", "005010X279A1"},
	}

	for i := range count {
		st := fmt.Sprintf("%04d", i+1)
		tx := []x12.Segment{
			{"ST", "271", st, "005010X279A1"},
			{"BHT", "0022", "11", st, now.Format("20060102"), now.Format("1504")},
			{"HL", "1", "", "20", "1"},
			{"NM1", "PR", "2", "ACME HEALTH PLAN", "", "", "", "", "PI", "12345"},
			{"HL", "2", "1", "22", "0"},
			{"NM1", "IL", "1", pick(rng, lastNames), pick(rng, firstNames), "", "", "", "MI", "W" + strconv.Itoa(100000000+rng.IntN(899999999))},
		}
		if rng.IntN(4) == 0 {
			tx = append(tx, x12.Segment{"AAA", "N", "", pick(rng, rejects), "C"})
		} else {
			tx = append(tx, x12.Segment{"DMG", "D8", "19" + strconv.Itoa(50+rng.IntN(50)) + "0101"})
			for range 1 + rng.IntN(3) {
				eb := x12.Segment{"EB", pick(rng, statuses), "IND", pick(rng, services)}
				if rng.IntN(2) == 0 {
					eb = append(eb, "", "", "", fmt.Sprintf("%d.%02d", rng.IntN(500), rng.IntN(100)))
				}
				tx = append(tx, eb)
			}
		}
		if damaged && rng.IntN(20) == 0 {
			segs = append(segs, tx...)
			continue
		}
		tx = append(tx, x12.Segment{"SE", strconv.Itoa(len(tx) + 1), st})
		segs = append(segs, tx...)
	}

	segs = append(segs,
		x12.Segment{"GE", strconv.Itoa(count), group},
		x12.Segment{"IEA", "1", ctrl},
	)
	return segs
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.IntN(len(values))]
}

func check(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read: %v\n", err)
		os.Exit(1)
	}
	d, detected := x12.DetectDelimiters(string(data))
	segs, tokErr := x12.Tokenize(string(data), x12.WithDelimiters(d))

	dec := x12.NewDecoder(descriptor.Defaults())
	dec.Decode(segs)
	dec.Flush()
	stats := dec.Stats()

	fmt.Printf("Delimiters detected: %v\n", detected)
	fmt.Printf("Segments: %d, Records: %d, Not verified: %d, Discarded: %d, Unmapped: %d\n",
		len(segs), dec.Batch().Len(), dec.Batch().NotVerified(), stats.Discarded, stats.Unmapped)
	if tokErr != nil {
		fmt.Printf("Malformed: %v\n", tokErr)
	}
}
