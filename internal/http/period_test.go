package http

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"kakeibo/internal/core"
)

// Mid-March of a leap year keeps the month arithmetic honest.
var testNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func TestResolvePeriod(t *testing.T) {
	cases := []struct {
		name      string
		wantStart string
		wantEnd   string
	}{
		{PeriodThisMonth, "2024-03-01", "2024-03-15"},
		{PeriodLastMonth, "2024-02-01", "2024-02-29"},
		{PeriodThisYear, "2024-01-01", "2024-03-15"},
		{PeriodLastYear, "2023-01-01", "2023-12-31"},
	}
	for _, tc := range cases {
		rng, err := ResolvePeriod(tc.name, testNow)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if rng.Start.String() != tc.wantStart || rng.End.String() != tc.wantEnd {
			t.Fatalf("%s: got %s, want %s..%s", tc.name, rng, tc.wantStart, tc.wantEnd)
		}
	}
}

func TestResolvePeriodRollingWindows(t *testing.T) {
	rng, err := ResolvePeriod(PeriodLast3Months, testNow)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if rng.End.String() != "2024-03-15" {
		t.Fatalf("expected window ending today, got %s", rng.End)
	}
	if got := testNow.Sub(rng.Start.Time).Hours() / 24; got != 90 {
		t.Fatalf("expected 90-day window, got %.0f days", got)
	}

	rng, err = ResolvePeriod(PeriodLast6Months, testNow)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if got := testNow.Sub(rng.Start.Time).Hours() / 24; got != 180 {
		t.Fatalf("expected 180-day window, got %.0f days", got)
	}
}

func TestResolvePeriodUnknown(t *testing.T) {
	if _, err := ResolvePeriod("fortnight", testNow); !errors.Is(err, errUnknownPeriod) {
		t.Fatalf("expected errUnknownPeriod, got %v", err)
	}
}

func TestParseRange(t *testing.T) {
	cases := []struct {
		name      string
		query     url.Values
		wantStart string
		wantEnd   string
		wantErr   bool
	}{
		{
			name:      "explicit closed range",
			query:     url.Values{"start": {"2024-02-01"}, "end": {"2024-02-28"}},
			wantStart: "2024-02-01",
			wantEnd:   "2024-02-28",
		},
		{
			name:      "start only",
			query:     url.Values{"start": {"2024-02-01"}},
			wantStart: "2024-02-01",
		},
		{
			name:    "end only",
			query:   url.Values{"end": {"2024-02-28"}},
			wantEnd: "2024-02-28",
		},
		{
			name:  "no filters means unbounded",
			query: url.Values{},
		},
		{
			name:      "named period",
			query:     url.Values{"period": {PeriodThisMonth}},
			wantStart: "2024-03-01",
			wantEnd:   "2024-03-15",
		},
		{
			name:      "explicit dates win over period",
			query:     url.Values{"start": {"2024-01-01"}, "period": {PeriodLastYear}},
			wantStart: "2024-01-01",
		},
		{
			name:    "malformed start",
			query:   url.Values{"start": {"01/02/2024"}},
			wantErr: true,
		},
		{
			name:    "inverted range",
			query:   url.Values{"start": {"2024-03-01"}, "end": {"2024-01-01"}},
			wantErr: true,
		},
		{
			name:    "unknown period",
			query:   url.Values{"period": {"yesterday"}},
			wantErr: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rng, err := parseRange(tc.query, testNow)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			assertBound(t, "start", rng.Start, tc.wantStart)
			assertBound(t, "end", rng.End, tc.wantEnd)
		})
	}
}

func assertBound(t *testing.T, name string, got core.Date, want string) {
	t.Helper()
	if want == "" {
		if !got.IsZero() {
			t.Fatalf("expected open %s bound, got %s", name, got)
		}
		return
	}
	if got.String() != want {
		t.Fatalf("%s: got %s, want %s", name, got, want)
	}
}
