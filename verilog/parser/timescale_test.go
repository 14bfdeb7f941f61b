package parser

import (
	"testing"

	"github.com/dhamidi/svtok/diag"
)

func TestNewTimescale(t *testing.T) {
	tests := []struct {
		seconds float64
		ok      bool
		want    string
	}{
		{1, true, "1s"},
		{100, true, "100s"},
		{1e-3, true, "1ms"},
		{10e-9, true, "10ns"},
		{100e-12, true, "100ps"},
		{1e-15, true, "1fs"},
		{1000, false, "NONE"},
		{1e-16, false, "NONE"},
		{2e-9, false, "NONE"},
		{0, false, "NONE"},
	}
	for _, tt := range tests {
		ts, ok := NewTimescale(tt.seconds)
		if ok != tt.ok {
			t.Errorf("NewTimescale(%g) ok = %v, want %v", tt.seconds, ok, tt.ok)
		}
		if got := ts.String(); got != tt.want {
			t.Errorf("NewTimescale(%g) = %s, want %s", tt.seconds, got, tt.want)
		}
	}
}

func TestParseTimeNumber(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"1s", 1},
		{"10ms", 10e-3},
		{"2.5us", 2.5e-6},
		{"1_000ns", 1e-6},
		{"3ps", 3e-12},
		{"7fs", 7e-15},
	}
	for _, tt := range tests {
		got, err := ParseTimeNumber(tt.text)
		if err != nil {
			t.Errorf("ParseTimeNumber(%q) error: %v", tt.text, err)
			continue
		}
		if diff := got - tt.want; diff > tt.want*1e-9 || diff < -tt.want*1e-9 {
			t.Errorf("ParseTimeNumber(%q) = %g, want %g", tt.text, got, tt.want)
		}
	}

	if _, err := ParseTimeNumber("5xs"); err == nil {
		t.Errorf("ParseTimeNumber(%q) succeeded, want error", "5xs")
	}
}

func TestHandleTimescale(t *testing.T) {
	tests := []struct {
		text string
		unit string
		prec string
		err  string
	}{
		{"1ns/1ps", "1ns", "1ps", ""},
		{"10 us / 100 ns", "10us", "100ns", ""},
		{"1ms", "1ms", "NONE", ""},
		{"1ps/1ns", "NONE", "NONE", "`timescale timeunit '1ps' must be greater than or equal to timeprecision '1ns'"},
		{"3ns/1ps", "NONE", "NONE", "`timescale timeunit illegal value"},
		{"1ns/3ps", "NONE", "NONE", "`timescale timeprecision illegal value"},
		{"fast/1ps", "NONE", "NONE", "`timescale timeunit syntax error: 'fast/1ps'"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			c := diag.NewCollector()
			s := NewSession(WithReporter(c))
			s.HandleTimescale(tt.text)
			if got := s.TimeUnit("").String(); got != tt.unit {
				t.Errorf("TimeUnit = %s, want %s", got, tt.unit)
			}
			if got := s.TimePrecision().String(); got != tt.prec {
				t.Errorf("TimePrecision = %s, want %s", got, tt.prec)
			}
			switch {
			case tt.err == "" && c.ErrorCount() != 0:
				t.Errorf("unexpected errors: %v", c.Diagnostics())
			case tt.err != "" && (c.ErrorCount() != 1 || c.Diagnostics()[0].Message != tt.err):
				t.Errorf("errors = %v, want %q", c.Diagnostics(), tt.err)
			}
		})
	}
}

func TestTimescaleDirectiveInInput(t *testing.T) {
	s := New([]byte("`timescale 1ns/10ps\nmodule m; endmodule\n"))
	rawTokens(s)
	if got := s.TimeUnit("m").String(); got != "1ns" {
		t.Errorf("TimeUnit = %s, want 1ns", got)
	}
	if got := s.TimePrecision().String(); got != "10ps" {
		t.Errorf("TimePrecision = %s, want 10ps", got)
	}
}

func TestTimescaleMod(t *testing.T) {
	c := diag.NewCollector()
	s := NewSession(WithReporter(c))

	s.TimescaleMod("", true, 1e-9, true, 1e-12)
	s.TimescaleMod("fast", true, 1e-12, true, 1e-15)
	s.TimescaleMod("bad", true, 3e-9, true, 5e-12)

	if got := s.TimeUnit("fast").String(); got != "1ps" {
		t.Errorf("TimeUnit(fast) = %s, want 1ps", got)
	}
	if got := s.TimeUnit("other").String(); got != "1ns" {
		t.Errorf("TimeUnit(other) = %s, want 1ns", got)
	}
	if got := s.TimeUnit("bad").String(); got != "1ns" {
		t.Errorf("TimeUnit(bad) = %s, want 1ns", got)
	}
	if got := s.TimePrecision().String(); got != "1fs" {
		t.Errorf("TimePrecision = %s, want 1fs", got)
	}

	var msgs []string
	for _, d := range c.Diagnostics() {
		msgs = append(msgs, d.Message)
	}
	if len(msgs) != 2 || msgs[0] != "timeunit illegal value" || msgs[1] != "timeprecision illegal value" {
		t.Errorf("diagnostics = %q", msgs)
	}
}
