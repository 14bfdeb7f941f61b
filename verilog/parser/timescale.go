package parser

import (
	"fmt"
	"maps"
	"math"
	"strconv"
	"strings"
)

// Timescale is a power-of-ten time value between 100s and 1fs. The zero
// value is absent.
type Timescale struct {
	set bool
	exp int
}

const (
	minTimeExp = -15
	maxTimeExp = 2
)

// NewTimescale validates a value in seconds. Only 1, 10 and 100 of a
// unit from s down to fs are legal.
func NewTimescale(seconds float64) (Timescale, bool) {
	if seconds <= 0 || math.IsInf(seconds, 0) || math.IsNaN(seconds) {
		return Timescale{}, false
	}
	exp := math.Round(math.Log10(seconds))
	if math.Abs(math.Pow(10, exp)-seconds) > seconds*1e-9 {
		return Timescale{}, false
	}
	if exp < minTimeExp || exp > maxTimeExp {
		return Timescale{}, false
	}
	return Timescale{set: true, exp: int(exp)}, true
}

func (t Timescale) IsNone() bool { return !t.set }

// Exponent is the power of ten in seconds.
func (t Timescale) Exponent() int { return t.exp }

var unitNames = []string{"s", "ms", "us", "ns", "ps", "fs"}

func (t Timescale) String() string {
	if !t.set {
		return "NONE"
	}
	// exp 2 is 100s, exp -13 is 100fs
	idx := (-t.exp + 2) / 3
	if t.exp > 0 {
		idx = 0
	}
	mult := int(math.Pow(10, float64(t.exp+3*idx)))
	return fmt.Sprintf("%d%s", mult, unitNames[idx])
}

var timeDivisors = map[string]float64{
	"s":  1,
	"ms": 1e3,
	"us": 1e6,
	"ns": 1e9,
	"ps": 1e12,
	"fs": 1e15,
}

// ParseTimeNumber converts a scanned time literal such as "1_0.5ns" to
// seconds. The scanner only produces known suffixes, so an unknown suffix
// is an internal error.
func ParseTimeNumber(text string) (float64, error) {
	var digits strings.Builder
	i := 0
	for ; i < len(text); i++ {
		ch := text[i]
		if !isDigit(ch) && ch != '_' && ch != '.' {
			break
		}
		if ch != '_' {
			digits.WriteByte(ch)
		}
	}
	suffix := text[i:]
	divisor, ok := timeDivisors[suffix]
	if !ok {
		return 0, fmt.Errorf("unknown time suffix %q", suffix)
	}
	d, err := strconv.ParseFloat(digits.String(), 64)
	if err != nil {
		return 0, fmt.Errorf("time literal %q: %w", text, err)
	}
	return d / divisor, nil
}

// parseTimeValue is the user-input variant of ParseTimeNumber used for
// `timescale arguments.
func parseTimeValue(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	i := 0
	for i < len(text) && (isDigit(text[i]) || text[i] == '.' || text[i] == '_') {
		i++
	}
	if i == 0 {
		return 0, false
	}
	unit := strings.TrimSpace(text[i:])
	if _, ok := timeDivisors[unit]; !ok {
		return 0, false
	}
	v, err := ParseTimeNumber(text[:i] + unit)
	return v, err == nil
}

func parseIntValue(text string) float64 {
	text = strings.ReplaceAll(text, "_", "")
	tick := strings.IndexByte(text, '\'')
	if tick < 0 {
		v, _ := strconv.ParseFloat(text, 64)
		return v
	}
	rest := strings.TrimLeft(text[tick+1:], "sS")
	if rest == "" {
		return 0
	}
	base := 10
	switch rest[0] {
	case 'b', 'B':
		base = 2
	case 'o', 'O':
		base = 8
	case 'd', 'D':
		base = 10
	case 'h', 'H':
		base = 16
	default:
		// unbased fill: '0 '1 'x 'z
		if rest[0] == '1' {
			return 1
		}
		return 0
	}
	v, err := strconv.ParseUint(rest[1:], base, 64)
	if err != nil {
		return 0
	}
	return float64(v)
}

func parseFloatValue(text string) float64 {
	v, _ := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64)
	return v
}

// TimescaleMod applies timeunit/timeprecision values, as given by a
// module header or a timeunit declaration. An empty module applies to the
// compilation unit. Illegal values are reported and treated as absent.
func (s *Session) TimescaleMod(module string, unitSet bool, unitVal float64, precSet bool, precVal float64) {
	at := s.locs.Snapshot()
	var unit, prec Timescale
	if unitSet {
		var ok bool
		if unit, ok = NewTimescale(unitVal); !ok {
			log.Debugf("timeunit value = %g", unitVal)
			s.report.ReportError(at, "timeunit illegal value")
		}
	}
	if precSet {
		var ok bool
		if prec, ok = NewTimescale(precVal); !ok {
			log.Debugf("timeprecision value = %g", precVal)
			s.report.ReportError(at, "timeprecision illegal value")
		}
	}
	if !unit.IsNone() {
		if module != "" {
			s.moduleUnits[module] = unit
		} else {
			s.unitTime = unit
		}
	}
	s.mergePrecision(prec)
}

func (s *Session) mergePrecision(prec Timescale) {
	if prec.IsNone() {
		return
	}
	if s.timePrecision.IsNone() || prec.exp < s.timePrecision.exp {
		s.timePrecision = prec
	}
}

// HandleTimescale applies a `timescale <unit>/<precision> directive.
func (s *Session) HandleTimescale(text string) {
	at := s.locs.Snapshot()
	unitText, precText, found := strings.Cut(text, "/")
	unitVal, unitOK := parseTimeValue(unitText)
	precVal, precOK := parseTimeValue(precText)
	if !unitOK || (found && !precOK) {
		s.report.ReportError(at, fmt.Sprintf("`timescale timeunit syntax error: '%s'", text))
		return
	}
	unit, ok := NewTimescale(unitVal)
	if !ok {
		s.report.ReportError(at, "`timescale timeunit illegal value")
		return
	}
	var prec Timescale
	if found {
		if prec, ok = NewTimescale(precVal); !ok {
			s.report.ReportError(at, "`timescale timeprecision illegal value")
			return
		}
		if prec.exp > unit.exp {
			s.report.ReportError(at, "`timescale timeunit '"+unit.String()+"' must be greater than or equal to timeprecision '"+prec.String()+"'")
			return
		}
	}
	s.timeLastUnit = unit
	s.mergePrecision(prec)
}

// TimeUnit is the time unit in effect for module, falling back to the
// last `timescale and then to the compilation unit's timeunit.
func (s *Session) TimeUnit(module string) Timescale {
	if u, ok := s.moduleUnits[module]; ok && module != "" {
		return u
	}
	if !s.timeLastUnit.IsNone() {
		return s.timeLastUnit
	}
	return s.unitTime
}

// TimePrecision is the finest precision seen so far.
func (s *Session) TimePrecision() Timescale {
	return s.timePrecision
}

// ModuleTimeUnits returns the timeunit declared inside each design unit.
func (s *Session) ModuleTimeUnits() map[string]Timescale {
	units := make(map[string]Timescale, len(s.moduleUnits))
	maps.Copy(units, s.moduleUnits)
	return units
}
