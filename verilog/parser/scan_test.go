package parser

import "testing"

func queueFor(src string) *Queue {
	return New([]byte(src)).Queue()
}

func TestBracketScan(t *testing.T) {
	tests := []struct {
		input string
		depth int
		want  int
	}{
		{"[ a ] [ b ] (", 0, 6},
		{"[ a (", 0, 0},
		{"[ [ a ] ] x", 0, 5},
		{"[ 3 : 0 ] [ 1 ] y", 0, 8},
		{"x [ a ]", 0, 0},
		{"x [ a ] z", 1, 4},
		{"", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := BracketScan(queueFor(tt.input), tt.depth); got != tt.want {
				t.Errorf("BracketScan(%q, %d) = %d, want %d", tt.input, tt.depth, got, tt.want)
			}
		})
	}
}

func TestParamGroupScan(t *testing.T) {
	tests := []struct {
		input   string
		forCell bool
		want    int
	}{
		{"# ( a , ( b ) ) ::", false, 8},
		{"# ( a ) ::", true, 4},
		{"# 5 x", true, 2},
		{"# 1.5 x", true, 2},
		{"# 10ns x", true, 2},
		{"# w x", true, 2},
		{"# 5 x", false, 0},
		{"# ; x", true, 0},
		{"x # ( a )", false, 0},
		{"# ( a", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParamGroupScan(queueFor(tt.input), 0, tt.forCell); got != tt.want {
				t.Errorf("ParamGroupScan(%q, %v) = %d, want %d", tt.input, tt.forCell, got, tt.want)
			}
		})
	}
}

func TestTypeRefGroupScan(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"( T ) == type ( U )", 3},
		{"( a [ ( 1 ) ] ) x", 8},
		{"( T", 0},
		{"T )", 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := TypeRefGroupScan(queueFor(tt.input), 0); got != tt.want {
				t.Errorf("TypeRefGroupScan(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestCellScan(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"bar (", 1},
		{"bar ;", 0},
		{"bar [ 3 : 0 ] (", 6},
		{"# ( 8 ) bar [ 3 : 0 ] (", 10},
		{"# 8 bar (", 3},
		{"# ( 8 ) ;", 0},
		{"bar [ 3 : 0 (", 0},
		{"( bar )", 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := CellScan(queueFor(tt.input), 0); got != tt.want {
				t.Errorf("CellScan(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestScannersDoNotConsume(t *testing.T) {
	q := queueFor("# ( a ) bar [ 1 ] ( x )")
	CellScan(q, 0)
	BracketScan(q, 5)
	TypeRefGroupScan(q, 8)
	if got := q.ConsumeFront().Kind; got != TokenHash {
		t.Errorf("front Kind = %v, want #", got)
	}
}
