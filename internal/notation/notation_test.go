package notation

import (
	"errors"
	"testing"

	"github.com/SeamusWaldron/cubeturn/internal/grid"
	"github.com/SeamusWaldron/cubeturn/internal/rotation"
)

func apply(t *testing.T, g *grid.Grid, seq string) {
	t.Helper()
	turns, err := Turns(seq)
	if err != nil {
		t.Fatal(err)
	}
	c := rotation.New(g, rotation.WithInstant(true))
	for _, turn := range turns {
		if _, err := c.Start(turn); err != nil {
			t.Fatal(err)
		}
	}
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		in   string
		want Move
	}{
		{"R", Move{FaceR, CW}},
		{"U'", Move{FaceU, CCW}},
		{"f2", Move{FaceF, Double}},
		{"M`", Move{FaceM, CCW}},
		{" S ", Move{FaceS, CW}},
	}
	for _, tt := range tests {
		got, err := ParseMove(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseMove(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
	for _, bad := range []string{"", "X", "R3", "Rw"} {
		if _, err := ParseMove(bad); !errors.Is(err, ErrInvalidNotation) {
			t.Errorf("ParseMove(%q) error = %v, want ErrInvalidNotation", bad, err)
		}
	}
}

func TestParseReportsToken(t *testing.T) {
	_, err := Parse("R U Q")
	var se *SyntaxError
	if !errors.As(err, &se) || se.Token != "Q" {
		t.Fatalf("Parse error = %v, want SyntaxError for Q", err)
	}
	if !errors.Is(err, ErrInvalidNotation) {
		t.Error("SyntaxError should unwrap to ErrInvalidNotation")
	}
}

func TestFormatRoundTrip(t *testing.T) {
	const seq = "R U R' U' F2 M E' S"
	moves, err := Parse(seq)
	if err != nil {
		t.Fatal(err)
	}
	if got := Format(moves); got != seq {
		t.Errorf("Format = %q, want %q", got, seq)
	}
}

func TestRightTurnMovesFrontToUp(t *testing.T) {
	g := grid.New()
	apply(t, g, "R")
	// R carries the front-right edge up to the top-right edge.
	home := grid.Position{1, 0, 1}
	id, _ := g.CubieAt(grid.Position{1, 1, 0})
	c, _ := g.Cubie(id)
	if c.Home != home {
		t.Errorf("cubie at (1,1,0) came from %v, want %v", c.Home, home)
	}
}

func TestUpTurnMovesFrontToLeft(t *testing.T) {
	g := grid.New()
	apply(t, g, "U")
	id, _ := g.CubieAt(grid.Position{-1, 1, 0})
	c, _ := g.Cubie(id)
	if c.Home != (grid.Position{0, 1, 1}) {
		t.Errorf("cubie at (-1,1,0) came from %v, want (0,1,1)", c.Home)
	}
}

func TestSexyMoveSixTimes(t *testing.T) {
	g := grid.New()
	for i := 0; i < 6; i++ {
		apply(t, g, "R U R' U'")
	}
	if !g.IsSolved() {
		t.Error("(R U R' U') x 6 should return to solved")
	}
}

func TestMoveAndInverse(t *testing.T) {
	for face := range layers {
		for _, turn := range []Turn{CW, CCW, Double} {
			g := grid.New()
			m := Move{Face: face, Turn: turn}
			apply(t, g, m.Notation()+" "+m.Inverse().Notation())
			if !g.IsSolved() {
				t.Errorf("%v %v should return to solved", m, m.Inverse())
			}
		}
	}
}

func TestFromTurn(t *testing.T) {
	for face := range layers {
		for _, turn := range []Turn{CW, CCW} {
			m := Move{Face: face, Turn: turn}
			q := m.Turns()[0]
			back, ok := FromTurn(q)
			if !ok || back != m {
				t.Errorf("FromTurn(%v) = %v, want %v", q, back, m)
			}
		}
	}
}

func TestInvert(t *testing.T) {
	moves, _ := Parse("R U2 F'")
	if got := Format(Invert(moves)); got != "F U2 R'" {
		t.Errorf("Invert = %q, want %q", got, "F U2 R'")
	}
}

func TestDescribe(t *testing.T) {
	moves, _ := Parse("R U' F2 M")
	want := "R up, T rotate left, F rotate clockwise x 2, M down"
	if got := DescribeSequence(moves); got != want {
		t.Errorf("DescribeSequence = %q, want %q", got, want)
	}
	if got := DescribeSequence(nil); got != "" {
		t.Errorf("DescribeSequence(nil) = %q, want empty", got)
	}
}
