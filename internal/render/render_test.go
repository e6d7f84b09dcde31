package render

import (
	"bytes"
	"strings"
	"testing"

	"minimax_chess/internal/game"
)

func TestTextStartPosition(t *testing.T) {
	g, err := game.NewGame(game.DefaultHistorySize)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	want := strings.Join([]string{
		"8| R N B Q K B N R |",
		"7| M M M M M M M M |",
		"6| _ _ _ _ _ _ _ _ |",
		"5| _ _ _ _ _ _ _ _ |",
		"4| _ _ _ _ _ _ _ _ |",
		"3| _ _ _ _ _ _ _ _ |",
		"2| m m m m m m m m |",
		"1| r n b q k b n r |",
		"  -----------------",
		"   A B C D E F G H",
		"",
	}, "\n")
	if got := Text(g); got != want {
		t.Fatalf("board text:\n%s\nwant:\n%s", got, want)
	}
}

func TestTextAfterMove(t *testing.T) {
	g, err := game.NewGame(game.DefaultHistorySize)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	m := game.NewMove(1, 4, 3, 4)
	if err := g.ApplyMove(&m, false); err != nil {
		t.Fatalf("apply: %v", err)
	}
	lines := strings.Split(Text(g), "\n")
	if lines[4] != "4| _ _ _ _ m _ _ _ |" || lines[6] != "2| m m m m _ m m m |" {
		t.Fatalf("unexpected board after e2e4:\n%s", Text(g))
	}
}

func TestSVG(t *testing.T) {
	g, err := game.NewGame(game.DefaultHistorySize)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	marks, err := g.Targets(0, 6)
	if err != nil {
		t.Fatalf("targets: %v", err)
	}
	var buf bytes.Buffer
	SVG(&buf, g, marks)
	out := buf.String()
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatalf("output is not an svg document")
	}
	if n := strings.Count(out, markSquare); n != 2 {
		t.Fatalf("expected 2 marked squares, got %d", n)
	}
	if n := strings.Count(out, "♟"); n != 8 {
		t.Fatalf("expected 8 black pawns, got %d", n)
	}
}
