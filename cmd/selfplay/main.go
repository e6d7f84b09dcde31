// Command selfplay lets the engine play both sides and prints each ply.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"minimax_chess/internal/game"
	"minimax_chess/internal/notation"
	"minimax_chess/internal/render"
	"minimax_chess/internal/search"
)

func main() {
	whiteDepth := flag.Int("white-depth", getenvInt("MCHESS_WHITE_DEPTH", search.DefaultDifficulty), "search depth for White (1-4)")
	blackDepth := flag.Int("black-depth", getenvInt("MCHESS_BLACK_DEPTH", search.DefaultDifficulty), "search depth for Black (1-4)")
	maxPlies := flag.Int("max-plies", getenvInt("MCHESS_MAX_PLIES", 200), "stop after this many plies")
	fen := flag.String("fen", getenv("MCHESS_FEN", ""), "start position (default: standard)")
	colored := flag.Bool("color", getenb("MCHESS_COLOR", true), "colored board output")
	every := flag.Bool("boards", getenb("MCHESS_BOARDS", false), "print the board after every ply")
	flag.Parse()

	depths := [2]int{*whiteDepth, *blackDepth}
	for _, d := range depths {
		fatalIf(search.ValidDifficulty(d), "depth")
	}

	g, err := startGame(*fen)
	fatalIf(err, "start position")
	printer := render.NewTextPrinter(*colored)
	fatalIf(printer.Print(os.Stdout, g), "print")

	for ply := 0; ply < *maxPlies && !g.Status().Terminal(); ply++ {
		turn := g.Turn()
		res, err := search.Search(g, depths[turn.Index()])
		fatalIf(err, "search")
		m := res.Move
		san, err := notation.Algebraic(g, m)
		if err != nil {
			san = notation.MoveString(m)
		}
		fatalIf(g.ApplyMove(&m, true), "apply "+notation.MoveString(m))

		prefix := fmt.Sprintf("%d.", ply/2+1)
		if turn == game.Black {
			prefix = fmt.Sprintf("%d...", ply/2+1)
		}
		fmt.Printf("%-6s %-8s score %-6s nodes %d\n", prefix, san, scoreText(res.Score), res.Nodes)
		if *every {
			fatalIf(printer.Print(os.Stdout, g), "print")
		}
	}

	if !*every {
		fatalIf(printer.Print(os.Stdout, g), "print")
	}
	fmt.Printf("status: %s\nfen: %s\n", g.Status(), notation.FEN(g))
}

func startGame(fen string) (*game.Game, error) {
	if strings.TrimSpace(fen) == "" {
		return game.NewGame(game.DefaultHistorySize)
	}
	return notation.ParseFEN(fen, game.DefaultHistorySize)
}

func scoreText(v int) string {
	switch v {
	case search.MaxScore:
		return "+mate"
	case search.MinScore:
		return "-mate"
	default:
		return strconv.Itoa(v)
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenb(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			log.Fatalf("%s: %v", key, err)
		}
		return n
	}
	return def
}

func fatalIf(err error, label string) {
	if err != nil {
		log.Fatalf("%s: %v", label, err)
	}
}
