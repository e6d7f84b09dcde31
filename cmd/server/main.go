package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"minimax_chess/internal/game"
	"minimax_chess/internal/httpx"
	"minimax_chess/internal/search"
	"minimax_chess/internal/session"
)

func main() {
	// Flags (env fallbacks) set the defaults for games created without settings.
	addr := flag.String("addr", getenv("MCHESS_ADDR", ":8080"), "listen address")
	history := flag.Int("history", getenvInt("MCHESS_HISTORY", game.DefaultHistorySize), "plies kept for undo")
	difficulty := flag.Int("difficulty", getenvInt("MCHESS_DIFFICULTY", search.DefaultDifficulty), "default search depth (1-4)")
	mode := flag.String("mode", getenv("MCHESS_MODE", "one-player"), "default game mode: one-player or two-players")
	human := flag.String("human", getenv("MCHESS_HUMAN", "white"), "default human color in one-player games")
	quiet := flag.Bool("quiet", getenb("MCHESS_QUIET", false), "do not log session events")
	flag.Parse()

	defaults := session.DefaultSettings()
	defaults.HistorySize = *history
	defaults.Difficulty = *difficulty
	m, ok := session.ParseMode(*mode)
	fatalIfBool(!ok, "mode", *mode)
	defaults.Mode = m
	c, ok := game.ParseColor(*human)
	fatalIfBool(!ok, "human color", *human)
	defaults.HumanColor = c

	logger := log.Default()
	sessionLog := logger
	if *quiet {
		sessionLog = log.New(io.Discard, "", 0)
	}

	store, err := session.NewStore(defaults, sessionLog)
	fatalIf(err, "settings")
	srv, err := httpx.NewServer(store, logger)
	fatalIf(err, "http init")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Close(shutdown); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("Defaults: %s, difficulty %d, human %s, history %d", defaults.Mode, defaults.Difficulty, defaults.HumanColor, defaults.HistorySize)
	if err := srv.Listen(*addr); err != nil {
		log.Fatal(err)
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

func fatalIfBool(b bool, label, value string) {
	if b {
		log.Fatalf("invalid %s %q", label, value)
	}
}
