package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/muesli/termenv"
)

// arena drives the backend in ai_vs_ai mode over its HTTP API and
// aggregates outcomes across a batch of self-play games.
type arena struct {
	client       *http.Client
	baseURL      string
	pollInterval time.Duration
	logger       *log.Logger
	output       *termenv.Output

	games      int
	renderLive bool
}

type statusResponse struct {
	GameID        string            `json:"game_id"`
	Status        string            `json:"status"`
	Winner        string            `json:"winner"`
	Board         [][]int           `json:"board"`
	NextPlayer    string            `json:"next_player"`
	Phase         string            `json:"phase"`
	GoatsPlaced   int               `json:"goats_placed"`
	GoatsCaptured int               `json:"goats_captured"`
	History       []json.RawMessage `json:"history"`
}

type gameResult struct {
	winner   string
	moves    int
	captured int
	elapsed  time.Duration
}

func main() {
	baseURL := flag.String("backend", "http://localhost:8080", "backend base URL")
	games := flag.Int("games", 10, "number of self-play games")
	pollMs := flag.Int("poll-ms", 200, "status poll interval in milliseconds")
	render := flag.Bool("render", true, "render the board while games run")
	flag.Parse()

	a := &arena{
		client:       &http.Client{Timeout: 10 * time.Second},
		baseURL:      strings.TrimRight(*baseURL, "/"),
		pollInterval: time.Duration(*pollMs) * time.Millisecond,
		logger:       log.New(os.Stdout, "[trainer] ", log.LstdFlags),
		output:       termenv.NewOutput(os.Stdout),
		games:        *games,
		renderLive:   *render,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.waitForBackend(ctx); err != nil {
		a.logger.Fatalf("backend not reachable at %s: %v", a.baseURL, err)
	}

	results := make([]gameResult, 0, a.games)
	for i := 0; i < a.games; i++ {
		if ctx.Err() != nil {
			break
		}
		result, err := a.playGame(ctx, i+1)
		if err != nil {
			a.logger.Printf("game %d aborted: %v", i+1, err)
			break
		}
		results = append(results, result)
		a.logger.Printf("game %d/%d winner=%s moves=%d captured=%d t=%s",
			i+1, a.games, result.winner, result.moves, result.captured, result.elapsed.Round(time.Millisecond))
	}
	a.printSummary(results)
}

func (a *arena) waitForBackend(ctx context.Context) error {
	deadline := time.Now().Add(15 * time.Second)
	for {
		resp, err := a.client.Get(a.baseURL + "/api/ping")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		if time.Now().After(deadline) {
			if err != nil {
				return err
			}
			return fmt.Errorf("ping returned %d", resp.StatusCode)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(500 * time.Millisecond):
		}
	}
}

func (a *arena) playGame(ctx context.Context, n int) (gameResult, error) {
	start := time.Now()
	payload := map[string]any{
		"settings": map[string]string{"mode": "ai_vs_ai"},
	}
	if err := a.postJSON(ctx, "/api/start", payload); err != nil {
		return gameResult{}, err
	}

	for {
		select {
		case <-ctx.Done():
			return gameResult{}, ctx.Err()
		case <-time.After(a.pollInterval):
		}
		status, err := a.fetchStatus(ctx)
		if err != nil {
			return gameResult{}, err
		}
		if a.renderLive {
			a.renderBoard(n, status)
		}
		if status.Status == "goat_won" || status.Status == "tiger_won" {
			return gameResult{
				winner:   status.Winner,
				moves:    len(status.History),
				captured: status.GoatsCaptured,
				elapsed:  time.Since(start),
			}, nil
		}
	}
}

func (a *arena) fetchStatus(ctx context.Context) (statusResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/api/status", nil)
	if err != nil {
		return statusResponse{}, err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return statusResponse{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return statusResponse{}, fmt.Errorf("status returned %d", resp.StatusCode)
	}
	var status statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return statusResponse{}, err
	}
	return status, nil
}

func (a *arena) postJSON(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned %d", path, resp.StatusCode)
	}
	return nil
}

func (a *arena) renderBoard(n int, status statusResponse) {
	profile := a.output.ColorProfile()
	goat := a.output.String("G").Foreground(profile.Color("2")).Bold()
	tiger := a.output.String("T").Foreground(profile.Color("1")).Bold()
	empty := a.output.String(".").Foreground(profile.Color("8"))

	var b strings.Builder
	fmt.Fprintf(&b, "game %d  %s to move  phase=%s placed=%d captured=%d\n",
		n, status.NextPlayer, status.Phase, status.GoatsPlaced, status.GoatsCaptured)
	for _, row := range status.Board {
		for x, cell := range row {
			if x > 0 {
				b.WriteByte(' ')
			}
			switch cell {
			case 1:
				b.WriteString(goat.String())
			case 2:
				b.WriteString(tiger.String())
			default:
				b.WriteString(empty.String())
			}
		}
		b.WriteByte('\n')
	}
	fmt.Fprint(a.output, b.String())
}

func (a *arena) printSummary(results []gameResult) {
	if len(results) == 0 {
		a.logger.Printf("no games finished")
		return
	}
	goatWins := 0
	tigerWins := 0
	totalMoves := 0
	totalCaptured := 0
	for _, r := range results {
		switch r.winner {
		case "goat":
			goatWins++
		case "tiger":
			tigerWins++
		}
		totalMoves += r.moves
		totalCaptured += r.captured
	}
	count := len(results)
	a.logger.Printf("summary games=%d goat_wins=%d tiger_wins=%d avg_moves=%.1f avg_captured=%.1f",
		count, goatWins, tigerWins,
		float64(totalMoves)/float64(count),
		float64(totalCaptured)/float64(count))
}
