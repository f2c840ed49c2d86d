package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	controller := NewGameController(humanSettings())
	hub := NewHub()
	done := make(chan struct{})
	t.Cleanup(func() { close(done) })
	go hub.Run(done)
	server := httptest.NewServer(buildRouter(controller, hub))
	t.Cleanup(server.Close)
	return server
}

func postJSONBody(t *testing.T, url string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return resp
}

func decodeStatus(t *testing.T, resp *http.Response) StatusResponse {
	t.Helper()
	defer resp.Body.Close()
	var status StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	return status
}

func TestAPIPing(t *testing.T) {
	server := newTestServer(t)
	resp, err := http.Get(server.URL + "/api/ping")
	if err != nil {
		t.Fatalf("ping: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("ping returned %d", resp.StatusCode)
	}
}

func TestAPIStartAndStatus(t *testing.T) {
	server := newTestServer(t)
	resp := postJSONBody(t, server.URL+"/api/start", map[string]any{
		"settings": map[string]string{"mode": "human_vs_human"},
	})
	status := decodeStatus(t, resp)
	if status.Status != "running" {
		t.Fatalf("expected running game, got %q", status.Status)
	}
	if status.NextPlayer != "goat" {
		t.Fatalf("goat moves first, got %q", status.NextPlayer)
	}
	if status.Phase != "placement" {
		t.Fatalf("expected placement phase, got %q", status.Phase)
	}
	if len(status.Board) != boardSize || len(status.Board[0]) != boardSize {
		t.Fatalf("unexpected board shape")
	}
	for _, corner := range [][2]int{{0, 0}, {4, 0}, {0, 4}, {4, 4}} {
		if status.Board[corner[1]][corner[0]] != 2 {
			t.Fatalf("expected tiger at corner %v", corner)
		}
	}
}

func TestAPIMoveRoundtrip(t *testing.T) {
	server := newTestServer(t)
	postJSONBody(t, server.URL+"/api/start", map[string]any{
		"settings": map[string]string{"mode": "human_vs_human"},
	}).Body.Close()

	resp := postJSONBody(t, server.URL+"/api/move", apiMove{Kind: "place", From: -1, To: 7})
	status := decodeStatus(t, resp)
	if status.GoatsPlaced != 1 {
		t.Fatalf("expected one placed goat, got %d", status.GoatsPlaced)
	}
	if status.NextPlayer != "tiger" {
		t.Fatalf("expected tiger to move, got %q", status.NextPlayer)
	}
	if len(status.History) != 1 {
		t.Fatalf("expected one history entry, got %d", len(status.History))
	}
}

func TestAPIMoveRejectsIllegal(t *testing.T) {
	server := newTestServer(t)
	postJSONBody(t, server.URL+"/api/start", map[string]any{
		"settings": map[string]string{"mode": "human_vs_human"},
	}).Body.Close()

	resp := postJSONBody(t, server.URL+"/api/move", apiMove{Kind: "place", From: -1, To: 0})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("placement on a tiger must return 400, got %d", resp.StatusCode)
	}

	resp = postJSONBody(t, server.URL+"/api/move", apiMove{Kind: "teleport", From: -1, To: 7})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown move kind must return 400, got %d", resp.StatusCode)
	}
}

func TestAPILegalMoves(t *testing.T) {
	server := newTestServer(t)
	postJSONBody(t, server.URL+"/api/start", map[string]any{
		"settings": map[string]string{"mode": "human_vs_human"},
	}).Body.Close()

	resp, err := http.Get(server.URL + "/api/legal-moves")
	if err != nil {
		t.Fatalf("legal-moves: %v", err)
	}
	defer resp.Body.Close()
	var payload legalMovesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode legal-moves: %v", err)
	}
	if payload.Player != "goat" {
		t.Fatalf("expected goat to move, got %q", payload.Player)
	}
	if len(payload.Moves) != boardCells-totalTigers {
		t.Fatalf("expected %d placements, got %d", boardCells-totalTigers, len(payload.Moves))
	}
}

func TestAPICacheStatusAndFlush(t *testing.T) {
	server := newTestServer(t)
	SharedTT().Store(42, TTEntry{Depth: 3})

	resp, err := http.Get(server.URL + "/api/cache/tt")
	if err != nil {
		t.Fatalf("cache status: %v", err)
	}
	var status ttCacheStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decode cache status: %v", err)
	}
	resp.Body.Close()
	if status.Count == 0 {
		t.Fatalf("expected a non-empty cache")
	}

	req, _ := http.NewRequest(http.MethodDelete, server.URL+"/api/cache/tt", nil)
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("cache flush: %v", err)
	}
	delResp.Body.Close()
	if SharedTT().Count() != 0 {
		t.Fatalf("flush must empty the shared table")
	}
}

func TestAPISettingsUpdateConfig(t *testing.T) {
	server := newTestServer(t)
	defer configStore.Update(DefaultConfig())

	updated := DefaultConfig()
	updated.AiTimeBudgetMs = 250
	resp := postJSONBody(t, server.URL+"/api/settings", map[string]any{"config": updated})
	status := decodeStatus(t, resp)
	if status.Config.AiTimeBudgetMs != 250 {
		t.Fatalf("config update not applied, got %d", status.Config.AiTimeBudgetMs)
	}
}
