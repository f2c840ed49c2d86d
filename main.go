package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"unsafe"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

type StatusResponse struct {
	GameID          string            `json:"game_id"`
	Settings        GameSettingsDTO   `json:"settings"`
	Config          Config            `json:"config"`
	Board           [][]int           `json:"board"`
	NextPlayer      string            `json:"next_player"`
	Winner          string            `json:"winner"`
	Status          string            `json:"status"`
	Phase           string            `json:"phase"`
	GoatsPlaced     int               `json:"goats_placed"`
	GoatsCaptured   int               `json:"goats_captured"`
	CaptureWinGoats int               `json:"capture_win_goats"`
	AiThinking      bool              `json:"ai_thinking"`
	LastMessage     string            `json:"last_message"`
	History         []historyEntryDTO `json:"history"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
}

type GameSettingsDTO struct {
	Mode      string `json:"mode"`
	HumanSide string `json:"human_side"`
}

type apiMove struct {
	Kind string `json:"kind"`
	From int    `json:"from"`
	To   int    `json:"to"`
}

type historyEntryDTO struct {
	Kind      string  `json:"kind"`
	From      int     `json:"from"`
	To        int     `json:"to"`
	Jumped    int     `json:"jumped"`
	Player    string  `json:"player"`
	ElapsedMs float64 `json:"elapsed_ms"`
	IsAi      bool    `json:"is_ai"`
	Depth     int     `json:"depth"`
}

type historyPayload struct {
	History []historyEntryDTO `json:"history"`
}

type settingsPayload struct {
	Settings GameSettingsDTO `json:"settings"`
	Config   Config          `json:"config"`
}

type legalMovesResponse struct {
	Player string `json:"player"`
	Moves  []Move `json:"moves"`
}

type hintResponse struct {
	Player string `json:"player"`
	Move   Move   `json:"move"`
	Depth  int    `json:"depth"`
}

type ttCacheStatusResponse struct {
	Count      int    `json:"count"`
	EntryBytes uint64 `json:"entry_bytes"`
	UsedBytes  uint64 `json:"used_bytes"`
}

func main() {
	controller := NewGameController(DefaultGameSettings())
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go hub.Run(ctx.Done())
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if controller.Tick() {
					if entry, ok := controller.LatestHistoryEntry(); ok {
						hub.broadcastHistory <- historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}}
					}
					hub.broadcastStatus <- controllerStatus(controller)
				}
			}
		}
	}()

	r := buildRouter(controller, hub)

	server := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Println("backend listening on :8080")
	var runErr error
	select {
	case <-sigCtx.Done():
		log.Printf("[backend] shutdown signal received: %v", sigCtx.Err())
	case err, ok := <-serverErrCh:
		if ok {
			runErr = err
			log.Printf("[backend] server error: %v", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("[backend] graceful shutdown failed: %v", err)
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Printf("[backend] forced close failed: %v", closeErr)
		}
	}

	cancel()
	if runErr != nil {
		log.Printf("[backend] exiting after server error: %v", runErr)
	}
}

func buildRouter(controller *GameController, hub *Hub) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Get("/api/legal-moves", func(w http.ResponseWriter, r *http.Request) {
		state := controller.State()
		writeJSON(w, http.StatusOK, legalMovesResponse{
			Player: state.ToMove.String(),
			Moves:  controller.LegalMoves(),
		})
	})

	r.Post("/api/start", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings GameSettingsDTO `json:"settings"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		settings := settingsFromDTO(payload.Settings, DefaultGameSettings())
		controller.StartGame(settings)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
		hub.broadcastReset <- controllerStatus(controller)
	})

	r.Post("/api/stop", func(w http.ResponseWriter, r *http.Request) {
		settings := controller.Settings()
		controller.Reset(settings)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
		hub.broadcastReset <- controllerStatus(controller)
	})

	r.Post("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings *GameSettingsDTO `json:"settings"`
			Config   *Config          `json:"config"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if payload.Config != nil {
			configStore.Update(*payload.Config)
			controller.ResetForConfigChange()
		}
		if payload.Settings != nil {
			settings := settingsFromDTO(*payload.Settings, controller.Settings())
			controller.UpdateSettings(settings)
		}
		hub.broadcastSettings <- settingsPayload{
			Settings: settingsToDTO(controller.Settings()),
			Config:   GetConfig(),
		}
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		var payload apiMove
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		kind, ok := moveKindFromString(payload.Kind)
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown move kind"})
			return
		}
		applied, errMsg := controller.ApplyHumanMove(kind, payload.From, payload.To)
		if !applied {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
			return
		}
		if entry, ok := controller.LatestHistoryEntry(); ok {
			hub.broadcastHistory <- historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}}
		}
		hub.broadcastStatus <- controllerStatus(controller)
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Get("/api/hint", func(w http.ResponseWriter, r *http.Request) {
		state := controller.State()
		move, ok := controller.Hint()
		if !ok {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "no move available"})
			return
		}
		writeJSON(w, http.StatusOK, hintResponse{
			Player: state.ToMove.String(),
			Move:   move,
			Depth:  move.Depth,
		})
	})

	r.Get("/api/cache/tt", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ttCacheStatus())
	})
	r.Delete("/api/cache/tt", func(w http.ResponseWriter, r *http.Request) {
		FlushGlobalCaches()
		writeJSON(w, http.StatusOK, map[string]any{
			"cleared": true,
		})
	})

	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, controller, w, r)
	})

	return r
}

func serveWS(hub *Hub, controller *GameController, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{hub: hub, send: make(chan []byte, 16)}
	hub.Register(client)

	status := controllerStatus(controller)
	client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(status)})

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send); err != nil {
			return
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_status":
			status := controllerStatus(controller)
			client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(status)})
		}
	}
}

func controllerStatus(controller *GameController) StatusResponse {
	state := controller.State()
	return StatusResponse{
		GameID:          controller.GameID(),
		Settings:        settingsToDTO(controller.Settings()),
		Config:          GetConfig(),
		Board:           boardToSlice(state.Board),
		NextPlayer:      state.ToMove.String(),
		Winner:          winnerFromStatus(state.Status),
		Status:          statusToString(state.Status),
		Phase:           state.Phase().String(),
		GoatsPlaced:     state.GoatsPlaced,
		GoatsCaptured:   state.GoatsCaptured,
		CaptureWinGoats: captureWinGoats,
		AiThinking:      controller.AiThinking(),
		LastMessage:     state.LastMessage,
		History:         historyToDTO(controller.History()),
		TurnStartedAtMs: controller.CurrentTurnStartedAtMs(),
	}
}

func settingsFromDTO(dto GameSettingsDTO, base GameSettings) GameSettings {
	settings := base
	switch dto.Mode {
	case "ai_vs_ai":
		settings.GoatType = PlayerAI
		settings.TigerType = PlayerAI
	case "human_vs_human":
		settings.GoatType = PlayerHuman
		settings.TigerType = PlayerHuman
	case "human_vs_ai":
		if dto.HumanSide == "tiger" {
			settings.GoatType = PlayerAI
			settings.TigerType = PlayerHuman
		} else {
			settings.GoatType = PlayerHuman
			settings.TigerType = PlayerAI
		}
	}
	return settings
}

func settingsToDTO(settings GameSettings) GameSettingsDTO {
	mode := "human_vs_ai"
	humanSide := ""
	switch {
	case settings.GoatType == PlayerAI && settings.TigerType == PlayerAI:
		mode = "ai_vs_ai"
	case settings.GoatType == PlayerHuman && settings.TigerType == PlayerHuman:
		mode = "human_vs_human"
	case settings.GoatType == PlayerHuman:
		humanSide = "goat"
	default:
		humanSide = "tiger"
	}
	return GameSettingsDTO{Mode: mode, HumanSide: humanSide}
}

func boardToSlice(board Board) [][]int {
	rows := make([][]int, boardSize)
	for y := 0; y < boardSize; y++ {
		rows[y] = make([]int, boardSize)
		for x := 0; x < boardSize; x++ {
			rows[y][x] = cellToInt(board.At(cellIndex(x, y)))
		}
	}
	return rows
}

func cellToInt(cell Cell) int {
	switch cell {
	case CellGoat:
		return 1
	case CellTiger:
		return 2
	default:
		return 0
	}
}

func winnerFromStatus(status GameStatus) string {
	switch status {
	case StatusGoatWon:
		return "goat"
	case StatusTigerWon:
		return "tiger"
	default:
		return ""
	}
}

func statusToString(status GameStatus) string {
	switch status {
	case StatusNotStarted:
		return "not_started"
	case StatusGoatWon:
		return "goat_won"
	case StatusTigerWon:
		return "tiger_won"
	default:
		return "running"
	}
}

func historyToDTO(history MoveHistory) []historyEntryDTO {
	entries := history.All()
	result := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		result = append(result, historyEntryToDTO(entry))
	}
	return result
}

func historyEntryToDTO(entry HistoryEntry) historyEntryDTO {
	return historyEntryDTO{
		Kind:      entry.Move.Kind.String(),
		From:      entry.Move.From,
		To:        entry.Move.To,
		Jumped:    entry.Move.Jumped,
		Player:    entry.Side.String(),
		ElapsedMs: entry.ElapsedMs,
		IsAi:      entry.IsAi,
		Depth:     entry.Depth,
	}
}

func ttCacheStatus() ttCacheStatusResponse {
	tt := SharedTT()
	count := tt.Count()
	entryBytes := uint64(unsafe.Sizeof(TTEntry{}))
	return ttCacheStatusResponse{
		Count:      count,
		EntryBytes: entryBytes,
		UsedBytes:  uint64(count) * entryBytes,
	}
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
