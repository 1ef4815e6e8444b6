package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/katsup07/chess/internal/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := storage.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	log := zerolog.Nop()
	srv := New(NewController(store, log), NewHub(), log)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode: %v", method, url, err)
		}
	}
	return resp.StatusCode
}

func createGame(t *testing.T, ts *httptest.Server, req newGameRequest) gameResponse {
	t.Helper()
	var resp gameResponse
	if code := doJSON(t, http.MethodPost, ts.URL+"/api/games", req, &resp); code != http.StatusCreated {
		t.Fatalf("create game: status %d", code)
	}
	return resp
}

func TestCreateGame(t *testing.T) {
	ts := newTestServer(t)

	resp := createGame(t, ts, newGameRequest{Difficulty: "easy"})
	if resp.ID == "" {
		t.Fatal("created game has no id")
	}
	if resp.Turn != "w" || resp.Status != "ongoing" {
		t.Errorf("fresh game snapshot: %+v", resp)
	}
	if len(resp.LegalMoves) != 20 {
		t.Errorf("start position offers %d legal moves, want 20", len(resp.LegalMoves))
	}
}

func TestCreateGameRejectsBadInput(t *testing.T) {
	ts := newTestServer(t)

	if code := doJSON(t, http.MethodPost, ts.URL+"/api/games", newGameRequest{FEN: "garbage"}, nil); code != http.StatusBadRequest {
		t.Errorf("bad FEN: status %d, want 400", code)
	}
	if code := doJSON(t, http.MethodPost, ts.URL+"/api/games", newGameRequest{Difficulty: "nightmare"}, nil); code != http.StatusBadRequest {
		t.Errorf("bad difficulty: status %d, want 400", code)
	}
}

func TestMoveAndEngineReply(t *testing.T) {
	ts := newTestServer(t)
	created := createGame(t, ts, newGameRequest{Difficulty: "easy"})

	var resp gameResponse
	code := doJSON(t, http.MethodPost, ts.URL+"/api/games/"+created.ID+"/move", moveRequest{Move: "e2e4"}, &resp)
	if code != http.StatusOK {
		t.Fatalf("move: status %d", code)
	}
	// The human moved and the engine answered, so it is White again.
	if len(resp.Moves) != 2 {
		t.Fatalf("move log has %d entries, want 2", len(resp.Moves))
	}
	if resp.Moves[0].Coord != "e2e4" || resp.Moves[0].SAN != "e4" {
		t.Errorf("first record: %+v", resp.Moves[0])
	}
	if resp.Turn != "w" {
		t.Errorf("turn after reply = %q, want w", resp.Turn)
	}
}

func TestMoveRejectsIllegal(t *testing.T) {
	ts := newTestServer(t)
	created := createGame(t, ts, newGameRequest{Difficulty: "easy"})

	url := ts.URL + "/api/games/" + created.ID + "/move"
	if code := doJSON(t, http.MethodPost, url, moveRequest{Move: "e2e5"}, nil); code != http.StatusBadRequest {
		t.Errorf("illegal move: status %d, want 400", code)
	}
	if code := doJSON(t, http.MethodPost, url, moveRequest{}, nil); code != http.StatusBadRequest {
		t.Errorf("empty payload: status %d, want 400", code)
	}
}

func TestUndoRetractsPair(t *testing.T) {
	ts := newTestServer(t)
	created := createGame(t, ts, newGameRequest{Difficulty: "easy"})

	var afterMove gameResponse
	doJSON(t, http.MethodPost, ts.URL+"/api/games/"+created.ID+"/move", moveRequest{Move: "e2e4"}, &afterMove)

	var afterUndo gameResponse
	code := doJSON(t, http.MethodPost, ts.URL+"/api/games/"+created.ID+"/undo", nil, &afterUndo)
	if code != http.StatusOK {
		t.Fatalf("undo: status %d", code)
	}
	if len(afterUndo.Moves) != 0 {
		t.Errorf("undo left %d moves, want 0 (human+engine pair retracted)", len(afterUndo.Moves))
	}
	if afterUndo.FEN != created.FEN {
		t.Errorf("undo FEN = %s, want the created position", afterUndo.FEN)
	}

	if code := doJSON(t, http.MethodPost, ts.URL+"/api/games/"+created.ID+"/undo", nil, nil); code != http.StatusConflict {
		t.Errorf("undo with nothing to undo: status %d, want 409", code)
	}
}

func TestGetListDelete(t *testing.T) {
	ts := newTestServer(t)
	created := createGame(t, ts, newGameRequest{Difficulty: "medium"})

	var got gameResponse
	if code := doJSON(t, http.MethodGet, ts.URL+"/api/games/"+created.ID, nil, &got); code != http.StatusOK {
		t.Fatalf("get: status %d", code)
	}
	if got.ID != created.ID || got.Difficulty != "medium" {
		t.Errorf("get returned %+v", got)
	}

	var list []gameSummary
	if code := doJSON(t, http.MethodGet, ts.URL+"/api/games", nil, &list); code != http.StatusOK {
		t.Fatalf("list: status %d", code)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Errorf("list = %+v", list)
	}

	if code := doJSON(t, http.MethodDelete, ts.URL+"/api/games/"+created.ID, nil, nil); code != http.StatusNoContent {
		t.Errorf("delete: status %d, want 204", code)
	}
	if code := doJSON(t, http.MethodGet, ts.URL+"/api/games/"+created.ID, nil, nil); code != http.StatusNotFound {
		t.Errorf("get after delete: status %d, want 404", code)
	}
}

func TestUnknownGameIs404(t *testing.T) {
	ts := newTestServer(t)
	if code := doJSON(t, http.MethodGet, ts.URL+"/api/games/nope", nil, nil); code != http.StatusNotFound {
		t.Errorf("unknown id: status %d, want 404", code)
	}
}

func TestStats(t *testing.T) {
	ts := newTestServer(t)
	var stats statsResponse
	if code := doJSON(t, http.MethodGet, ts.URL+"/api/stats", nil, &stats); code != http.StatusOK {
		t.Fatalf("stats: status %d", code)
	}
	if stats.GamesPlayed != 0 || stats.WinRate != 0 {
		t.Errorf("fresh stats = %+v", stats)
	}
}
