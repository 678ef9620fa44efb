package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/talgya/invasion/internal/engine"
)

const testWindow = time.Minute

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	sim, err := engine.New(engine.DefaultParams(), 17)
	if err != nil {
		t.Fatal(err)
	}
	s := &Server{Runner: engine.NewRunner(sim)}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func TestStatusEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/status")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var st engine.Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatal(err)
	}
	if st.Seed != 17 || st.Turn != 0 || st.Running {
		t.Errorf("status = %+v", st)
	}
	if st.Humans != 90 || st.Hunters != 60 || st.Zombies != 3 {
		t.Errorf("counts = %d/%d/%d", st.Humans, st.Hunters, st.Zombies)
	}
}

func TestGridEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/grid")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var snap engine.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatal(err)
	}
	if len(snap.Agents) != 93 {
		t.Errorf("snapshot has %d agents, want 93", len(snap.Agents))
	}
	if snap.Bounds.X != 60 || snap.Bounds.Y != 40 {
		t.Errorf("bounds = %+v", snap.Bounds)
	}
	for _, a := range snap.Agents {
		if a.X < 0 || a.X >= 60 || a.Y < 0 || a.Y >= 40 {
			t.Fatalf("agent %d at (%d,%d) outside the grid", a.ID, a.X, a.Y)
		}
	}
}

func TestHistoryWithoutDatabase(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/history")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d without a database, want 404", resp.StatusCode)
	}
}

func TestRateLimiterWindow(t *testing.T) {
	rl := NewRateLimiter(2, testWindow)
	if !rl.Allow("10.0.0.1") || !rl.Allow("10.0.0.1") {
		t.Fatal("first two requests must pass")
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("third request within the window must be limited")
	}
	if !rl.Allow("10.0.0.2") {
		t.Fatal("other clients have their own budget")
	}
}
