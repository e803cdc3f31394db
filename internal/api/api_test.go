package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericogr/genesis-combat/internal/config"
	"github.com/ericogr/genesis-combat/internal/constants"
	"github.com/ericogr/genesis-combat/internal/game"
	"github.com/ericogr/genesis-combat/internal/service"
	"github.com/ericogr/genesis-combat/internal/storage"
	"github.com/ericogr/genesis-combat/internal/stream"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	lib, err := config.LoadConfig("../config/testdata/catalog.json")
	require.NoError(t, err)
	db, err := storage.OpenAndMigrate(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	svc := service.New(storage.NewSQLiteRepository(db), lib, stream.NewHub(8), service.Options{DefaultSeed: 5})
	return NewRouter(svc)
}

func do(t *testing.T, r http.Handler, method, path, player string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	if player != "" {
		req.Header.Set(constants.HeaderPlayerUUID, player)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func startImp(t *testing.T, r http.Handler, player string) *game.CombatState {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/combats", player, gin.H{"enemies": []string{"imp"}, "deck": []string{"strike", "strike", "strike", "strike", "strike"}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[*game.CombatState](t, w)
}

func TestHealthAndVersion(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/version", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"version":"dev"`)
}

func TestListCards(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/cards", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cards := decode[[]map[string]any](t, w)
	assert.NotEmpty(t, cards)
}

func TestCommandsRequireIdentity(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodPost, "/api/combats", "", gin.H{"enemies": []string{"imp"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"X-Player-UUID header is required"}`, w.Body.String())

	w = do(t, r, http.MethodPost, "/api/combats", "p1", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCombatLifecycleOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	state := startImp(t, r, "P1")
	base := "/api/combats/" + state.ID

	w := do(t, r, http.MethodGet, base, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, constants.CacheControlNoCache, w.Header().Get(constants.CacheControlHeader))

	hand := state.Player.Zones.Hand
	w = do(t, r, http.MethodPost, base+"/play", "p2", gin.H{"instance_id": hand[0].ID})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, r, http.MethodPost, base+"/play", "p1", gin.H{"instance_id": "missing"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, r, http.MethodPost, base+"/resume", "p1", gin.H{"kind": "effect_choice", "option": 0})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, r, http.MethodPost, base+"/end-turn", "p1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, decode[*game.CombatState](t, w).Turn)

	next := decode[*game.CombatState](t, do(t, r, http.MethodGet, base, "", nil))
	for _, inst := range next.Player.Zones.Hand[:2] {
		w = do(t, r, http.MethodPost, base+"/play", "p1", gin.H{"instance_id": inst.ID})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	assert.Equal(t, game.PhaseVictory, decode[*game.CombatState](t, w).Phase)

	w = do(t, r, http.MethodGet, "/api/players/p1/profile", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := decode[map[string]any](t, w)
	assert.EqualValues(t, 1, profile["victories"])
	assert.EqualValues(t, 5, profile["gold"])
	assert.Contains(t, profile, "created_at")
	assert.NotContains(t, profile, "DeletedAt")

	w = do(t, r, http.MethodGet, "/api/players/p1/collection", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]game.CollectionEntry](t, w), 5)

	w = do(t, r, http.MethodGet, "/api/leaderboard?limit=5", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)
}

func TestUnknownAndMalformedCombatIDs(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/combats/short", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, r, http.MethodGet, "/api/combats/01ARZ3NDEKTSV4RRFFQ69G5FAV", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, r, http.MethodGet, "/api/players/nobody/profile", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEventsStreamSnapshotThenEvents(t *testing.T) {
	r := newTestRouter(t)
	srv := httptest.NewServer(r)
	defer srv.Close()
	state := startImp(t, r, "p1")

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/combats/" + state.ID + "/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var first streamMessage
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, "snapshot", first.Type)
	require.NotNil(t, first.State)
	assert.Equal(t, state.ID, first.State.ID)

	w := do(t, r, http.MethodPost, "/api/combats/"+state.ID+"/end-turn", "p1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var next streamMessage
	require.NoError(t, conn.ReadJSON(&next))
	assert.Equal(t, "event", next.Type)
	require.NotNil(t, next.Event)
	assert.Greater(t, next.Event.Seq, state.Seq)
	assert.NotEmpty(t, next.Event.Log)
}
