package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericogr/genesis-combat/internal/config"
	"github.com/ericogr/genesis-combat/internal/game"
	"github.com/ericogr/genesis-combat/internal/storage"
	"github.com/ericogr/genesis-combat/internal/stream"
)

type mockRepo struct {
	mu          sync.Mutex
	combats     map[string]game.CombatRecord
	collections map[string][]game.CollectionEntry
	profiles    map[string]*game.PlayerProfile
	settled     []storage.Settlement
	saves       int
	topLimit    int
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		combats:     map[string]game.CombatRecord{},
		collections: map[string][]game.CollectionEntry{},
		profiles:    map[string]*game.PlayerProfile{},
	}
}

func (m *mockRepo) CreateCombat(rec *game.CombatRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.combats[rec.ID] = *rec
	return nil
}

func (m *mockRepo) GetCombat(id string) (*game.CombatRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.combats[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &rec, nil
}

func (m *mockRepo) SaveCombat(rec *game.CombatRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	m.combats[rec.ID] = *rec
	return nil
}

func (m *mockRepo) SettleCombat(rec *game.CombatRecord, s storage.Settlement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.combats[rec.ID].Settled {
		return nil
	}
	rec.Settled = true
	m.combats[rec.ID] = *rec
	m.settled = append(m.settled, s)
	p := m.profiles[s.PlayerUUID]
	p.CombatsPlayed++
	if s.Outcome.Victory {
		p.Victories++
		p.Gold += s.Outcome.Reward.Gold
	} else {
		p.Defeats++
	}
	return nil
}

func (m *mockRepo) GetCollection(playerUUID string) ([]game.CollectionEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.collections[playerUUID], nil
}

func (m *mockRepo) SeedCollection(playerUUID string, entries []game.CollectionEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.collections[playerUUID]) == 0 {
		m.collections[playerUUID] = entries
	}
	return nil
}

func (m *mockRepo) UpsertProfile(playerUUID, name string) (*game.PlayerProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[playerUUID]
	if !ok {
		p = &game.PlayerProfile{PlayerUUID: playerUUID}
		m.profiles[playerUUID] = p
	}
	if name != "" {
		p.PlayerName = name
	}
	cp := *p
	return &cp, nil
}

func (m *mockRepo) GetProfile(playerUUID string) (*game.PlayerProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[playerUUID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockRepo) GetTopPlayers(limit int) ([]game.PlayerProfile, error) {
	m.topLimit = limit
	return nil, nil
}

func newService(t *testing.T, opts Options) (*Service, *mockRepo) {
	t.Helper()
	lib, err := config.LoadConfig("../config/testdata/catalog.json")
	require.NoError(t, err)
	repo := newMockRepo()
	return New(repo, lib, stream.NewHub(8), opts), repo
}

func strikes(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "strike"
	}
	return out
}

func TestStartCombatSeedsCollectionAndProfile(t *testing.T) {
	svc, repo := newService(t, Options{DefaultSeed: 42, MaxConcurrent: 3})
	state, err := svc.StartCombat(StartRequest{PlayerUUID: "p1", PlayerName: "Ana", Enemies: []string{"Imp"}})
	require.NoError(t, err)

	assert.Len(t, state.ID, 26)
	assert.Equal(t, game.PhasePlayerTurn, state.Phase)
	assert.Len(t, state.Player.Zones.Hand, 5)
	assert.Equal(t, "Ana", state.Player.Name)
	// five strikes and five defends
	assert.Len(t, repo.collections["p1"], 10)
	rec, err := repo.GetCombat(state.ID)
	require.NoError(t, err)
	assert.Equal(t, "p1", rec.PlayerUUID)

	again, err := svc.StartCombat(StartRequest{PlayerUUID: "p1", Enemies: []string{"imp"}, Deck: strikes(3)})
	require.NoError(t, err)
	assert.Len(t, repo.collections["p1"], 10)
	assert.NotEqual(t, state.ID, again.ID)
}

func TestStartCombatAssignsPlayerAndRejectsUnknownEnemy(t *testing.T) {
	svc, repo := newService(t, Options{})
	state, err := svc.StartCombat(StartRequest{Enemies: []string{"wolf"}})
	require.NoError(t, err)
	rec, err := repo.GetCombat(state.ID)
	require.NoError(t, err)
	assert.Len(t, rec.PlayerUUID, 36)

	_, err = svc.StartCombat(StartRequest{PlayerUUID: "p2", Enemies: []string{"dragon"}})
	assert.ErrorIs(t, err, ErrCommandRejected)
}

func TestCommandsPersistPublishAndSettle(t *testing.T) {
	svc, repo := newService(t, Options{DefaultSeed: 7})
	state, err := svc.StartCombat(StartRequest{PlayerUUID: "p1", Enemies: []string{"imp"}, Deck: strikes(5), Stats: &PlayerStats{MaxHP: 30, Attack: 10}})
	require.NoError(t, err)
	sub := svc.Hub().Subscribe(state.ID)
	defer sub.Close()

	hand := state.Player.Zones.Hand
	_, err = svc.PlayCard("intruder", state.ID, PlayRequest{InstanceID: hand[0].ID})
	assert.ErrorIs(t, err, ErrNotCombatOwner)
	_, err = svc.PlayCard("p1", "missing", PlayRequest{InstanceID: hand[0].ID})
	assert.ErrorIs(t, err, ErrCombatNotFound)

	before := repo.combats[state.ID].Snapshot
	_, err = svc.PlayCard("p1", state.ID, PlayRequest{InstanceID: "nope"})
	assert.ErrorIs(t, err, ErrCommandRejected)
	assert.Equal(t, before, repo.combats[state.ID].Snapshot)
	assert.Equal(t, 0, repo.saves)

	after, err := svc.PlayCard("p1", state.ID, PlayRequest{InstanceID: hand[0].ID, TargetID: "h1"})
	require.NoError(t, err)
	assert.Equal(t, 10, after.Hostiles[0].HP)
	ev := <-sub.C
	assert.Equal(t, game.PhasePlayerTurn, ev.Phase)
	assert.NotEmpty(t, ev.Log)
	for _, l := range ev.Log {
		assert.Greater(t, l.Seq, state.Seq)
	}

	final, err := svc.PlayCard("p1", state.ID, PlayRequest{InstanceID: hand[1].ID})
	require.NoError(t, err)
	assert.Equal(t, game.PhaseVictory, final.Phase)
	ev = <-sub.C
	require.NotNil(t, ev.Outcome)
	assert.True(t, ev.Outcome.Victory)

	require.Len(t, repo.settled, 1)
	assert.Equal(t, 5, repo.profiles["p1"].Gold)
	assert.Equal(t, 1, repo.profiles["p1"].Victories)
	assert.True(t, repo.combats[state.ID].Settled)

	_, err = svc.EndTurn("p1", state.ID)
	assert.ErrorIs(t, err, ErrCommandRejected)
	assert.Len(t, repo.settled, 1)

	got, err := svc.GetCombat(context.Background(), state.ID)
	require.NoError(t, err)
	assert.Equal(t, game.PhaseVictory, got.Phase)
}

func TestResumeRejectsUnknownKindAndIdlePhase(t *testing.T) {
	svc, _ := newService(t, Options{DefaultSeed: 3})
	state, err := svc.StartCombat(StartRequest{PlayerUUID: "p1", Enemies: []string{"imp"}})
	require.NoError(t, err)

	_, err = svc.Resume("p1", state.ID, ResumeRequest{Kind: "teleport"})
	assert.ErrorIs(t, err, ErrUnknownResume)
	_, err = svc.Resume("p1", state.ID, ResumeRequest{Kind: "discard", CardIDs: []string{"c1"}})
	assert.ErrorIs(t, err, ErrCommandRejected)
	_, err = svc.Resume("", state.ID, ResumeRequest{Kind: "discard"})
	assert.ErrorIs(t, err, ErrPlayerRequired)
}

func TestEndTurnAdvancesAndPersists(t *testing.T) {
	svc, repo := newService(t, Options{DefaultSeed: 11})
	state, err := svc.StartCombat(StartRequest{PlayerUUID: "p1", Enemies: []string{"imp"}})
	require.NoError(t, err)

	next, err := svc.EndTurn("p1", state.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, next.Turn)
	assert.Equal(t, 1, repo.saves)
	assert.Less(t, next.Player.HP, next.Player.MaxHP)
}

func TestReadsMapMissingRecords(t *testing.T) {
	svc, _ := newService(t, Options{})
	_, err := svc.GetCombat(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCombatNotFound)
	_, err = svc.GetProfile("nobody")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	entries, err := svc.GetCollection(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLeaderboardClampsLimit(t *testing.T) {
	svc, repo := newService(t, Options{})
	_, _ = svc.Leaderboard(0)
	assert.Equal(t, 10, repo.topLimit)
	_, _ = svc.Leaderboard(1000)
	assert.Equal(t, 100, repo.topLimit)
}
