package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericogr/genesis-combat/internal/game"
)

func newRepo(t *testing.T) Repository {
	t.Helper()
	db, err := OpenAndMigrate(filepath.Join(t.TempDir(), "db", "test.db"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return NewSQLiteRepository(db)
}

func TestCombatRecordRoundTrip(t *testing.T) {
	repo := newRepo(t)
	_, err := repo.GetCombat("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	rec := &game.CombatRecord{ID: "c1", PlayerUUID: "p1", Phase: game.PhasePlayerTurn, Snapshot: []byte(`{"id":"c1"}`)}
	require.NoError(t, repo.CreateCombat(rec))
	rec.Phase = game.PhaseAwaitingDiscard
	require.NoError(t, repo.SaveCombat(rec))

	got, err := repo.GetCombat("c1")
	require.NoError(t, err)
	assert.Equal(t, game.PhaseAwaitingDiscard, got.Phase)
	assert.JSONEq(t, `{"id":"c1"}`, string(got.Snapshot))
	assert.False(t, got.Settled)
}

func TestSeedCollectionOnlyOnce(t *testing.T) {
	repo := newRepo(t)
	require.NoError(t, repo.SeedCollection("p1", []game.CollectionEntry{{ID: "a", TemplateID: "strike"}, {ID: "b", TemplateID: "defend"}}))
	require.NoError(t, repo.SeedCollection("p1", []game.CollectionEntry{{ID: "c", TemplateID: "rend"}}))

	entries, err := repo.GetCollection("p1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "strike", entries[0].TemplateID)
	assert.Equal(t, "defend", entries[1].TemplateID)
	assert.NotNil(t, entries[0].Counters)

	other, err := repo.GetCollection("p2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestSettleCombatAppliesDeltasOnce(t *testing.T) {
	repo := newRepo(t)
	require.NoError(t, repo.SeedCollection("p1", []game.CollectionEntry{
		{ID: "seed-1", TemplateID: "sapling"},
		{ID: "gone-1", TemplateID: "offering"},
	}))
	rec := &game.CombatRecord{ID: "c1", PlayerUUID: "p1", Phase: game.PhasePlayerTurn}
	require.NoError(t, repo.CreateCombat(rec))

	zero := 0
	out := &game.Outcome{Victory: true, Reward: game.Reward{Gold: 15}, Deltas: []game.Delta{
		{Kind: game.DeltaCounter, CollectionID: "seed-1", Counter: "growth", Amount: 1},
		{Kind: game.DeltaCounter, CollectionID: "seed-1", Counter: "growth", Amount: 2},
		{Kind: game.DeltaEvolve, CollectionID: "seed-1", TemplateID: "sapling", Successor: "grove", Counter: "growth"},
		{Kind: game.DeltaRemove, CollectionID: "gone-1", TemplateID: "offering"},
		{Kind: game.DeltaGrant, CollectionID: "c1-9", TemplateID: "echo", CostOverride: &zero},
		{Kind: game.DeltaMaxHPGain, Amount: 4},
	}}
	rec.Phase = game.PhaseVictory
	settle := Settlement{PlayerUUID: "p1", PlayerName: "Ana", Outcome: out}
	require.NoError(t, repo.SettleCombat(rec, settle))
	require.NoError(t, repo.SettleCombat(rec, settle))

	entries, err := repo.GetCollection("p1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "grove", entries[0].TemplateID)
	assert.NotContains(t, entries[0].Counters, "growth")
	assert.Equal(t, "echo", entries[1].TemplateID)
	require.NotNil(t, entries[1].CostOverride)
	assert.Equal(t, 0, *entries[1].CostOverride)

	p, err := repo.GetProfile("p1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.PlayerName)
	assert.Equal(t, 1, p.CombatsPlayed)
	assert.Equal(t, 1, p.Victories)
	assert.Equal(t, 15, p.Gold)
	assert.Equal(t, 4, p.MaxHPBonus)

	got, err := repo.GetCombat("c1")
	require.NoError(t, err)
	assert.True(t, got.Settled)
	assert.Equal(t, game.PhaseVictory, got.Phase)
}

func TestSettleCounterKeepsLatestValue(t *testing.T) {
	repo := newRepo(t)
	require.NoError(t, repo.SeedCollection("p1", []game.CollectionEntry{{ID: "s", TemplateID: "sapling"}}))
	rec := &game.CombatRecord{ID: "c2", PlayerUUID: "p1", Phase: game.PhaseDefeat}
	require.NoError(t, repo.CreateCombat(rec))
	require.NoError(t, repo.SettleCombat(rec, Settlement{PlayerUUID: "p1", Outcome: &game.Outcome{Deltas: []game.Delta{
		{Kind: game.DeltaCounter, CollectionID: "s", Counter: "growth", Amount: 1},
	}}}))

	entries, err := repo.GetCollection("p1")
	require.NoError(t, err)
	assert.Equal(t, 1, entries[0].Counters["growth"])
	p, err := repo.GetProfile("p1")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Defeats)
	assert.Equal(t, 0, p.Gold)
}

func TestTopPlayersOrdering(t *testing.T) {
	repo := newRepo(t)
	for i, id := range []string{"a", "b", "c"} {
		_, err := repo.UpsertProfile(id, id)
		require.NoError(t, err)
		for j := 0; j <= i; j++ {
			rec := &game.CombatRecord{ID: id + string(rune('0'+j)), PlayerUUID: id, Phase: game.PhaseVictory}
			require.NoError(t, repo.CreateCombat(rec))
			require.NoError(t, repo.SettleCombat(rec, Settlement{PlayerUUID: id, Outcome: &game.Outcome{Victory: id != "c"}}))
		}
	}
	top, err := repo.GetTopPlayers(2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "b", top[0].PlayerUUID)
	assert.Equal(t, "a", top[1].PlayerUUID)

	_, err = repo.GetProfile("nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}
