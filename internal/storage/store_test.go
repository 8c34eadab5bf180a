package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
	if store.Dialect() != DialectSQLite {
		t.Errorf("Dialect() = %q, want sqlite", store.Dialect())
	}
}

func TestDialectFor(t *testing.T) {
	tests := []struct {
		dsn  string
		want Dialect
	}{
		{"~/.snake-env/episodes.db", DialectSQLite},
		{"/tmp/x.db", DialectSQLite},
		{"postgres://user:pw@localhost/snake?sslmode=disable", DialectPostgres},
		{"postgresql://localhost/snake", DialectPostgres},
	}
	for _, tt := range tests {
		if got := DialectFor(tt.dsn); got != tt.want {
			t.Errorf("DialectFor(%q) = %q, want %q", tt.dsn, got, tt.want)
		}
	}
}

func TestRebindDollar(t *testing.T) {
	got := rebindDollar("SELECT a FROM t WHERE x = ? AND y = ? LIMIT ?")
	want := "SELECT a FROM t WHERE x = $1 AND y = $2 LIMIT $3"
	if got != want {
		t.Errorf("rebindDollar = %q, want %q", got, want)
	}

	s := &Store{dialect: DialectSQLite}
	if q := "SELECT ?"; s.rebind(q) != q {
		t.Error("sqlite queries must not be rewritten")
	}
}

func TestActionTraceEncoding(t *testing.T) {
	actions := []int{0, 1, 2, 3, 3, 1}
	enc, err := EncodeActions(actions)
	if err != nil {
		t.Fatal(err)
	}
	if enc != "012331" {
		t.Errorf("EncodeActions = %q", enc)
	}
	dec, err := DecodeActions(enc)
	if err != nil || !reflect.DeepEqual(dec, actions) {
		t.Errorf("DecodeActions = %v, %v", dec, err)
	}

	if _, err := EncodeActions([]int{12}); err == nil {
		t.Error("expected error for out-of-range action")
	}
	if _, err := DecodeActions("01x"); err == nil {
		t.Error("expected error for bad trace")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	episodes := []Episode{
		{EnvID: "snake", Seed: 1, Steps: 40, Length: 4, FoodEaten: 1, TotalReward: 0, DeathCause: "wall", Actions: []int{1, 1, 2}},
		{EnvID: "snake", Seed: 2, Steps: 90, Length: 6, FoodEaten: 3, TotalReward: 20, DeathCause: "self", Actions: []int{0}},
		{EnvID: "snake", Seed: 3, Steps: 10, Length: 3, FoodEaten: 0, TotalReward: -10, DeathCause: "wall"},
		{EnvID: "snake_custom", Seed: 4, Steps: 7, Length: 3, TotalReward: -10, DeathCause: "wall"},
	}
	ids := make([]string, len(episodes))
	for i, e := range episodes {
		id, err := store.SaveEpisode(e)
		if err != nil {
			t.Fatalf("SaveEpisode() failed: %v", err)
		}
		if id == "" {
			t.Fatal("SaveEpisode() returned empty ID")
		}
		ids[i] = id
	}

	top, err := store.TopEpisodes("snake", 10)
	if err != nil {
		t.Fatalf("TopEpisodes() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 episodes, got %d", len(top))
	}
	wantSeeds := []int64{2, 1, 3}
	for i, e := range top {
		if e.Seed != wantSeeds[i] {
			t.Errorf("top[%d].Seed = %d, want %d", i, e.Seed, wantSeeds[i])
		}
	}
	if !reflect.DeepEqual(top[1].Actions, []int{1, 1, 2}) {
		t.Errorf("actions = %v", top[1].Actions)
	}
	if top[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not restored")
	}

	limited, err := store.TopEpisodes("snake", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("limit ignored: got %d", len(limited))
	}

	got, err := store.EpisodeByID(ids[3])
	if err != nil {
		t.Fatalf("EpisodeByID() failed: %v", err)
	}
	if got == nil || got.EnvID != "snake_custom" || got.Steps != 7 || len(got.Actions) != 0 {
		t.Errorf("EpisodeByID() = %+v", got)
	}

	missing, err := store.EpisodeByID("nope")
	if err != nil || missing != nil {
		t.Errorf("EpisodeByID(missing) = %+v, %v", missing, err)
	}
}

func TestRecentEpisodes(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := range 3 {
		e := Episode{EnvID: "snake", Seed: int64(i), DeathCause: "wall", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if _, err := store.SaveEpisode(e); err != nil {
			t.Fatal(err)
		}
	}

	recent, err := store.RecentEpisodes(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 || recent[0].Seed != 2 || recent[1].Seed != 1 {
		t.Errorf("RecentEpisodes = %+v", recent)
	}
}

func TestEnvStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.EnvStats("snake")
	if err != nil {
		t.Fatalf("EnvStats() failed: %v", err)
	}
	if empty.Episodes != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	for _, r := range []float64{10, -10, 30} {
		if _, err := store.SaveEpisode(Episode{EnvID: "snake", TotalReward: r, Length: 3 + int(r/10), DeathCause: "wall"}); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := store.EnvStats("snake")
	if err != nil {
		t.Fatal(err)
	}
	if stats.Episodes != 3 || stats.BestReward != 30 || stats.AvgReward != 10 || stats.MaxLength != 6 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}
}

func TestClearEpisodes(t *testing.T) {
	store := openTestStore(t)

	store.SaveEpisode(Episode{EnvID: "snake", DeathCause: "wall"})
	store.SaveEpisode(Episode{EnvID: "snake_custom", DeathCause: "wall"})

	if err := store.ClearEpisodes("snake"); err != nil {
		t.Fatalf("ClearEpisodes() failed: %v", err)
	}

	left, _ := store.TopEpisodes("snake", 10)
	if len(left) != 0 {
		t.Errorf("Expected 0 episodes after clear, got %d", len(left))
	}
	other, _ := store.TopEpisodes("snake_custom", 10)
	if len(other) != 1 {
		t.Errorf("Other env should keep its episodes, got %d", len(other))
	}
}
