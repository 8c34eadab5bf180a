package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Episode is one finished episode.
type Episode struct {
	ID          string
	EnvID       string
	Seed        int64
	Steps       int
	Length      int
	FoodEaten   int
	TotalReward float64
	DeathCause  string
	Actions     []int
	CreatedAt   time.Time
}

// EnvStats contains aggregated statistics for an environment.
type EnvStats struct {
	EnvID      string
	Episodes   int
	BestReward float64
	AvgReward  float64
	MaxLength  int
	LastPlayed time.Time
}

const episodeColumns = `id, env_id, seed, steps, length, food_eaten, total_reward, death_cause, actions, created_at`

// EncodeActions packs an action trace as one digit per action.
func EncodeActions(actions []int) (string, error) {
	var sb strings.Builder
	sb.Grow(len(actions))
	for i, a := range actions {
		if a < 0 || a > 9 {
			return "", fmt.Errorf("storage: action %d at %d does not fit the trace encoding", a, i)
		}
		sb.WriteByte(byte('0' + a))
	}
	return sb.String(), nil
}

// DecodeActions reverses EncodeActions.
func DecodeActions(s string) ([]int, error) {
	out := make([]int, len(s))
	for i := range len(s) {
		c := s[i]
		if c < '0' || c > '9' {
			return nil, fmt.Errorf("storage: bad action byte %q at %d", c, i)
		}
		out[i] = int(c - '0')
	}
	return out, nil
}

// SaveEpisode records an episode. A missing ID or timestamp is filled in.
// Returns the episode ID.
func (s *Store) SaveEpisode(e Episode) (string, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	trace, err := EncodeActions(e.Actions)
	if err != nil {
		return "", err
	}

	_, err = s.db.Exec(
		s.rebind(`INSERT INTO episodes (`+episodeColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		e.ID, e.EnvID, e.Seed, e.Steps, e.Length, e.FoodEaten,
		e.TotalReward, e.DeathCause, trace, e.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save episode: %w", err)
	}
	return e.ID, nil
}

// TopEpisodes retrieves the best N episodes for an environment, ordered by
// total reward, then length, then fewer steps.
func (s *Store) TopEpisodes(envID string, limit int) ([]Episode, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryEpisodes(
		`SELECT `+episodeColumns+`
		 FROM episodes
		 WHERE env_id = ?
		 ORDER BY total_reward DESC, length DESC, steps ASC
		 LIMIT ?`,
		envID, limit,
	)
}

// RecentEpisodes retrieves the most recent episodes across environments.
func (s *Store) RecentEpisodes(limit int) ([]Episode, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryEpisodes(
		`SELECT `+episodeColumns+`
		 FROM episodes
		 ORDER BY created_at DESC
		 LIMIT ?`,
		limit,
	)
}

// EpisodeByID retrieves an episode. Returns nil if it does not exist.
func (s *Store) EpisodeByID(id string) (*Episode, error) {
	row := s.db.QueryRow(s.rebind(`SELECT `+episodeColumns+` FROM episodes WHERE id = ?`), id)
	e, err := scanEpisode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query episode: %w", err)
	}
	return &e, nil
}

// EnvStats retrieves aggregated statistics for an environment.
func (s *Store) EnvStats(envID string) (*EnvStats, error) {
	stats := &EnvStats{EnvID: envID}

	err := s.db.QueryRow(
		s.rebind(`SELECT COUNT(*), COALESCE(MAX(total_reward), 0), COALESCE(AVG(total_reward), 0), COALESCE(MAX(length), 0)
		 FROM episodes WHERE env_id = ?`),
		envID,
	).Scan(&stats.Episodes, &stats.BestReward, &stats.AvgReward, &stats.MaxLength)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get env stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		s.rebind(`SELECT created_at FROM episodes WHERE env_id = ? ORDER BY created_at DESC LIMIT 1`),
		envID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// ClearEpisodes deletes all episodes for an environment.
func (s *Store) ClearEpisodes(envID string) error {
	_, err := s.db.Exec(s.rebind("DELETE FROM episodes WHERE env_id = ?"), envID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear episodes: %w", err)
	}
	return nil
}

func (s *Store) queryEpisodes(query string, args ...any) ([]Episode, error) {
	rows, err := s.db.Query(s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query episodes: %w", err)
	}
	defer rows.Close()

	var episodes []Episode
	for rows.Next() {
		e, err := scanEpisode(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		episodes = append(episodes, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return episodes, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEpisode(sc scanner) (Episode, error) {
	var e Episode
	var trace string
	var createdAt any
	err := sc.Scan(&e.ID, &e.EnvID, &e.Seed, &e.Steps, &e.Length, &e.FoodEaten,
		&e.TotalReward, &e.DeathCause, &trace, &createdAt)
	if err != nil {
		return e, err
	}
	if e.Actions, err = DecodeActions(trace); err != nil {
		return e, err
	}
	e.CreatedAt = parseTime(createdAt)
	return e, nil
}
