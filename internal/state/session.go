package state

import (
	"database/sql"
	"errors"
	"time"
)

// Session is what is restored when the same playlist directory is opened
// again. The playback position is not part of it.
type Session struct {
	PlaylistDir  string
	SelectedPath string
	Shuffle      bool
}

func getSession(db *sql.DB, playlistDir string) (*Session, error) {
	row := db.QueryRow(`
		SELECT selected_path, shuffle
		FROM session_state WHERE playlist_dir = ?
	`, playlistDir)

	s := Session{PlaylistDir: playlistDir}
	var selected sql.NullString
	err := row.Scan(&selected, &s.Shuffle)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved session is valid on first run
	}
	if err != nil {
		return nil, err
	}
	if selected.Valid {
		s.SelectedPath = selected.String
	}
	return &s, nil
}

func saveSession(db *sql.DB, s Session) error {
	var selected sql.NullString
	if s.SelectedPath != "" {
		selected = sql.NullString{String: s.SelectedPath, Valid: true}
	}

	_, err := db.Exec(`
		INSERT INTO session_state (playlist_dir, selected_path, shuffle, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(playlist_dir) DO UPDATE SET
			selected_path = excluded.selected_path,
			shuffle = excluded.shuffle,
			updated_at = excluded.updated_at
	`, s.PlaylistDir, selected, s.Shuffle, time.Now().Unix())

	return err
}
