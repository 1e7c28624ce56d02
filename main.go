package main

import (
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/wavplay/internal/app"
	"github.com/llehouerou/wavplay/internal/config"
	"github.com/llehouerou/wavplay/internal/errmsg"
	"github.com/llehouerou/wavplay/internal/mpris"
	"github.com/llehouerou/wavplay/internal/notify"
	"github.com/llehouerou/wavplay/internal/output"
	"github.com/llehouerou/wavplay/internal/playback"
	"github.com/llehouerou/wavplay/internal/player"
	"github.com/llehouerou/wavplay/internal/playlist"
	"github.com/llehouerou/wavplay/internal/state"
	"github.com/llehouerou/wavplay/internal/stderr"
)

// setupLogging sends the global logger to path. The TUI owns the terminal,
// so nothing is logged to stdout or stderr.
func setupLogging(path string, level zerolog.Level) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano
	log.Logger = zerolog.New(f).Level(level).With().Timestamp().Logger()
	return f, nil
}

// openSession returns the session store and the saved session for dir.
// Failures are logged and disable session memory.
func openSession(dir string) (*state.Manager, *state.Session) {
	mgr, err := state.Open()
	if err != nil {
		log.Warn().Err(err).Msg("session state unavailable")
		return nil, nil
	}
	saved, err := mgr.GetSession(dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("read session")
	}
	return mgr, saved
}

func fail(op errmsg.Op, context string, err error) {
	stderr.WriteOriginal(errmsg.FormatWith(op, context, err) + "\n")
	os.Exit(1)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail(errmsg.OpConfigLoad, "", err)
	}

	logFile, err := setupLogging(cfg.LogFile, cfg.Level())
	if err != nil {
		fail(errmsg.OpLogOpen, cfg.LogFile, err)
	}
	defer logFile.Close()

	// Capture fd 2 before the audio backend is initialised.
	if err := stderr.Start(); err != nil {
		log.Warn().Err(err).Msg("stderr capture unavailable")
	}

	code := run(cfg)
	stderr.Stop()
	if code != 0 {
		os.Exit(code)
	}
}

func run(cfg *config.Config) int {
	if abs, err := filepath.Abs(cfg.PlaylistDir); err == nil {
		cfg.PlaylistDir = abs
	}

	list, skipped, err := playlist.Scan(cfg.PlaylistDir)
	if err != nil {
		stderr.WriteOriginal(errmsg.FormatWith(errmsg.OpPlaylistScan, cfg.PlaylistDir, err) + "\n")
		return 1
	}
	for _, s := range skipped {
		log.Warn().Err(s.Err).Str("path", s.Path).Msg("skipping file")
	}
	log.Info().
		Str("dir", cfg.PlaylistDir).
		Int("songs", list.Len()).
		Int("skipped", len(skipped)).
		Msg("playlist scanned")

	queues := player.NewQueues()
	engine := player.New(queues, player.WithSkip(cfg.Skip()))

	sink, err := output.Open(engine, cfg.SampleRate, cfg.Buffer())
	if err != nil {
		stderr.WriteOriginal(errmsg.Format(errmsg.OpAudioOpen, err) + "\n")
		return 1
	}
	defer sink.Close()

	ctrl := playback.New(queues, list, playback.NewLoader(),
		playback.WithPrefetch(cfg.PrefetchEnabled()),
		playback.WithRand(rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))),
	)
	defer func() {
		if err := ctrl.Close(); err != nil {
			log.Error().Err(err).Msg("close controller")
		}
	}()

	opts := []app.Option{
		app.WithStderr(stderr.Messages),
		app.WithSkipped(skipped),
	}

	shuffle := cfg.Shuffle
	if cfg.SessionEnabled() {
		if mgr, saved := openSession(cfg.PlaylistDir); mgr != nil {
			defer mgr.Close()
			if saved != nil {
				shuffle = saved.Shuffle
			}
			opts = append(opts, app.WithSession(mgr, cfg.PlaylistDir, saved))
		}
	}
	if shuffle && !list.IsEmpty() {
		ctrl.ToggleShuffle()
	}

	if cfg.Notifications {
		if n, err := notify.New(); err == nil {
			nowPlaying := notify.NewNowPlaying(n)
			defer nowPlaying.Close()
			opts = append(opts, app.WithNowPlaying(nowPlaying))
		}
	}

	if cfg.MPRISEnabled() {
		adapter, err := mpris.New(ctrl)
		if err != nil {
			log.Warn().Err(err).Msg("mpris unavailable")
		} else {
			defer adapter.Close()
		}
	}

	model := app.New(ctrl, opts...)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		stderr.WriteOriginal(errmsg.Format(errmsg.OpInitialize, err) + "\n")
		return 1
	}
	return 0
}
