package main

import (
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/box-breathing/internal/breath"
	"github.com/iburimskiy/box-breathing/internal/config"
	"github.com/iburimskiy/box-breathing/internal/cue"
	"github.com/iburimskiy/box-breathing/internal/game"
	"github.com/iburimskiy/box-breathing/internal/logging"
)

const windowTitle = "Box Breathing - drag the corner to resize, Esc/Q: Quit"

var configPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "boxbreath",
		Short:         "Box breathing pacer",
		Long:          "A dot travels round a rectangle at a constant speed: inhale up the left edge, hold across the top, exhale down the right edge, hold across the bottom.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          run,
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "config file (yaml, json or toml)")
	f.String("log-level", config.LogLevel, "log level: trace, debug, info, warn, error")
	f.Float64("speed", config.Speed, "dot speed in px/s")
	f.Float64("width", config.RectWidth, "initial rectangle width")
	f.Float64("height", config.RectHeight, "initial rectangle height")
	f.Int("window-width", config.WindowWidth, "initial window width")
	f.Int("window-height", config.WindowHeight, "initial window height")
	f.Bool("no-cues", false, "disable audio cues")
	f.String("cue-file", "", "wav, mp3 or flac file played on each phase change")
	f.Float64("volume", config.CueVolume, "cue volume exponent, base 2 (-1 is half)")
	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return fail(zerolog.New(os.Stderr), err)
	}
	log, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return fail(zerolog.New(os.Stderr), err)
	}
	easing, err := game.LookupEasing(cfg.Glow.Easing)
	if err != nil {
		return fail(log, fmt.Errorf("invalid config: glow.easing: %w", err))
	}

	g := game.New(game.Options{
		Width:       cfg.Window.Width,
		Height:      cfg.Window.Height,
		GlowSeconds: cfg.Glow.Seconds,
		GlowEasing:  easing,
		Logger:      log,
	})

	player := newPlayer(cfg, log)
	defer player.Close()

	w := breath.New(breath.Options{
		Width:  cfg.Rect.Width,
		Height: cfg.Rect.Height,
		Speed:  cfg.Speed,
		OnPhaseChange: func(_, next breath.Phase) {
			player.Cue(next)
			g.Pulse()
		},
		Logger: log,
	})
	if err := w.Mount(g.Surface()); err != nil {
		return fail(log, err)
	}
	defer w.Unmount()

	if player.Enabled() {
		g.BindKey(ebiten.KeyO, "O: cue sound", player.PickSound)
		g.BindKey(ebiten.KeyT, "T: tones", func() error {
			player.UseTones()
			return nil
		})
		g.BindKey(ebiten.KeyM, "M: mute", func() error {
			player.ToggleMute()
			return nil
		})
		g.SetLevelMeter(player)
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log.Info().
		Float64("speed", cfg.Speed).
		Float64("width", w.Rect().Width).
		Float64("height", w.Rect().Height).
		Bool("cues", player.Enabled()).
		Msg("starting")

	if err := ebiten.RunGame(g); err != nil && !game.IsTermination(err) {
		return fail(log, err)
	}
	log.Info().Msg("bye")
	return nil
}

// newPlayer opens the audio device. Without one the pacer still runs, silently.
func newPlayer(cfg config.Config, log zerolog.Logger) *cue.Player {
	opts := cue.Options{
		Enabled:   cfg.Cues.Enabled,
		Volume:    cfg.Cues.Volume,
		Length:    time.Duration(cfg.Cues.Millis) * time.Millisecond,
		SoundPath: cfg.Cues.File,
		Logger:    log,
	}
	copy(opts.Tones[:], cfg.Cues.Tones)

	p, err := cue.NewPlayer(opts)
	if err != nil {
		log.Warn().Err(err).Msg("audio unavailable, cues disabled")
		opts.Enabled = false
		p, _ = cue.NewPlayer(opts)
	}
	return p
}

// fail logs err and shows it in a native dialog, since a windowed launch
// has no terminal to read.
func fail(log zerolog.Logger, err error) error {
	log.Error().Err(err).Msg("fatal")
	_ = zenity.Error(err.Error(), zenity.Title("Box Breathing"), zenity.ErrorIcon)
	return err
}
