package cue

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/ncruces/zenity"
	"github.com/rs/zerolog"

	"github.com/iburimskiy/box-breathing/internal/breath"
)

const (
	SampleRate beep.SampleRate = 44100

	// ~46ms of audio at SampleRate feeds the halo level.
	levelRingSize = 2048
)

// Output plays a streamer. The speaker implementation mixes it in on the
// audio goroutine.
type Output interface {
	Play(s beep.Streamer)
	Stop()
}

type speakerOutput struct{}

func (speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }

func (speakerOutput) Stop() {
	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()
}

// Options configures a Player.
type Options struct {
	Enabled bool
	// Volume is a beep volume exponent with base 2: 0 is unchanged, -1 is half.
	Volume float64
	Length time.Duration
	// Tones holds one frequency per phase, in Phase order.
	Tones [4]float64
	// SoundPath, if set, replaces the tones with a wav/mp3/flac file.
	SoundPath string
	Logger    zerolog.Logger
}

// Player plays a short audio cue whenever the breathing phase changes.
// Cue and Level may be called from the game loop while the speaker
// goroutine streams; state is guarded by mu.
type Player struct {
	sr  beep.SampleRate
	out Output
	tap *levelTap
	log zerolog.Logger

	mu     sync.Mutex
	sound  *beep.Buffer
	muted  bool
	volume float64
	length time.Duration
	tones  [4]float64
}

// NewPlayer initializes the speaker and returns a ready player. With
// Enabled false no audio device is opened and every cue is dropped.
func NewPlayer(opts Options) (*Player, error) {
	if !opts.Enabled {
		return newPlayer(nil, opts), nil
	}
	bufferSize := SampleRate.N(time.Second / 20)
	if err := speaker.Init(SampleRate, bufferSize); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}
	p := newPlayer(speakerOutput{}, opts)
	p.log.Debug().Int("sampleRate", int(SampleRate)).Int("bufferSize", bufferSize).Msg("speaker ready")

	if opts.SoundPath != "" {
		if err := p.Load(opts.SoundPath); err != nil {
			p.log.Warn().Err(err).Str("path", opts.SoundPath).Msg("falling back to tones")
		}
	}
	return p, nil
}

func newPlayer(out Output, opts Options) *Player {
	length := opts.Length
	if length <= 0 {
		length = 150 * time.Millisecond
	}
	return &Player{
		sr:     SampleRate,
		out:    out,
		tap:    newLevelTap(levelRingSize),
		log:    opts.Logger.With().Str("component", "cue").Logger(),
		volume: opts.Volume,
		length: length,
		tones:  opts.Tones,
	}
}

// Enabled reports whether the player has an audio output.
func (p *Player) Enabled() bool { return p.out != nil }

// Cue plays the cue for the phase just entered.
func (p *Player) Cue(phase breath.Phase) {
	if p.out == nil {
		return
	}
	p.mu.Lock()
	if p.muted {
		p.mu.Unlock()
		return
	}
	var src beep.Streamer
	if p.sound != nil {
		src = p.sound.Streamer(0, p.sound.Len())
	} else {
		src = tone(p.sr, p.toneFor(phase), p.length)
	}
	vol := &effects.Volume{Streamer: src, Base: 2, Volume: p.volume}
	p.mu.Unlock()

	p.out.Play(beep.Seq(p.tap.wrap(vol), beep.Callback(p.tap.reset)))
}

func (p *Player) toneFor(phase breath.Phase) float64 {
	i := phase.Edge()
	if i < 0 || i >= len(p.tones) || p.tones[i] <= 0 {
		return 440
	}
	return p.tones[i]
}

// ToggleMute flips muting and returns the new state.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	p.muted = !p.muted
	muted := p.muted
	p.mu.Unlock()

	if muted && p.out != nil {
		p.out.Stop()
		p.tap.reset()
	}
	p.log.Info().Bool("muted", muted).Msg("cues muted")
	return muted
}

// Muted reports whether cues are muted.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Load replaces the tones with the sound in path.
func (p *Player) Load(path string) error {
	buf, err := loadBuffer(path, p.sr)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.sound = buf
	p.mu.Unlock()
	p.log.Info().Str("path", path).Dur("length", p.sr.D(buf.Len())).Msg("cue sound loaded")
	return nil
}

// UseTones drops a loaded sound and goes back to the built-in tones.
func (p *Player) UseTones() {
	p.mu.Lock()
	p.sound = nil
	p.mu.Unlock()
}

// PickSound asks for a sound file with a native dialog and loads it.
// Canceling the dialog is not an error.
func (p *Player) PickSound() error {
	if p.out == nil {
		return nil
	}
	filename, err := zenity.SelectFile(
		zenity.Title("Choose a cue sound"),
		SoundFilters,
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	return p.Load(filename)
}

// Level is the loudness of the cue currently playing, in [0, 1].
func (p *Player) Level() float64 {
	return p.tap.level()
}

// Close stops any cue still playing.
func (p *Player) Close() {
	if p.out != nil {
		p.out.Stop()
	}
}
