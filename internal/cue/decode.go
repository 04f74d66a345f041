package cue

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
	"github.com/ncruces/zenity"
)

// ErrUnsupportedFormat is returned for sound files that are not wav, mp3 or flac.
var ErrUnsupportedFormat = errors.New("cue: unsupported audio format")

// resampleQuality is passed to beep.Resample when a sound's rate differs
// from the speaker's.
const resampleQuality = 4

// SoundFilters are the file types the picker offers.
var SoundFilters = zenity.FileFilters{{
	Name:     "Audio",
	Patterns: []string{"*.wav", "*.mp3", "*.flac"},
}}

// decodeFile opens path and decodes it by extension. The returned streamer
// owns the file and closes it on Close.
func decodeFile(path string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav", ".mp3", ".flac":
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	}
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return streamer, format, nil
}

// loadBuffer decodes path fully into memory at rate sr so it can be
// replayed on every phase change.
func loadBuffer(path string, sr beep.SampleRate) (*beep.Buffer, error) {
	streamer, format, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != sr {
		src = beep.Resample(resampleQuality, format.SampleRate, sr, streamer)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2})
	buf.Append(src)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("%s contains no audio", filepath.Base(path))
	}
	return buf, nil
}
