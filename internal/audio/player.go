package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"shiftbell/internal/core/alarm"
	"shiftbell/internal/core/model"
	"shiftbell/resources"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

const playbackRate = beep.SampleRate(44100)

// ErrUnavailable indicates the audio output device could not be opened.
var ErrUnavailable = errors.New("audio device unavailable")

// Player renders alarm sounds through the system speaker. Builtin sounds
// loop until stopped; uploaded sounds play once and report completion.
type Player struct{}

// NewPlayer opens the audio output device. Initialization runs once for the
// process lifetime and must not happen inside the tick loop.
func NewPlayer() (*Player, error) {
	if err := speaker.Init(playbackRate, playbackRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &Player{}, nil
}

// Play decodes and starts the sound at the given 0-100 volume, calling done
// when playback ends naturally. Looping builtin sounds never end naturally;
// their session is bounded by dismissal or the safety timeout.
func (player *Player) Play(sound model.SoundSpec, volume int, done func()) (alarm.Playback, error) {
	streamer, format, err := decode(sound)
	if err != nil {
		return nil, err
	}

	var stream beep.Streamer = streamer
	if sound.Origin == model.SoundBuiltin {
		stream = beep.Loop(-1, streamer)
	}
	if format.SampleRate != playbackRate {
		stream = beep.Resample(4, format.SampleRate, playbackRate, stream)
	}
	gain := &effects.Volume{
		Streamer: stream,
		Base:     2,
		Volume:   volumeGain(volume),
		Silent:   volume <= 0,
	}

	finished := func() {}
	if done != nil {
		finished = done
	}
	speaker.Play(beep.Seq(gain, beep.Callback(finished)))
	return playbackHandle{}, nil
}

// playbackHandle stops the active alarm sound. The playing session owns the
// output device exclusively, so stopping clears the whole mixer; the queued
// completion callback is discarded with it.
type playbackHandle struct{}

func (playbackHandle) Stop() {
	speaker.Clear()
}

// decode resolves the spec to raw audio and sniffs the container format.
func decode(sound model.SoundSpec) (beep.StreamSeekCloser, beep.Format, error) {
	data := sound.Data
	if sound.Origin == model.SoundBuiltin {
		loaded, err := resources.Sound(sound.File)
		if err != nil {
			return nil, beep.Format{}, err
		}
		data = loaded
	}
	if len(data) == 0 {
		return nil, beep.Format{}, fmt.Errorf("sound %q has no data", sound.Name)
	}

	if bytes.HasPrefix(data, []byte("RIFF")) {
		streamer, format, err := wav.Decode(reader(data))
		if err != nil {
			return nil, beep.Format{}, fmt.Errorf("decode wav %q: %w", sound.Name, err)
		}
		return streamer, format, nil
	}
	streamer, format, err := mp3.Decode(reader(data))
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("decode %q: %w", sound.Name, err)
	}
	return streamer, format, nil
}

func reader(data []byte) io.ReadCloser {
	return io.NopCloser(bytes.NewReader(data))
}

// volumeGain maps the 0-100 volume to the logarithmic gain expected by
// effects.Volume, where 0 plays at full level.
func volumeGain(volume int) float64 {
	if volume >= 100 {
		return 0
	}
	if volume <= 0 {
		return 0
	}
	return math.Log2(float64(volume) / 100)
}

// Muted is the fallback player used when the output device cannot be opened.
// Every play attempt fails, which keeps alarm sessions on their visual
// overlay and safety-timeout path instead of blocking startup.
type Muted struct{}

// Play always reports the device as unavailable.
func (Muted) Play(model.SoundSpec, int, func()) (alarm.Playback, error) {
	return nil, ErrUnavailable
}
