// Package audio plays the game's sound cues on the host speaker.
package audio

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// Player fires audio cues. Play must not block the game loop.
type Player interface {
	Play(cue core.Cue)
}

// Nop is a Player that discards every cue.
type Nop struct{}

// Play does nothing.
func (Nop) Play(core.Cue) {}

// Recorder is a Player that remembers the cues it was asked to play.
type Recorder struct {
	mu   sync.Mutex
	cues []core.Cue
}

// Play records cue.
func (r *Recorder) Play(cue core.Cue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cues = append(r.cues, cue)
}

// Cues returns a copy of everything played so far.
func (r *Recorder) Cues() []core.Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]core.Cue(nil), r.cues...)
}

// Speaker plays decoded cues through the beep speaker. Overlapping cues are
// mixed.
type Speaker struct {
	mu      sync.Mutex
	buffers map[core.Cue]*beep.Buffer
}

// Decode turns encoded WAV sounds into playable buffers at the speaker rate.
func Decode(sounds map[core.Cue][]byte) (map[core.Cue]*beep.Buffer, error) {
	buffers := make(map[core.Cue]*beep.Buffer, len(sounds))
	for cue, data := range sounds {
		s, format, err := wav.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("audio: decode %s: %w", cue, err)
		}
		var src beep.Streamer = s
		if format.SampleRate != sampleRate {
			src = beep.Resample(4, format.SampleRate, sampleRate, s)
		}
		buf := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
		buf.Append(src)
		s.Close()
		buffers[cue] = buf
	}
	return buffers, nil
}

// NewSpeaker decodes the sounds and opens the audio device. Failure to open
// the device is returned to the caller, who treats it as fatal.
func NewSpeaker(sounds map[core.Cue][]byte) (*Speaker, error) {
	buffers, err := Decode(sounds)
	if err != nil {
		return nil, err
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return nil, fmt.Errorf("audio: init speaker: %w", err)
	}
	return &Speaker{buffers: buffers}, nil
}

// Play starts the cue and returns immediately.
func (s *Speaker) Play(cue core.Cue) {
	s.mu.Lock()
	buf, ok := s.buffers[cue]
	s.mu.Unlock()
	if !ok {
		return
	}
	speaker.Play(buf.Streamer(0, buf.Len()))
}

// Close stops playback and releases the device.
func (s *Speaker) Close() {
	speaker.Clear()
	speaker.Close()
}
