package assets

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
	"github.com/orcaman/writerseeker"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// SampleRate of the synthesized cues.
const SampleRate = beep.SampleRate(44100)

var soundFormat = beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}

type toneFunc func(sr beep.SampleRate, freq float64) (beep.Streamer, error)

type note struct {
	tone toneFunc
	freq float64
	dur  time.Duration
}

var recipes = map[core.Cue][]note{
	core.CueFlap: {
		{generators.SquareTone, 420, 30 * time.Millisecond},
		{generators.SquareTone, 620, 40 * time.Millisecond},
	},
	core.CueHit: {
		{generators.SquareTone, 140, 90 * time.Millisecond},
	},
	core.CueDie: {
		{generators.SineTone, 660, 90 * time.Millisecond},
		{generators.SineTone, 520, 90 * time.Millisecond},
		{generators.SineTone, 390, 90 * time.Millisecond},
		{generators.SineTone, 260, 160 * time.Millisecond},
	},
	core.CuePoint: {
		{generators.SineTone, 988, 70 * time.Millisecond},
		{generators.SineTone, 1319, 220 * time.Millisecond},
	},
	core.CueSwoosh: {
		{generators.SawtoothTone, 220, 60 * time.Millisecond},
		{generators.SawtoothTone, 330, 60 * time.Millisecond},
		{generators.SawtoothTone, 440, 60 * time.Millisecond},
		{generators.SawtoothTone, 550, 120 * time.Millisecond},
	},
}

// SynthesizeSounds renders every cue to an in-memory WAV file.
func SynthesizeSounds() (map[core.Cue][]byte, error) {
	sounds := make(map[core.Cue][]byte, len(recipes))
	for _, cue := range core.AllCues() {
		data, err := synthesize(recipes[cue])
		if err != nil {
			return nil, fmt.Errorf("assets: synthesize %s: %w", cue, err)
		}
		sounds[cue] = data
	}
	return sounds, nil
}

func synthesize(notes []note) ([]byte, error) {
	if len(notes) == 0 {
		return nil, errors.New("no notes")
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		s, err := n.tone(SampleRate, n.freq)
		if err != nil {
			return nil, err
		}
		samples := SampleRate.N(n.dur)
		parts = append(parts, decay(beep.Take(samples, s), samples))
	}

	// Half volume, like the reference mix.
	seq := &effects.Volume{Streamer: beep.Seq(parts...), Base: 2, Volume: -1}

	// The encoder seeks back to patch the header sizes.
	ws := &writerseeker.WriterSeeker{}
	if err := wav.Encode(ws, seq, soundFormat); err != nil {
		return nil, err
	}
	return io.ReadAll(ws.Reader())
}

// decay fades s out quadratically over n samples.
func decay(s beep.Streamer, n int) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= n {
			return 0, false
		}
		if len(samples) > n-pos {
			samples = samples[:n-pos]
		}
		k, ok := s.Stream(samples)
		for i := 0; i < k; i++ {
			v := 1 - float64(pos)/float64(n)
			v *= v
			samples[i][0] *= v
			samples[i][1] *= v
			pos++
		}
		return k, ok
	})
}
