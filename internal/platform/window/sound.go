package window

import (
	"bytes"
	"fmt"
	"io"

	ebitenaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// sampleRate matches the rate the cue WAVs are encoded at.
const sampleRate = 44100

// Sound plays cues through the Ebitengine audio context. Each Play starts a
// fresh player so overlapping cues mix.
type Sound struct {
	ctx *ebitenaudio.Context
	pcm map[core.Cue][]byte
}

// NewSound decodes the cue WAVs once. Only one audio context may exist per
// process, so at most one Sound should be created.
func NewSound(sounds map[core.Cue][]byte) (*Sound, error) {
	s := &Sound{
		ctx: ebitenaudio.NewContext(sampleRate),
		pcm: make(map[core.Cue][]byte, len(sounds)),
	}
	for cue, data := range sounds {
		stream, err := wav.DecodeWithoutResampling(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("window: decode %s: %w", cue, err)
		}
		pcm, err := io.ReadAll(stream)
		if err != nil {
			return nil, fmt.Errorf("window: read %s: %w", cue, err)
		}
		s.pcm[cue] = pcm
	}
	return s, nil
}

// Play starts cue and returns immediately.
func (s *Sound) Play(cue core.Cue) {
	pcm, ok := s.pcm[cue]
	if !ok {
		return
	}
	s.ctx.NewPlayerFromBytes(pcm).Play()
}
