package audio

import (
	"testing"

	"github.com/vovakirdan/flappy-arcade/internal/assets"
	"github.com/vovakirdan/flappy-arcade/internal/core"
)

func TestDecodeSynthesized(t *testing.T) {
	sounds, err := assets.SynthesizeSounds()
	if err != nil {
		t.Fatal(err)
	}

	buffers, err := Decode(sounds)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for _, cue := range core.AllCues() {
		buf, ok := buffers[cue]
		if !ok || buf.Len() == 0 {
			t.Errorf("%s: missing or empty buffer", cue)
		}
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode(map[core.Cue][]byte{core.CueHit: []byte("RIFF but not really")})
	if err == nil {
		t.Error("expected decode error")
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	var p Player = &r
	p.Play(core.CueHit)
	p.Play(core.CueDie)

	got := r.Cues()
	if len(got) != 2 || got[0] != core.CueHit || got[1] != core.CueDie {
		t.Errorf("Cues() = %v", got)
	}

	Nop{}.Play(core.CueFlap)
}
