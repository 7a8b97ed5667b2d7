package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default Flappy Bird configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: FlappyWorld{
			Width:        520,
			Height:       520,
			GroundHeight: 112,
			MaxFrameDT:   0.1,
		},
		Physics: FlappyPhysics{
			Gravity:      1200,
			FlapStrength: -400,
		},
		Bird: FlappyBird{
			X:              100,
			Y:              260,
			Width:          40,
			Height:         30,
			RotationFactor: 0.05,
			MinRotation:    -90,
			MaxRotation:    25,
			FrameInterval:  0.2,
			Frames:         3,
		},
		Pipes: FlappyPipes{
			Width:          52,
			Gap:            150,
			Margin:         50,
			SpawnOffset:    50,
			SpawnInterval:  1.5,
			Speed:          240,
			AlphaThreshold: 128,
		},
		Scroll: FlappyScroll{
			Background: 180,
			Ground:     300,
		},
	}
}
