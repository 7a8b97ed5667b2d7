package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

type stubGame struct{ high int }

func (s *stubGame) ID() string { return "stub" }
func (s *stubGame) Title() string { return "Stub" }
func (s *stubGame) Reset(core.RuntimeConfig) {}
func (s *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (s *stubGame) Render(*core.Screen) {}
func (s *stubGame) State() core.GameState { return core.GameState{HighScore: s.high} }
func (s *stubGame) SetHighScore(score int) { s.high = score }

func TestRegisterCreate(t *testing.T) {
	Register(GameInfo{ID: "stub-a", Title: "Stub A"}, func(Deps) Game { return &stubGame{} })
	Register(GameInfo{ID: "stub-b", Title: "Stub B"}, func(Deps) Game { return &stubGame{} })
	t.Cleanup(func() {
		unregister("stub-a")
		unregister("stub-b")
	})

	if !Exists("stub-a") {
		t.Error("stub-a should exist")
	}

	list := List()
	if len(list) != 2 || list[0].ID != "stub-a" || list[1].ID != "stub-b" {
		t.Errorf("List() = %+v, expected sorted stubs", list)
	}

	g, err := Create("stub-b", Deps{})
	if err != nil || g == nil {
		t.Fatalf("Create(stub-b) = %v, %v", g, err)
	}

	if _, err := Create("missing", Deps{}); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("Create(missing) = %v, expected ErrUnknownVariant", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(GameInfo{ID: "dup"}, func(Deps) Game { return &stubGame{} })
	t.Cleanup(func() { unregister("dup") })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register(GameInfo{ID: "dup"}, func(Deps) Game { return &stubGame{} })
}
