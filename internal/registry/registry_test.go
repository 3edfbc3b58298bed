package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/session"
)

type stubGame struct {
	id string
}

func (g stubGame) ID() string                                    { return g.id }
func (g stubGame) Title() string                                 { return "Stub " + g.id }
func (g stubGame) World() core.Vec                               { return core.V(10, 10) }
func (g stubGame) OnStart(*session.Env)                          {}
func (g stubGame) OnTick(*session.Env, float64, core.InputFrame) {}
func (g stubGame) OnDispose()                                    {}
func (g stubGame) Render(*core.Screen, core.Viewport)            {}
func (g stubGame) Description() string                           { return "does nothing" }

func stub(id string) Factory {
	return func() session.Game { return stubGame{id: id} }
}

func TestRegisterAndCreate(t *testing.T) {
	Register("zz-stub-b", stub("zz-stub-b"))
	Register("zz-stub-a", stub("zz-stub-a"))

	g, err := Create("zz-stub-a")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.ID() != "zz-stub-a" {
		t.Errorf("Create() id = %q", g.ID())
	}

	info, ok := Info("zz-stub-a")
	if !ok || info.Title != "Stub zz-stub-a" || info.Description != "does nothing" {
		t.Errorf("Info() = %+v, %v", info, ok)
	}

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("no-such-game")
	if !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Create() error = %v, expected ErrUnknownGame", err)
	}
	if Exists("no-such-game") {
		t.Error("Exists() = true for unknown game")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz-stub-dup", stub("zz-stub-dup"))

	defer func() {
		if recover() == nil {
			t.Error("Register() with duplicate id did not panic")
		}
	}()
	Register("zz-stub-dup", stub("zz-stub-dup"))
}
