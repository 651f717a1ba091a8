package registry

import (
	"strings"
	"testing"

	"github.com/jayleekr/hypeprooflab/internal/agent"
	"github.com/jayleekr/hypeprooflab/internal/providers"
)

func testFactory(name string) Factory {
	return func() (*agent.Runner, error) {
		return agent.NewRunner(agent.Definition{
			Name:         name,
			SystemPrompt: "test prompt",
		}, providers.NewMockClient(), nil)
	}
}

func TestRegister(t *testing.T) {
	t.Run("registers factories", func(t *testing.T) {
		r := New(nil)
		if err := r.Register("research", testFactory("research")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !r.Has("research") {
			t.Error("expected registered agent")
		}
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		r := New(nil)
		if err := r.Register("research", testFactory("research")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := r.Register("research", testFactory("research")); err == nil {
			t.Error("expected error for duplicate registration")
		}
	})

	t.Run("rejects empty name", func(t *testing.T) {
		r := New(nil)
		if err := r.Register("", testFactory("x")); err == nil {
			t.Error("expected error for empty name")
		}
	})

	t.Run("rejects nil factory", func(t *testing.T) {
		r := New(nil)
		if err := r.Register("research", nil); err == nil {
			t.Error("expected error for nil factory")
		}
	})
}

func TestGetConstructsLazilyAndOnce(t *testing.T) {
	r := New(nil)

	calls := 0
	err := r.Register("research", func() (*agent.Runner, error) {
		calls++
		return agent.NewRunner(agent.Definition{
			Name:         "research",
			SystemPrompt: "test prompt",
		}, providers.NewMockClient(), nil)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 0 {
		t.Errorf("factory ran at registration: %d", calls)
	}

	first, err := r.Get("research")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := r.Get("research")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Error("expected the same instance on repeated Get")
	}
	if calls != 1 {
		t.Errorf("expected factory to run once, ran %d times", calls)
	}
}

func TestGetUnknownListsAvailable(t *testing.T) {
	r := New(nil)
	if err := r.Register("research", testFactory("research")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register("writing", testFactory("writing")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := r.Get("nonexistent")
	if err == nil {
		t.Fatal("expected error for unknown agent")
	}
	if !strings.Contains(err.Error(), "research") || !strings.Contains(err.Error(), "writing") {
		t.Errorf("expected available agents in error, got: %v", err)
	}
}

func TestListPreservesRegistrationOrder(t *testing.T) {
	r := New(nil)
	for _, name := range []string{"research", "analysis", "writing"} {
		if err := r.Register(name, testFactory(name)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	got := r.List()
	want := []string{"research", "analysis", "writing"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestClearInstances(t *testing.T) {
	r := New(nil)

	calls := 0
	err := r.Register("research", func() (*agent.Runner, error) {
		calls++
		return agent.NewRunner(agent.Definition{
			Name:         "research",
			SystemPrompt: "test prompt",
		}, providers.NewMockClient(), nil)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := r.Get("research"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r.ClearInstances()
	if _, err := r.Get("research"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 2 {
		t.Errorf("expected factory to rerun after clear, ran %d times", calls)
	}
}

func TestFactoryErrorPropagates(t *testing.T) {
	r := New(nil)
	err := r.Register("broken", func() (*agent.Runner, error) {
		return nil, &agent.ConfigError{Msg: "no client"}
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := r.Get("broken"); err == nil {
		t.Error("expected factory error to propagate")
	}
}
