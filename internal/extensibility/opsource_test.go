package extensibility

import (
	"testing"
	"time"

	"github.com/comalice/gearbox/internal/core"
)

func TestChannelOpSource(t *testing.T) {
	ch := make(chan core.Op, 1)
	src := NewChannelOpSource(ch)

	ch <- core.IncreaseGear
	select {
	case got := <-src.Ops():
		if got != core.IncreaseGear {
			t.Errorf("Expected increase-gear, got %v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("Op not delivered")
	}
}

func TestTimerOpSource(t *testing.T) {
	src := NewTimerOpSource(core.IncreaseSpeed, 5*time.Millisecond)

	timeout := time.After(2 * time.Second)
	for received := 0; received < 3; received++ {
		select {
		case op := <-src.Ops():
			if op != core.IncreaseSpeed {
				t.Fatalf("Expected increase-speed, got %v", op)
			}
		case <-timeout:
			t.Fatalf("Only %d ops received before timeout", received)
		}
	}

	src.Stop()
	src.Stop()

	// Drain until closed.
	for {
		select {
		case _, ok := <-src.Ops():
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("Channel not closed after Stop")
		}
	}
}

func TestScriptOpSource(t *testing.T) {
	script, err := core.ParseScript([]string{"+s x3", "+g", "-s"})
	if err != nil {
		t.Fatal(err)
	}

	var got []core.Op
	for op := range NewScriptOpSource(script).Ops() {
		got = append(got, op)
	}

	want := []core.Op{core.IncreaseSpeed, core.IncreaseSpeed, core.IncreaseSpeed, core.IncreaseGear, core.DecreaseSpeed}
	if len(got) != len(want) {
		t.Fatalf("Expected %d ops, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("op %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestScriptOpSource_HugeRepeat(t *testing.T) {
	script, err := core.ParseScript([]string{
		"+s x4000000000000000000",
		"+s x4000000000000000000",
		"+s x4000000000000000000",
	})
	if err != nil {
		t.Fatal(err)
	}

	src := NewScriptOpSource(script)
	for i := 0; i < 5; i++ {
		select {
		case op := <-src.Ops():
			if op != core.IncreaseSpeed {
				t.Fatalf("Expected increase-speed, got %v", op)
			}
		case <-time.After(time.Second):
			t.Fatalf("Only %d ops received before timeout", i)
		}
	}

	src.Stop()
	src.Stop()

	timeout := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-src.Ops():
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("Channel not closed after Stop")
		}
	}
}
