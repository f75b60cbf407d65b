package clock_test

import (
	"testing"
	"time"

	"github.com/JaimeStill/accord/pkg/clock"
)

func TestSystemAfterDelivers(t *testing.T) {
	c := clock.System()

	select {
	case <-c.After(time.Millisecond):
	case <-time.After(time.Second):
		t.Fatal("System().After never delivered")
	}
}

func TestImmediateAfterDeliversWithoutWaiting(t *testing.T) {
	c := &clock.Immediate{}

	select {
	case <-c.After(time.Hour):
	default:
		t.Fatal("Immediate.After should deliver without blocking")
	}
}

func TestImmediateCountsWaits(t *testing.T) {
	c := &clock.Immediate{}

	for range 3 {
		<-c.After(time.Minute)
	}

	if c.Waits != 3 {
		t.Errorf("Waits = %d, want 3", c.Waits)
	}
}
