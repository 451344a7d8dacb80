package autoplay

import (
	"testing"
	"time"
)

func newDriver(t *testing.T, interval time.Duration) *Driver {
	t.Helper()
	d, err := New(interval)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = d.Stop() })
	return d
}

func TestDriver_EmitsTicksWhileEnabled(t *testing.T) {
	d := newDriver(t, 50*time.Millisecond)

	if err := d.Sync(true); err != nil {
		t.Fatalf("Sync(true): %v", err)
	}

	for i := 0; i < 2; i++ {
		select {
		case <-d.Ticks():
		case <-time.After(1 * time.Second):
			t.Fatalf("timed out waiting for tick %d", i+1)
		}
	}
}

func TestDriver_EnableTwiceSchedulesOneJob(t *testing.T) {
	d := newDriver(t, 50*time.Millisecond)

	_ = d.Sync(true)
	first := d.jobID
	_ = d.Sync(true)

	if d.jobID != first {
		t.Error("second Sync(true) should not replace the job")
	}
	if n := len(d.scheduler.Jobs()); n != 1 {
		t.Errorf("scheduled jobs = %d, want 1", n)
	}
}

func TestDriver_DisableWithinPeriodYieldsNoTicks(t *testing.T) {
	d := newDriver(t, 300*time.Millisecond)

	_ = d.Sync(true)
	time.Sleep(50 * time.Millisecond)
	_ = d.Sync(false)

	select {
	case <-d.Ticks():
		t.Fatal("no tick expected after disabling within one period")
	case <-time.After(500 * time.Millisecond):
	}

	if d.Running() {
		t.Error("Running() should be false after Sync(false)")
	}
	if n := len(d.scheduler.Jobs()); n != 0 {
		t.Errorf("scheduled jobs = %d, want 0", n)
	}
}

func TestDriver_ReenableAfterDisable(t *testing.T) {
	d := newDriver(t, 50*time.Millisecond)

	_ = d.Sync(true)
	_ = d.Sync(false)
	_ = d.Sync(true)

	select {
	case <-d.Ticks():
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for tick after re-enable")
	}
	if n := len(d.scheduler.Jobs()); n != 1 {
		t.Errorf("scheduled jobs = %d, want 1", n)
	}
}

func TestDriver_StopCancels(t *testing.T) {
	d, err := New(50 * time.Millisecond)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_ = d.Sync(true)

	if err := d.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if d.Running() {
		t.Error("Running() should be false after Stop")
	}
	if err := d.Sync(true); err != nil {
		t.Errorf("Sync after Stop should be a no-op, got %v", err)
	}

	select {
	case <-d.Ticks():
		t.Fatal("no tick expected after Stop")
	case <-time.After(200 * time.Millisecond):
	}

	if err := d.Stop(); err != nil {
		t.Errorf("second Stop should be a no-op, got %v", err)
	}
}

func TestNew_DefaultInterval(t *testing.T) {
	d := newDriver(t, 0)
	if d.Interval() != DefaultInterval {
		t.Errorf("Interval() = %s, want %s", d.Interval(), DefaultInterval)
	}
}

func TestDriver_NoTickQueuedAfterDisableRace(t *testing.T) {
	d := newDriver(t, time.Minute)

	for i := 0; i < 200; i++ {
		if err := d.Sync(true); err != nil {
			t.Fatalf("Sync(true): %v", err)
		}

		done := make(chan struct{})
		go func() {
			d.fire()
			close(done)
		}()
		_ = d.Sync(false)
		<-done

		if n := len(d.ticks); n != 0 {
			t.Fatalf("iteration %d: %d tick(s) queued after Sync(false)", i, n)
		}
	}
}
