package scheduler

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

type fakeSweeper struct {
	calls int
	err   error
	panik bool
}

func (f *fakeSweeper) ResetAllStatuses(_ context.Context) error {
	f.calls++
	if f.panik {
		panic("sweep meledak")
	}
	return f.err
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestRunSweepCallsSweeper(t *testing.T) {
	sweeper := &fakeSweeper{}
	d, err := NewDailyReset(sweeper, time.UTC, quietLogger())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	d.runSweep()
	if sweeper.calls != 1 {
		t.Errorf("calls = %d, want 1", sweeper.calls)
	}
}

func TestRunSweepSwallowsError(t *testing.T) {
	sweeper := &fakeSweeper{err: errors.New("db mati")}
	d, err := NewDailyReset(sweeper, time.UTC, quietLogger())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	// Tidak boleh panic atau mematikan proses
	d.runSweep()
	if sweeper.calls != 1 {
		t.Errorf("calls = %d, want 1", sweeper.calls)
	}
}

func TestRunSweepRecoversPanic(t *testing.T) {
	sweeper := &fakeSweeper{panik: true}
	d, err := NewDailyReset(sweeper, time.UTC, quietLogger())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	d.runSweep()
	if sweeper.calls != 1 {
		t.Errorf("calls = %d, want 1", sweeper.calls)
	}
}

func TestStartStop(t *testing.T) {
	d, err := NewDailyReset(&fakeSweeper{}, time.UTC, quietLogger())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	d.Start()

	stopped := make(chan struct{})
	go func() {
		d.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop tidak selesai dalam 2 detik")
	}
}
