package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestSpinnerIsSilentOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinnerTo(&buf, "Working")
	s.Start()
	s.Stop()
	s.Stop()
	if buf.Len() != 0 {
		t.Fatalf("expected no output off a terminal, got %q", buf.String())
	}
}

func TestSpinnerLabel(t *testing.T) {
	s := NewSpinnerTo(&bytes.Buffer{}, "Publishing")
	if got := s.label(time.Second); got != "Publishing" {
		t.Errorf("label(1s) = %q, want plain message", got)
	}
	if got := s.label(3500 * time.Millisecond); !strings.Contains(got, "(3s)") {
		t.Errorf("label(3.5s) = %q, want elapsed seconds", got)
	}
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s := NewSpinnerTo(&bytes.Buffer{}, "x")
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked without Start")
	}
}
