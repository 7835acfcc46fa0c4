package vis

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgressObserverThinsOutput(t *testing.T) {
	var buf bytes.Buffer
	p := &ProgressObserver{W: &buf, Total: 10, Every: 5}

	for i := 0; i < 10; i++ {
		p.OnFrame(i, 0.5, 1.0, 7)
	}

	if got := strings.Count(buf.String(), "\n"); got != 2 {
		t.Errorf("printed %d lines with Every=5 over 10 frames, want 2", got)
	}
	if !strings.Contains(buf.String(), "frame 1/10") {
		t.Errorf("missing first frame line in output:\n%s", buf.String())
	}
}

func TestProgressObserverDefaultsToEveryFrame(t *testing.T) {
	var buf bytes.Buffer
	p := &ProgressObserver{W: &buf, Total: 3}

	for i := 0; i < 3; i++ {
		p.OnFrame(i, 0, 0, 0)
	}
	if got := strings.Count(buf.String(), "\n"); got != 3 {
		t.Errorf("printed %d lines, want 3", got)
	}
}
