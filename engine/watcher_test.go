package engine

import (
	"io"
	"strings"
	"testing"
	"time"
)

func TestFdWatcherReportsChunksThenEOF(t *testing.T) {
	w := newFdWatcher(8)
	r := strings.NewReader("hello world")

	w.watch(0, StreamStdout, r)

	var collected []byte
	sawEOF := false
	deadline := time.After(2 * time.Second)
	for !sawEOF {
		select {
		case ev := <-w.events():
			if ev.err != nil {
				if ev.err != io.EOF {
					t.Fatalf("unexpected error %v", ev.err)
				}
				sawEOF = true
				continue
			}
			collected = append(collected, ev.chunk...)
		case <-deadline:
			t.Fatal("timed out waiting for fdWatcher events")
		}
	}

	if string(collected) != "hello world" {
		t.Fatalf("got %q", collected)
	}
}

func TestFdWatcherTagsChildIndexAndStream(t *testing.T) {
	w := newFdWatcher(8)
	w.watch(3, StreamStderr, strings.NewReader("x"))

	ev := <-w.events()
	if ev.childIndex != 3 || ev.stream != StreamStderr {
		t.Fatalf("got childIndex=%d stream=%v", ev.childIndex, ev.stream)
	}
}

func TestFdWatcherMultipleDescriptorsShareOneChannel(t *testing.T) {
	w := newFdWatcher(16)
	w.watch(0, StreamStdout, strings.NewReader("a"))
	w.watch(1, StreamStdout, strings.NewReader("b"))

	seen := map[int]bool{}
	deadline := time.After(2 * time.Second)
	for len(seen) < 2 {
		select {
		case ev := <-w.events():
			if ev.err == nil {
				seen[ev.childIndex] = true
			}
		case <-deadline:
			t.Fatal("timed out waiting for both descriptors")
		}
	}
}
