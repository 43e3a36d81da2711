package engine

import (
	"bytes"
	"testing"
)

func TestLineBufferFeedSplitsOnNewline(t *testing.T) {
	lb := newLineBuffer(1024)
	var got [][]byte
	emit := func(line []byte) {
		cp := append([]byte{}, line...)
		got = append(got, cp)
	}

	lb.feed([]byte("first\nsecond\nthir"), emit)
	lb.feed([]byte("d\n"), emit)

	want := []string{"first\n", "second\n", "third\n"}
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(got), len(want), got)
	}
	for i, w := range want {
		if string(got[i]) != w {
			t.Errorf("line %d: got %q, want %q", i, got[i], w)
		}
	}
}

func TestLineBufferFeedAcrossChunkBoundaries(t *testing.T) {
	lb := newLineBuffer(1024)
	var got []string
	emit := func(line []byte) { got = append(got, string(line)) }

	for _, b := range []byte("hello\n") {
		lb.feed([]byte{b}, emit)
	}

	if len(got) != 1 || got[0] != "hello\n" {
		t.Fatalf("got %v", got)
	}
}

// TestLineBufferOversizeForcesSyntheticNewline exercises the oversize
// branch: once offset has reached max, the next byte to arrive (the
// triggering byte) forces a synthetic newline and the emission of the
// full line, then starts the next line, even if that byte was itself a
// real newline.
func TestLineBufferOversizeForcesSyntheticNewline(t *testing.T) {
	lb := newLineBuffer(4)
	var got []string
	emit := func(line []byte) { got = append(got, string(line)) }

	lb.feed([]byte("abcd"), emit)
	if len(got) != 0 {
		t.Fatalf("expected no emission until a byte arrives past the 4-byte bound, got %v", got)
	}

	lb.feed([]byte("\n"), emit)
	if len(got) != 2 || got[0] != "abcd\n" || got[1] != "\n" {
		t.Fatalf("expected the triggering newline preserved as its own line, got %v", got)
	}
}

func TestLineBufferFinalizeFlushesPartialLine(t *testing.T) {
	lb := newLineBuffer(1024)
	var got []string
	emit := func(line []byte) { got = append(got, string(line)) }

	lb.feed([]byte("no newline yet"), emit)
	if len(got) != 0 {
		t.Fatalf("expected no emission before finalize, got %v", got)
	}

	lb.finalize(emit)
	if len(got) != 1 || got[0] != "no newline yet\n" {
		t.Fatalf("expected finalize to force a trailing newline, got %v", got)
	}
}

func TestLineBufferFinalizeNoopWhenEmpty(t *testing.T) {
	lb := newLineBuffer(1024)
	called := false
	lb.finalize(func([]byte) { called = true })
	if called {
		t.Fatal("finalize should not emit when nothing is buffered")
	}
}

func TestJoinBufferFeedTruncatesSilently(t *testing.T) {
	jb := newJoinBuffer(5)
	jb.feed([]byte("hello world"))
	if got := jb.finalize(); !bytes.Equal(got, []byte("hello")) {
		t.Fatalf("got %q, want truncated to 5 bytes", got)
	}
}

func TestJoinBufferFeedAccumulatesAcrossCalls(t *testing.T) {
	jb := newJoinBuffer(1024)
	jb.feed([]byte("foo"))
	jb.feed([]byte("bar"))
	if got := jb.finalize(); string(got) != "foobar" {
		t.Fatalf("got %q", got)
	}
}

func TestJoinBufferFeedAtExactCapacityDropsRemainder(t *testing.T) {
	jb := newJoinBuffer(3)
	jb.feed([]byte("abc"))
	jb.feed([]byte("def"))
	if got := jb.finalize(); string(got) != "abc" {
		t.Fatalf("got %q", got)
	}
}
