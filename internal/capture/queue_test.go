package capture

import (
	"testing"
	"time"
)

func TestFrameQueueOrdering(t *testing.T) {
	q := newFrameQueue()
	q.push([]int16{1})
	q.push([]int16{2})
	q.push([]int16{3})

	for want := int16(1); want <= 3; want++ {
		frame, ok := q.pop()
		if !ok {
			t.Fatalf("pop() ok = false with %d frames remaining", 4-want)
		}
		if len(frame) != 1 || frame[0] != want {
			t.Errorf("pop() = %v, want [%d]", frame, want)
		}
	}
}

func TestFrameQueuePopBlocksUntilPush(t *testing.T) {
	q := newFrameQueue()
	got := make(chan []int16)

	go func() {
		frame, ok := q.pop()
		if !ok {
			t.Error("pop() ok = false, want true")
		}
		got <- frame
	}()

	// Give the consumer a moment to block before delivering.
	time.Sleep(10 * time.Millisecond)
	q.push([]int16{7})

	select {
	case frame := <-got:
		if len(frame) != 1 || frame[0] != 7 {
			t.Errorf("pop() = %v, want [7]", frame)
		}
	case <-time.After(time.Second):
		t.Fatal("pop() did not return after push")
	}
}

func TestFrameQueueCloseDrainsBufferedFrames(t *testing.T) {
	q := newFrameQueue()
	q.push([]int16{1})
	q.push([]int16{2})
	q.close()

	if frame, ok := q.pop(); !ok || frame[0] != 1 {
		t.Errorf("pop() = %v, %v; want [1], true", frame, ok)
	}
	if frame, ok := q.pop(); !ok || frame[0] != 2 {
		t.Errorf("pop() = %v, %v; want [2], true", frame, ok)
	}
	if _, ok := q.pop(); ok {
		t.Error("pop() ok = true on a closed, drained queue")
	}
}

func TestFrameQueueCloseUnblocksPendingPop(t *testing.T) {
	q := newFrameQueue()
	done := make(chan bool)

	go func() {
		_, ok := q.pop()
		done <- ok
	}()

	time.Sleep(10 * time.Millisecond)
	q.close()

	select {
	case ok := <-done:
		if ok {
			t.Error("pop() ok = true after close, want false")
		}
	case <-time.After(time.Second):
		t.Fatal("pop() did not return after close")
	}
}

func TestFrameQueueDiscardsPushAfterClose(t *testing.T) {
	q := newFrameQueue()
	q.close()
	q.push([]int16{1})

	if _, ok := q.pop(); ok {
		t.Error("pop() returned a frame pushed after close")
	}
}
