package capture

import "sync"

// frameQueue hands frames from the platform audio callback to the consumer
// goroutine. Pop blocks until a frame is queued or the queue is closed; frames
// come out in push order and are never dropped while the queue is open.
type frameQueue struct {
	mu       sync.Mutex
	nonEmpty *sync.Cond
	frames   [][]int16
	closed   bool
}

func newFrameQueue() *frameQueue {
	q := &frameQueue{}
	q.nonEmpty = sync.NewCond(&q.mu)
	return q
}

// push appends a frame. Frames pushed after close are discarded.
func (q *frameQueue) push(frame []int16) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.frames = append(q.frames, frame)
	q.nonEmpty.Signal()
}

// pop blocks for the next frame. ok=false means the queue was closed and
// drained.
func (q *frameQueue) pop() (frame []int16, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.frames) == 0 && !q.closed {
		q.nonEmpty.Wait()
	}
	if len(q.frames) == 0 {
		return nil, false
	}

	frame = q.frames[0]
	q.frames = q.frames[1:]
	return frame, true
}

// close unblocks all pending and future pops once buffered frames drain.
func (q *frameQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.nonEmpty.Broadcast()
}
