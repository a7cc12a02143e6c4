package cleanup

// workQueue is a growable FIFO ring buffer of pixel offsets backing the
// breadth-first flood fill. Dequeue is O(1); a plain slice with
// pop-from-front would shift or leak its backing array on large fills.
type workQueue struct {
	buf  []int32
	head int
	size int
}

func newWorkQueue(capacity int) *workQueue {
	if capacity < 16 {
		capacity = 16
	}
	return &workQueue{buf: make([]int32, capacity)}
}

func (q *workQueue) push(v int32) {
	if q.size == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.size)%len(q.buf)] = v
	q.size++
}

func (q *workQueue) pop() (int32, bool) {
	if q.size == 0 {
		return 0, false
	}
	v := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	return v, true
}

func (q *workQueue) grow() {
	next := make([]int32, len(q.buf)*2)
	for i := 0; i < q.size; i++ {
		next[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.buf = next
	q.head = 0
}
