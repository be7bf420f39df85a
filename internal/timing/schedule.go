package timing

import (
	"time"

	"github.com/vovakirdan/silhouette-runner/internal/entity"
)

// entry is one pending action in the schedule heap.
type entry[K comparable] struct {
	at     time.Duration
	seq    uint64
	token  Token
	owner  entity.ID
	kind   K
	every  time.Duration // >0 for repeating entries
	expiry bool          // fires the end of an effect
	index  int
}

// queue orders entries by fire time, then by insertion sequence.
// Implements heap.Interface.
type queue[K comparable] []*entry[K]

func (q queue[K]) Len() int { return len(q) }

func (q queue[K]) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}

func (q queue[K]) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *queue[K]) Push(x any) {
	e := x.(*entry[K])
	e.index = len(*q)
	*q = append(*q, e)
}

func (q *queue[K]) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*q = old[:n-1]
	return e
}
