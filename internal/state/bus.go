package state

import (
	"sync"
	"sync/atomic"
)

type OpType string

const (
	OpPenDown OpType = "pen_down"
	OpCommit  OpType = "commit_stroke"
	OpErase   OpType = "erase_stroke"
	OpUndo    OpType = "undo"
	OpRedo    OpType = "redo"
	OpClear   OpType = "clear"
)

// Op describes one change to the stroke model.
type Op struct {
	Type   OpType
	Stroke *Stroke // committed stroke for OpCommit
	Target string  // ID of the removed stroke for OpErase
	Seq    uint64
}

// Bus is a typed publish/subscribe channel owned by whoever composes the
// board with its siblings.
type Bus struct {
	seq  uint64
	mu   sync.RWMutex
	subs map[int]func(Op)
	next int
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]func(Op))}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn func(Op)) (cancel func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	b.subs[id] = fn
	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish stamps op with the next sequence number and delivers it
// synchronously to every subscriber.
func (b *Bus) Publish(op Op) Op {
	op.Seq = atomic.AddUint64(&b.seq, 1)
	b.mu.RLock()
	subs := make([]func(Op), 0, len(b.subs))
	for _, fn := range b.subs {
		subs = append(subs, fn)
	}
	b.mu.RUnlock()

	for _, fn := range subs {
		fn(op)
	}
	return op
}
