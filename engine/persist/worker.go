package persist

import "github.com/nathoo/wayfarer/world"

// Outcome is what a completed persistence operation hands back to the turn
// loop: a player-facing message, and for loads the reconstructed game with
// its session metadata.
type Outcome struct {
	Message string
	Game    *world.Game
	Turns   int
	Session string
}

// Op is a future-style handle on one in-flight persistence operation. The
// turn loop holds at most one and waits on Done rather than polling.
type Op struct {
	done    chan struct{}
	outcome Outcome
	err     error
}

// Done is closed when the operation has run to completion or failure.
func (o *Op) Done() <-chan struct{} {
	return o.done
}

// Wait blocks until the operation finishes and returns its outcome.
func (o *Op) Wait() (Outcome, error) {
	<-o.done
	return o.outcome, o.err
}

type request struct {
	run func() (Outcome, error)
	op  *Op
}

// Worker runs persistence operations on a single background goroutine, one at
// a time, in submission order. Operations are never cancelled: once started
// they run to completion or failure.
type Worker struct {
	requests chan request
}

// NewWorker starts the background goroutine.
func NewWorker() *Worker {
	w := &Worker{requests: make(chan request)}
	go w.loop()
	return w
}

func (w *Worker) loop() {
	for req := range w.requests {
		req.op.outcome, req.op.err = req.run()
		close(req.op.done)
	}
}

// Submit hands an operation to the worker and returns its handle.
func (w *Worker) Submit(run func() (Outcome, error)) *Op {
	op := &Op{done: make(chan struct{})}
	w.requests <- request{run: run, op: op}
	return op
}

// Shutdown stops the worker once queued operations have drained.
func (w *Worker) Shutdown() {
	close(w.requests)
}
