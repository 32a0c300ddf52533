package orchestration

import "time"

// workerPool bounds the number of LLM invocations running at once. Tasks
// submitted while all workers are busy queue up; results come back on a
// 1-buffered channel so an abandoned task never blocks its worker.
type workerPool struct {
	tasks chan func()
}

func newWorkerPool(workers int) *workerPool {
	if workers < 1 {
		workers = 1
	}
	p := &workerPool{
		tasks: make(chan func(), 64),
	}
	for i := 0; i < workers; i++ {
		go p.run()
	}
	return p
}

func (p *workerPool) run() {
	for task := range p.tasks {
		task()
	}
}

// submit queues a task and returns the channel its result will arrive on.
// When the queue is saturated the send itself blocks, so submission gives
// up once deadline or abort fires and reports ok=false. A nil deadline or
// abort channel never fires.
func (p *workerPool) submit(task func() map[string]any, deadline <-chan time.Time, abort <-chan struct{}) (<-chan map[string]any, bool) {
	result := make(chan map[string]any, 1)
	select {
	case p.tasks <- func() { result <- task() }:
		return result, true
	case <-deadline:
		return nil, false
	case <-abort:
		return nil, false
	}
}
