package sched

import "sync"

// Manual is a Port driven explicitly by its owner.
type Manual struct {
	mu    sync.Mutex
	queue []Callback
	steps int
}

// NewManual creates an idle Manual port.
func NewManual() *Manual {
	return &Manual{}
}

// Request implements Port.
func (m *Manual) Request(cb Callback) {
	m.mu.Lock()
	m.queue = append(m.queue, cb)
	m.mu.Unlock()
}

// Pending returns the number of registered callbacks.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Steps returns how many slices have been run.
func (m *Manual) Steps() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.steps
}

// Step runs every callback registered before the call with deadline d.
// Callbacks registered while stepping wait for the next Step.
// It returns the number of callbacks run.
func (m *Manual) Step(d Deadline) int {
	m.mu.Lock()
	batch := m.queue
	m.queue = nil
	m.steps++
	m.mu.Unlock()

	for _, cb := range batch {
		cb(d)
	}
	return len(batch)
}

// StepUnits runs one slice that allows n units of work.
func (m *Manual) StepUnits(n int) int {
	return m.Step(Units(n))
}

// RunUntil steps with fresh deadlines from next until done reports true or
// max slices have run. It returns the number of slices run and whether done
// was reached.
func (m *Manual) RunUntil(done func() bool, next func() Deadline, max int) (int, bool) {
	for i := 0; i < max; i++ {
		if done() {
			return i, true
		}
		m.Step(next())
	}
	return max, done()
}
