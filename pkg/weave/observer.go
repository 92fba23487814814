package weave

import "time"

// Effect is one classified fiber in a commit.
type Effect struct {
	Tag       EffectTag
	Type      string // Host tag, "#text", or component name
	Mutations int    // Host calls made for this fiber
}

// CommitReport describes one successful commit.
type CommitReport struct {
	Generation uint64

	// Placements counts placed fibers, including component fibers.
	Placements int
	// Updates counts host fibers whose property delta was non-empty.
	Updates int
	// Unchanged counts host fibers classified as updates with nothing to do.
	Unchanged int
	Deletions int

	// Mutations counts host calls made by the commit phase.
	Mutations int
	Duration  time.Duration
	Effects   []Effect
}

// SliceReport describes one invocation of the work loop that did work.
type SliceReport struct {
	Units    int
	Yielded  bool // Work remained when the slice ended
	Restarts int  // State updates that restarted rendering during the slice
	Duration time.Duration
}

// Observer is notified about the engine's progress. Methods are called on
// the engine's goroutine and must not call back into the engine.
type Observer interface {
	SliceDone(SliceReport)
	Committed(CommitReport)
	Failed(error)
}

type nopObserver struct{}

func (nopObserver) SliceDone(SliceReport)  {}
func (nopObserver) Committed(CommitReport) {}
func (nopObserver) Failed(error)           {}

// Observers fans out notifications to several observers in order.
func Observers(obs ...Observer) Observer {
	var list multiObserver
	for _, o := range obs {
		if o != nil {
			list = append(list, o)
		}
	}
	return list
}

type multiObserver []Observer

func (m multiObserver) SliceDone(r SliceReport) {
	for _, o := range m {
		o.SliceDone(r)
	}
}

func (m multiObserver) Committed(r CommitReport) {
	for _, o := range m {
		o.Committed(r)
	}
}

func (m multiObserver) Failed(err error) {
	for _, o := range m {
		o.Failed(err)
	}
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnSlice  func(SliceReport)
	OnCommit func(CommitReport)
	OnFail   func(error)
}

func (f ObserverFuncs) SliceDone(r SliceReport) {
	if f.OnSlice != nil {
		f.OnSlice(r)
	}
}

func (f ObserverFuncs) Committed(r CommitReport) {
	if f.OnCommit != nil {
		f.OnCommit(r)
	}
}

func (f ObserverFuncs) Failed(err error) {
	if f.OnFail != nil {
		f.OnFail(err)
	}
}
