// Package sched provides the cooperative scheduling primitive the weave
// engine yields to between units of work.
//
// A Port accepts a Callback and invokes it later with a Deadline that reports
// how much time is left in the current slice. The engine registers itself
// again at the end of every invocation, so the loop stays alive for the
// lifetime of the application.
//
// Two implementations are provided:
//
//   - Manual runs callbacks only when Step is called, with a caller-chosen
//     Deadline. Tests use it with Units to interrupt rendering after an exact
//     number of units of work.
//   - Loop runs callbacks on a single goroutine, once per tick, with a fixed
//     slice budget. Other goroutines submit work to that goroutine with Post.
package sched
