// Package host defines the boundary between the weave engine and the tree it
// mutates.
//
// The engine never touches a host tree directly. It creates nodes, writes and
// clears properties, registers listeners and attaches or detaches children
// through an Adapter. Nodes are opaque handles owned by the adapter that
// created them.
//
// Every Adapter method returns an error. The engine does not retry: a failed
// mutation aborts the commit in progress.
//
// Recorder decorates any Adapter and keeps an ordered log of the mutations it
// forwards, which is how tests and the dev server observe host traffic.
package host
