// Package devserver serves a live view of an app rendered into an in-memory
// document.
//
// The engine, the document and every listener run on a sched.Loop
// goroutine. HTTP handlers reach them only through Loop.Do, and each commit
// publishes an HTML snapshot that is pushed to WebSocket clients.
//
// # Routes
//
//	GET  /          page with the current snapshot and the live client
//	GET  /snapshot  current snapshot as JSON
//	POST /events    dispatch {"node": 7, "event": "click", "value": ""}
//	GET  /ws        WebSocket: snapshots out, events in
//	GET  /metrics   Prometheus metrics, when a gatherer is configured
//	GET  /healthz   liveness probe
package devserver
