// Package telemetry reports engine activity to Prometheus and OpenTelemetry.
//
// Both Metrics and Tracer implement weave.Observer and can be combined with
// weave.Observers:
//
//	reg := prometheus.NewRegistry()
//	engine := weave.New(doc, loop, weave.WithObserver(weave.Observers(
//	    telemetry.NewMetrics(telemetry.WithRegistry(reg)),
//	    telemetry.NewTracer(),
//	)))
package telemetry
