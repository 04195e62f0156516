// Package metrics records build and validation outcomes.
//
// Components receive a Recorder and default to NoopRecorder, so metrics cost
// nothing unless enabled:
//
//	recorder := metrics.NewPrometheusRecorder(prom.NewRegistry())
//	result, err := build.Run(ctx, cfg, build.Options{Recorder: recorder})
//	_ = recorder.WriteTextfile("docnav.prom")
//
// Builds are one-shot, so metrics are exported through the Prometheus
// textfile format for a node exporter to pick up rather than served.
package metrics
