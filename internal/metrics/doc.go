// Package metrics records build and stage measurements.
//
// Components receive a Recorder and never check for nil: NoopRecorder is the
// default, PrometheusRecorder is swapped in when a metrics file is requested
// or the preview server exposes its registry.
package metrics
