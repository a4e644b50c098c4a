// Package report exports the stored task inventory as CSV for offline
// inspection.
//
// It exposes CommandBuilder for wiring the report Cobra command and Service
// for driving the export programmatically.
package report
