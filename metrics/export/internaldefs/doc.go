// Package internaldefs holds the metric names and bucket labels shared by the
// exporters, so Prometheus and OTel output stay identical.
//
// # What this package must NOT do
//
//   - Import an exporter package.
//   - Perform I/O.
package internaldefs
