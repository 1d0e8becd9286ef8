package prometheus

import (
	"net/http"
	"strconv"
	"strings"

	pmAuth "github.com/MrEthical07/pmAuth"
	"github.com/MrEthical07/pmAuth/metrics/export/internaldefs"
)

// Source is what the exporter reads. *pmAuth.Client satisfies it.
type Source interface {
	MetricsSnapshot() pmAuth.MetricsSnapshot
	AuditDropped() uint64
}

// Exporter renders a Source on demand.
type Exporter struct {
	source Source
}

// NewExporter describes the newexporter operation and its observable behavior.
func NewExporter(source Source) *Exporter {
	return &Exporter{source: source}
}

// Handler serves Render over HTTP.
func (e *Exporter) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		_, _ = w.Write([]byte(e.Render()))
	})
}

// Render returns the current metrics. It is empty while collection is
// disabled and nothing was dropped.
func (e *Exporter) Render() string {
	if e == nil || e.source == nil {
		return ""
	}

	snapshot := e.source.MetricsSnapshot()
	dropped := e.source.AuditDropped()
	if len(snapshot.Counters) == 0 && len(snapshot.Histograms) == 0 && dropped == 0 {
		return ""
	}

	var b strings.Builder
	for _, def := range internaldefs.CounterDefs {
		writeCounter(&b, def, snapshot.Counters[def.ID])
	}
	for _, def := range internaldefs.HistogramDefs {
		if buckets, ok := snapshot.Histograms[def.ID]; ok {
			writeHistogram(&b, def, internaldefs.CumulativeBuckets(buckets))
		}
	}
	writeCounter(&b, internaldefs.AuditDropped, dropped)
	return b.String()
}

func writeHeader(b *strings.Builder, def internaldefs.Def, kind string) {
	b.WriteString("# HELP " + def.Name + " " + escapeHelp(def.Help) + "\n")
	b.WriteString("# TYPE " + def.Name + " " + kind + "\n")
}

func writeCounter(b *strings.Builder, def internaldefs.Def, value uint64) {
	writeHeader(b, def, "counter")
	b.WriteString(def.Name + " " + strconv.FormatUint(value, 10) + "\n")
}

func writeHistogram(b *strings.Builder, def internaldefs.Def, cumulative [internaldefs.BucketCount]uint64) {
	writeHeader(b, def, "histogram")
	for i, le := range internaldefs.HistogramBounds {
		b.WriteString(def.Name + `_bucket{le="` + le + `"} ` + strconv.FormatUint(cumulative[i], 10) + "\n")
	}
	b.WriteString(def.Name + "_count " + strconv.FormatUint(cumulative[len(cumulative)-1], 10) + "\n")
	// durations are bucketed only, no running sum is kept
	b.WriteString(def.Name + "_sum 0\n")
}

func escapeHelp(help string) string {
	return strings.NewReplacer(`\`, `\\`, "\n", `\n`).Replace(help)
}
