// Package mining handles uploaded event logs. Trace and event counts are
// computed locally; process discovery and model format conversion are
// delegated to a pm4py worker service over HTTP.
package mining

// Format identifies a supported event log format.
type Format string

const (
	FormatXES Format = "xes"
	FormatCSV Format = "csv"
)

// Analysis summarises an uploaded event log and the model discovered
// from it.
type Analysis struct {
	FileName  string `json:"file_name"`
	Format    Format `json:"format"`
	NumTraces int    `json:"num_traces"`
	NumEvents int    `json:"num_events"`
	BPMNXML   string `json:"bpmn_xml,omitempty"`
}

// logStats holds the locally computed counts for a log.
type logStats struct {
	traces int
	events int
}
