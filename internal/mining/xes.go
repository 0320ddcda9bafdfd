package mining

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
)

// countXES scans an XES document with a streaming token reader and counts
// trace and event elements. Log-level attributes and extensions are
// skipped; only element names matter for the counts.
func countXES(data []byte) (logStats, error) {
	var stats logStats
	sawLog := false

	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return logStats{}, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "log":
			sawLog = true
		case "trace":
			stats.traces++
		case "event":
			stats.events++
		}
	}

	if !sawLog {
		return logStats{}, errors.New("document contains no <log> element")
	}
	return stats, nil
}
