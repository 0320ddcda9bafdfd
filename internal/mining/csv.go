package mining

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
)

// caseColumns lists the header names accepted as the case identifier
// column, in priority order. The first two are the pm4py conventions.
var caseColumns = []string{"case:concept:name", "case_id", "caseid", "case"}

// countCSV counts events (data rows) and traces (distinct case IDs) in a
// CSV event log. The case column is located by header name.
func countCSV(data []byte) (logStats, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return logStats{}, err
	}
	if len(records) == 0 {
		return logStats{}, errors.New("file is empty")
	}

	caseIdx, err := findCaseColumn(records[0])
	if err != nil {
		return logStats{}, err
	}

	cases := make(map[string]struct{})
	events := 0
	for _, row := range records[1:] {
		if caseIdx >= len(row) {
			continue
		}
		events++
		cases[row[caseIdx]] = struct{}{}
	}

	return logStats{traces: len(cases), events: events}, nil
}

func findCaseColumn(header []string) (int, error) {
	for _, want := range caseColumns {
		for i, col := range header {
			if strings.EqualFold(strings.TrimSpace(col), want) {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("no case identifier column found in header (looked for %s)", strings.Join(caseColumns, ", "))
}
