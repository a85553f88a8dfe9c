package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/cachelab-ai/cachelab/pkg/models"
)

// Row is one invocation flattened for export.
type Row struct {
	RunID          string  `json:"run_id"`
	Scenario       string  `json:"scenario"`
	RequestID      int     `json:"request_id"`
	LatencySeconds float64 `json:"latency_seconds"`
	InputTokens    int     `json:"input_tokens"`
	CacheWrites    int     `json:"cache_write_tokens"`
	CacheReads     int     `json:"cache_read_tokens"`
	OutputTokens   int     `json:"output_tokens"`
}

// Rows flattens a run into export rows in suite and submission order.
func Rows(run *models.Run) []Row {
	var rows []Row
	for _, res := range run.Scenarios {
		for _, inv := range res.Invocations {
			rows = append(rows, Row{
				RunID:          run.ID,
				Scenario:       res.Name,
				RequestID:      inv.ID,
				LatencySeconds: inv.Latency.Seconds(),
				InputTokens:    inv.Usage.InputTokens,
				CacheWrites:    inv.Usage.CacheCreationInputTokens,
				CacheReads:     inv.Usage.CacheReadInputTokens,
				OutputTokens:   inv.Usage.OutputTokens,
			})
		}
	}
	return rows
}

// CSVWriter writes rows to a CSV file, flushing after every write.
// Overwrites any existing file at path.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
	mu     sync.Mutex
}

// NewCSVWriter creates the file and writes the header.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create csv file: %w", err)
	}

	w := csv.NewWriter(f)
	header := []string{
		"run_id", "scenario", "request_id", "latency_s",
		"input_tokens", "cache_write_tokens", "cache_read_tokens", "output_tokens",
	}
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends one row. Safe for concurrent use.
func (cw *CSVWriter) Write(r Row) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	record := []string{
		r.RunID,
		r.Scenario,
		fmt.Sprintf("%d", r.RequestID),
		fmt.Sprintf("%.4f", r.LatencySeconds),
		fmt.Sprintf("%d", r.InputTokens),
		fmt.Sprintf("%d", r.CacheWrites),
		fmt.Sprintf("%d", r.CacheReads),
		fmt.Sprintf("%d", r.OutputTokens),
	}
	if err := cw.writer.Write(record); err != nil {
		return err
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close flushes and closes the file.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	return cw.file.Close()
}

// JSONWriter writes rows to a JSON Lines file.
type JSONWriter struct {
	file    *os.File
	encoder *json.Encoder
	mu      sync.Mutex
}

// NewJSONWriter creates the file, overwriting any existing one.
func NewJSONWriter(path string) (*JSONWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create json file: %w", err)
	}
	return &JSONWriter{file: f, encoder: json.NewEncoder(f)}, nil
}

// Write appends one row as a JSON line. Safe for concurrent use.
func (jw *JSONWriter) Write(r Row) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()
	return jw.encoder.Encode(r)
}

// Close closes the underlying file.
func (jw *JSONWriter) Close() error {
	return jw.file.Close()
}
