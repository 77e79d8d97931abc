package metrics

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	coremetrics "github.com/kilianp07/solar4farm/core/metrics"
)

// JSONLRecord is one line of a JSONL journal. Exactly one of Epoch and Run
// is set.
type JSONLRecord struct {
	Kind  string                  `json:"kind"`
	Epoch *coremetrics.EpochEvent `json:"epoch,omitempty"`
	Run   *coremetrics.RunSummary `json:"run,omitempty"`
}

// Journal record kinds.
const (
	KindEpoch = "epoch"
	KindRun   = "run"
)

// JSONLQuery filters journal records. Empty fields match everything.
type JSONLQuery struct {
	RunID  string
	System string
	Kind   string
}

func (q JSONLQuery) match(r JSONLRecord) bool {
	if q.Kind != "" && r.Kind != q.Kind {
		return false
	}
	var runID, system string
	switch {
	case r.Epoch != nil:
		runID, system = r.Epoch.RunID, r.Epoch.System
	case r.Run != nil:
		runID, system = r.Run.RunID, r.Run.System
	default:
		return false
	}
	return (q.RunID == "" || q.RunID == runID) && (q.System == "" || q.System == system)
}

// JSONLSink journals epoch events and run summaries in a JSONL file with
// automatic rotation.
type JSONLSink struct {
	mu     sync.Mutex
	logger *lumberjack.Logger
	path   string
}

// NewJSONLSink creates a sink with rotation options in megabytes and days.
func NewJSONLSink(path string, maxSizeMB, maxBackups, maxAgeDays int) (*JSONLSink, error) {
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &JSONLSink{logger: lj, path: path}, nil
}

func (s *JSONLSink) append(rec JSONLRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return json.NewEncoder(s.logger).Encode(rec)
}

// RecordEpoch appends the event and triggers rotation if needed.
func (s *JSONLSink) RecordEpoch(ev coremetrics.EpochEvent) error {
	return s.append(JSONLRecord{Kind: KindEpoch, Epoch: &ev})
}

// RecordRun appends the summary.
func (s *JSONLSink) RecordRun(sum coremetrics.RunSummary) error {
	return s.append(JSONLRecord{Kind: KindRun, Run: &sum})
}

// Query reads the journal, rotated files included. Unreadable lines are
// skipped.
func (s *JSONLSink) Query(q JSONLQuery) ([]JSONLRecord, error) {
	return ReadJSONL(s.path, q)
}

// ReadJSONL reads the journal at path and its rotated backups.
func ReadJSONL(path string, q JSONLQuery) ([]JSONLRecord, error) {
	files, err := filepath.Glob(journalPattern(path))
	if err != nil {
		return nil, err
	}
	var res []JSONLRecord
	for _, f := range files {
		file, err := os.Open(f)
		if err != nil {
			continue
		}
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			var r JSONLRecord
			if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
				continue
			}
			if q.match(r) {
				res = append(res, r)
			}
		}
		_ = file.Close()
	}
	return res, nil
}

// journalPattern matches path and the backups lumberjack names
// <name>-<timestamp><ext>.
func journalPattern(path string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)] + "*" + ext
}

// Close closes the underlying writer.
func (s *JSONLSink) Close() error {
	return s.logger.Close()
}
