package adapter

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/mouse-blink/gooze-repair/internal/model"
)

// ReportStore persists winning fixes as a diagnostic JSON dump and reloads
// them for the `view` subcommand. Unlike the teacher's ReportStore (which
// round-trips mutation reports so a later run can resume from them), the
// reload direction here is purely for display: spec.md §6.4 treats the
// report directory as diagnostic only, never consulted by a later search.
type ReportStore interface {
	SaveFixes(dir, problemName string, fixes []model.Fix) error
	LoadFixes(dir, problemName string) ([][]FixRecord, error)
}

// FixRecord is one FixEntry's on-disk shape.
type FixRecord struct {
	Span string `json:"span"`
	Expr string `json:"expr"`
}

// JSONReportStore is the real ReportStore, grounded on the teacher's
// reportStore shape but backed by FSAdapter instead of a no-op body.
type JSONReportStore struct {
	fs FSAdapter
}

// NewJSONReportStore constructs a JSONReportStore backed by fs.
func NewJSONReportStore(fs FSAdapter) *JSONReportStore {
	return &JSONReportStore{fs: fs}
}

// SaveFixes writes fixes to "<dir>/<problemName>.json", one array entry per
// fix, each a list of its FixEntry spans and rendered replacement text. A
// blank dir is treated as "reporting disabled" and is a no-op, matching the
// CLI's optional --report-dir flag.
func (s *JSONReportStore) SaveFixes(dir, problemName string, fixes []model.Fix) error {
	if dir == "" {
		return nil
	}

	records := make([][]FixRecord, len(fixes))

	for i, f := range fixes {
		entries := f.Entries()
		recs := make([]FixRecord, len(entries))

		for j, e := range entries {
			recs[j] = FixRecord{Span: e.Span.String(), Expr: e.Expr.Render()}
		}

		records[i] = recs
	}

	body, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("reportstore: marshal fixes for %s: %w", problemName, err)
	}

	path := filepath.Join(dir, problemName+".json")

	if err := s.fs.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("reportstore: write %s: %w", path, err)
	}

	return nil
}

// LoadFixes reads back a JSON dump SaveFixes previously wrote, for the
// view subcommand's replay.
func (s *JSONReportStore) LoadFixes(dir, problemName string) ([][]FixRecord, error) {
	path := filepath.Join(dir, problemName+".json")

	body, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reportstore: read %s: %w", path, err)
	}

	var records [][]FixRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("reportstore: malformed report %s: %w", path, err)
	}

	return records, nil
}
