package adapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"

	m "srcmap.dev/pkg/srcmap/internal/model"
)

const (
	reportDirPerm  = 0o750
	reportFilePerm = 0o644
	reportIndent   = "  "
)

// ReportStore persists source-structure reports.
type ReportStore interface {
	// SaveReport creates the parent directories of path and replaces the
	// file content with the encoded report.
	SaveReport(path m.Path, report m.Report) error
	// LoadReport reads and decodes a report previously written by SaveReport.
	LoadReport(path m.Path) (m.Report, error)
}

type reportStore struct {
	fs SourceFSAdapter
}

// NewReportStore creates a ReportStore backed by the given filesystem adapter.
func NewReportStore(fs SourceFSAdapter) ReportStore {
	return &reportStore{fs: fs}
}

func (s *reportStore) SaveReport(path m.Path, report m.Report) error {
	data, err := EncodeReport(report)
	if err != nil {
		return err
	}

	dir := filepath.Dir(string(path))
	if err := s.fs.MkdirAll(m.Path(dir), reportDirPerm); err != nil {
		slog.Error("failed to create report directory", "dir", dir, "error", err)
		return fmt.Errorf("create report directory %s: %w", dir, err)
	}

	if err := s.fs.WriteFile(path, data, reportFilePerm); err != nil {
		slog.Error("failed to write report", "path", path, "error", err)
		return fmt.Errorf("write report %s: %w", path, err)
	}

	slog.Debug("report saved", "path", path, "sourceSets", len(report), "bytes", len(data))

	return nil
}

func (s *reportStore) LoadReport(path m.Path) (m.Report, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", path, err)
	}

	var report m.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", path, err)
	}

	return report, nil
}

// EncodeReport renders the canonical JSON form of a report: two-space
// indentation, fixed key order, every field present and a trailing newline.
// Nil slices are written as empty arrays.
func EncodeReport(report m.Report) ([]byte, error) {
	normalized := make(m.Report, 0, len(report))
	for _, set := range report {
		normalized = append(normalized, m.SourceSet{
			Name:        set.Name,
			Directories: nonNil(set.Directories),
			Files:       nonNil(set.Files),
		})
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetIndent("", reportIndent)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(normalized); err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}

	return buf.Bytes(), nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}
