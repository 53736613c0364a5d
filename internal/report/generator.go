// Package report renders the outcome of a batch run as a machine-readable report.
package report

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"fjacquet/broker-qif/internal/batch"
	"fjacquet/broker-qif/internal/fileutils"
	"fjacquet/broker-qif/internal/logging"

	"gopkg.in/yaml.v3"
)

// FileEntry describes one converted (or failed) input file.
type FileEntry struct {
	File         string `json:"file" yaml:"file"`
	Profile      string `json:"profile,omitempty" yaml:"profile,omitempty"`
	Rows         int    `json:"rows" yaml:"rows"`
	Transactions int    `json:"transactions" yaml:"transactions"`
	Linked       int    `json:"linked" yaml:"linked"`
	Securities   int    `json:"securities" yaml:"securities"`
	Notices      int    `json:"notices" yaml:"notices"`
	Error        string `json:"error,omitempty" yaml:"error,omitempty"`
}

// BatchReport is the serialized form of a batch.Report.
type BatchReport struct {
	Succeeded int         `json:"succeeded" yaml:"succeeded"`
	Failed    int         `json:"failed" yaml:"failed"`
	Period    string      `json:"period,omitempty" yaml:"period,omitempty"`
	Files     []FileEntry `json:"files" yaml:"files"`
}

// FromBatch converts a batch report into its serialized form.
func FromBatch(r batch.Report) BatchReport {
	out := BatchReport{
		Succeeded: r.Succeeded(),
		Failed:    r.Failed(),
		Period:    r.Period.String(),
		Files:     make([]FileEntry, 0, len(r.Outcomes)),
	}
	for _, o := range r.Outcomes {
		entry := FileEntry{File: o.File}
		if o.Err != nil {
			entry.Error = o.Err.Error()
		} else {
			entry.Profile = o.Result.Profile
			entry.Rows = o.Result.Rows
			entry.Transactions = o.Result.Summary.Transactions
			entry.Linked = o.Result.Summary.Linked
			entry.Securities = o.Result.Summary.Securities
			entry.Notices = o.Result.Notices
		}
		out.Files = append(out.Files, entry)
	}
	return out
}

// ReportGenerator renders batch reports in various formats.
type ReportGenerator struct {
	logger logging.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &ReportGenerator{
		logger: logger.WithField("component", "ReportGenerator"),
	}
}

// GenerateReport renders report in the specified format (json or yaml).
func (g *ReportGenerator) GenerateReport(report BatchReport, format string) ([]byte, error) {
	switch format {
	case "json":
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
		}
		return append(out, '\n'), nil
	case "yaml", "yml":
		out, err := yaml.Marshal(report)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// WriteReport writes report to path, choosing the format from the file extension.
func (g *ReportGenerator) WriteReport(report BatchReport, path string) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	data, err := g.GenerateReport(report, format)
	if err != nil {
		return err
	}

	f, err := fileutils.CreateFile(path)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close report %s: %w", path, err)
	}

	g.logger.Info("Batch report written", logging.F(logging.FieldOutputFile, path))
	return nil
}
