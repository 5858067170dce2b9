// Package export writes study reports to disk.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/td0m/studyman/pkg/study"
	"github.com/td0m/studyman/pkg/study/date"
	"github.com/td0m/studyman/pkg/view"
)

const reportTitle = "My studies"

// FileName is a slug of the title and the day, with ext appended.
func FileName(title string, now time.Time, ext string) string {
	return slug.Make(title+" "+date.Of(now).String()) + "." + ext
}

type Exporter struct {
	dir    string
	pdf    *PDFExporter
	csv    *CSVExporter
	logger *zap.Logger
}

func New(dir string, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{dir: dir, pdf: NewPDFExporter(), csv: NewCSVExporter(), logger: logger}
}

// PDF writes the full report and returns the file path.
func (e *Exporter) PDF(subjects []study.Subject, now time.Time) (string, error) {
	history := HistoryDataset(subjects)
	r := Report{
		Title: reportTitle,
		Summary: []string{
			"Exported " + now.Format("2006-01-02 15:04"),
			SummaryLine(view.Summarize(subjects, now)),
			fmt.Sprintf("%.1f hours studied", view.HistoryHours(view.History(subjects))),
		},
		Tables: []Table{
			{Title: "Subjects", Data: SubjectsDataset(subjects, now)},
			{Title: "Study history", Data: history},
		},
	}
	bs, err := e.pdf.Render(r)
	if err != nil {
		return "", err
	}
	return e.write(FileName(reportTitle, now, "pdf"), bs)
}

// CSV writes the study history and returns the file path.
func (e *Exporter) CSV(subjects []study.Subject, now time.Time) (string, error) {
	bs, err := e.csv.Render(HistoryDataset(subjects))
	if err != nil {
		return "", err
	}
	return e.write(FileName(reportTitle+" history", now, "csv"), bs)
}

func (e *Exporter) write(name string, bs []byte) (string, error) {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, bs, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	e.logger.Info("exported", zap.String("path", path), zap.Int("bytes", len(bs)))
	return path, nil
}
