package ports

import "lga-distance/internal/domain"

// Port: a sink for the detail and summary tables of a run.
// WriteReport writes both tables of report; on error neither file is left behind.
type ReportWriter interface {
	WriteReport(detailPath, summaryPath string, report *domain.WeightedReport) error
}
