package ioanalyze

import (
	"fmt"
	"log/slog"

	"github.com/nhmuk/bgap/pkg/gap"
)

var (
	gradeOrder = []gap.Grade{
		gap.GradeA, gap.GradeB, gap.GradeC,
		gap.GradeD, gap.GradeE, gap.GradeF,
	}
	statusOrder = []gap.Status{
		gap.StatusGreen, gap.StatusAmber, gap.StatusBlue,
		gap.StatusRed, gap.StatusBlack,
	}
)

// logSummary reports grade and status distributions plus record
// coverage, one line per bucket.
func logSummary(s *Stats) {
	for _, g := range gradeOrder {
		slog.Info("Grade distribution",
			"grade", string(g),
			"taxa", s.Grades[g],
			"share", share(s.Grades[g], s.Taxa),
		)
	}
	for _, st := range statusOrder {
		slog.Info("Status distribution",
			"status", string(st),
			"taxa", s.Statuses[st],
			"share", share(s.Statuses[st], s.Taxa),
		)
	}
	slog.Info("Coverage",
		"taxa_with_records", s.TaxaWithRecords,
		"taxa", s.Taxa,
		"share", share(s.TaxaWithRecords, s.Taxa),
		"records_matched", s.RecordsMatched,
	)
}

func share(count, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(count)/float64(total))
}
