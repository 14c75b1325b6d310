package ioauthority

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnuuid"
	"github.com/google/uuid"
	"github.com/nhmuk/bgap/internal/iotsv"
	"github.com/nhmuk/bgap/pkg/parserpool"
)

// speciesRanks are the taxa ranks exported as checklist entries.
var speciesRanks = map[string]struct{}{
	"species":               {},
	"microspecies":          {},
	"intergeneric hybrid":   {},
	"species sensu stricto": {},
}

// defaultKingdoms is the kingdom allow-set used when none is
// configured.
var defaultKingdoms = []string{"Animalia", "Plantae", "Chromista", "Fungi"}

// exportHeader is shared by the valid and the review output.
var exportHeader = []string{
	"taxon_name", "synonyms", "taxon_tvk", "name_uuid",
	"kingdom", "phylum_division", "class", "order",
	"family", "genus", "parse_quality",
}

// ExportParams collects the inputs of one checklist export.
type ExportParams struct {
	DBPath     string
	OutputPath string // checklist of exportable names
	ReviewPath string // names needing human review

	// Kingdoms overrides the default kingdom allow-set.
	Kingdoms []string

	// PoolSize is the number of pooled name parsers.
	PoolSize int
}

// ExportStats summarizes one export run.
type ExportStats struct {
	Selected        int
	Exported        int
	Review          int
	KingdomFiltered int
	Unparsed        int
	Reasons         map[string]int
}

// Export writes the species checklist from the authority database.
// Species-rank taxa inside the kingdom allow-set are exported with
// their walked higher taxonomy and aggregated synonyms; names
// matching a known junk pattern, and names the scientific-name parser
// cannot parse, go to the review output instead.
func Export(p ExportParams) (*ExportStats, error) {
	start := time.Now()

	db, err := openDB(p.DBPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	c, err := loadCache(db)
	if err != nil {
		return nil, err
	}

	var selected []*taxonRow
	for _, t := range c.taxa {
		if t.redundant || t.name == "" {
			continue
		}
		if _, ok := speciesRanks[strings.ToLower(t.rank)]; ok {
			selected = append(selected, t)
		}
	}
	sort.Slice(selected, func(i, j int) bool {
		if selected[i].name != selected[j].name {
			return selected[i].name < selected[j].name
		}
		return selected[i].tvk < selected[j].tvk
	})

	kingdoms := p.Kingdoms
	if len(kingdoms) == 0 {
		kingdoms = defaultKingdoms
	}
	allow := make(map[string]struct{}, len(kingdoms))
	for _, k := range kingdoms {
		allow[strings.ToLower(strings.TrimSpace(k))] = struct{}{}
	}

	pool := parserpool.NewPool(p.PoolSize)
	defer pool.Close()

	valid, err := iotsv.NewWriter(p.OutputPath)
	if err != nil {
		return nil, err
	}
	review, err := iotsv.NewWriter(p.ReviewPath)
	if err != nil {
		valid.Close()
		return nil, err
	}
	if err := valid.WriteRow(exportHeader...); err != nil {
		return nil, closeBoth(valid, review, err)
	}
	if err := review.WriteRow(exportHeader...); err != nil {
		return nil, closeBoth(valid, review, err)
	}

	stats := &ExportStats{
		Selected: len(selected),
		Reasons:  make(map[string]int),
	}

	bar := newProgressBar(len(selected), "Exporting species: ")
	for _, t := range selected {
		bar.Increment()

		l := c.walkLineage(t.tvk)
		if _, ok := allow[strings.ToLower(l.kingdom)]; !ok {
			stats.KingdomFiltered++
			continue
		}

		row := exportRow(t, c.synonyms(t), l)

		if reason, bad := screenName(t.name); bad {
			stats.Reasons[string(reason)]++
			stats.Review++
			if err := review.WriteRow(row...); err != nil {
				return nil, closeBoth(valid, review, err)
			}
			continue
		}

		parsed, err := pool.Parse(t.name, codeForKingdom(l.kingdom))
		if err != nil {
			return nil, closeBoth(valid, review, DBExportError(err))
		}
		if !parsed.Parsed {
			stats.Unparsed++
			stats.Review++
			if err := review.WriteRow(row...); err != nil {
				return nil, closeBoth(valid, review, err)
			}
			continue
		}

		row[len(row)-1] = strconv.Itoa(parsed.ParseQuality)
		stats.Exported++
		if err := valid.WriteRow(row...); err != nil {
			return nil, closeBoth(valid, review, err)
		}
	}
	bar.Finish()

	if err := valid.Close(); err != nil {
		review.Close()
		return nil, err
	}
	if err := review.Close(); err != nil {
		return nil, err
	}

	slog.Info("Species checklist exported",
		"exported", stats.Exported,
		"review", stats.Review,
		"kingdom_filtered", stats.KingdomFiltered,
		"unparsed", stats.Unparsed,
		"duration", time.Since(start).String(),
	)
	for reason, n := range stats.Reasons {
		slog.Info("Review reason", "reason", reason, "names", n)
	}
	return stats, nil
}

// exportRow assembles one output row. The parse quality defaults to
// zero; callers overwrite it after a successful parse.
func exportRow(t *taxonRow, synonyms []string, l lineage) []string {
	var id uuid.UUID = gnuuid.New(t.name)
	return []string{
		t.name,
		strings.Join(synonyms, ";"),
		t.tvk,
		id.String(),
		l.kingdom,
		l.phylumDivision,
		l.class,
		l.order,
		l.family,
		l.genus,
		"0",
	}
}

// codeForKingdom picks the nomenclatural code for name parsing:
// zoological for animals, botanical for everything else the export
// allows (plants, fungi, chromists).
func codeForKingdom(kingdom string) nomcode.Code {
	if strings.EqualFold(kingdom, "Animalia") {
		return nomcode.Zoological
	}
	return nomcode.Botanical
}

// newProgressBar creates a progress bar with consistent settings.
func newProgressBar(total int, prefix string) *pb.ProgressBar {
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}

func closeBoth(a, b *iotsv.Writer, err error) error {
	a.Close()
	b.Close()
	return err
}
