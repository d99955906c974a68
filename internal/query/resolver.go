// Package query resolves free-text questions ("quem atende em SJC?") to a
// site, correlates the site to a duty-roster region, and formats the current
// day's roster for display.
package query

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jonboulle/clockwork"
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/VictorOli23/Consultas-SPI/internal/legend"
	"github.com/VictorOli23/Consultas-SPI/internal/models"
)

// FuzzyThreshold is the minimum 0-100 similarity score accepted when no
// exact site-code token is present in the question.
const FuzzyThreshold = 80

// SiteDirectory is the read-only slice of the site store the resolver needs.
type SiteDirectory interface {
	List(ctx context.Context) ([]models.SiteRecord, error)
}

// DutyFinder is the read-only slice of the duty store the resolver needs.
type DutyFinder interface {
	FindOnDuty(ctx context.Context, areaCode, key string, day int, period string) ([]models.DutyRecord, error)
	FindOnDutyByArea(ctx context.Context, areaCode string, day int, period string) ([]models.DutyRecord, error)
}

// Resolver answers duty questions. It is stateless per call: every Answer is
// a fresh read-only pass over the two stores at the clock's current date.
type Resolver struct {
	sites  SiteDirectory
	duty   DutyFinder
	legend *legend.Legend
	clock  clockwork.Clock
}

// NewResolver creates a Resolver.
func NewResolver(sites SiteDirectory, duty DutyFinder, lg *legend.Legend, clock clockwork.Clock) *Resolver {
	return &Resolver{sites: sites, duty: duty, legend: lg, clock: clock}
}

// Answer resolves the question to a formatted roster. It returns an error
// only when a record store is unreachable; unresolvable questions degrade to
// the not-found guidance text.
func (r *Resolver) Answer(ctx context.Context, question string) (string, error) {
	directory, err := r.sites.List(ctx)
	if err != nil {
		return "", fmt.Errorf("load site directory: %w", err)
	}

	site, ok := matchSite(question, directory)
	if !ok {
		return notFoundAnswer, nil
	}

	now := r.clock.Now()
	day := now.Day()
	period := now.Format(models.PeriodLayout)

	key := correlationKey(site)
	recs, err := r.duty.FindOnDuty(ctx, site.AreaCode, key, day, period)
	if err != nil {
		return "", fmt.Errorf("duty lookup: %w", err)
	}

	// Broaden when the coordinator correlation matched nothing: someone may
	// still be on duty in the region under a differently tagged coordinator.
	if len(recs) == 0 {
		recs, err = r.duty.FindOnDutyByArea(ctx, site.AreaCode, day, period)
		if err != nil {
			return "", fmt.Errorf("duty fallback lookup: %w", err)
		}
	}

	return formatAnswer(site, recs, now, r.legend), nil
}

// matchSite resolves the question to a directory entry. An exact token match
// against a site code always wins; otherwise the best fuzzy score across the
// directory is accepted when it reaches FuzzyThreshold. Ties on the fuzzy
// score keep the first candidate in ascending code order.
func matchSite(question string, directory []models.SiteRecord) (models.SiteRecord, bool) {
	byCode := make(map[string]models.SiteRecord, len(directory))
	codes := make([]string, 0, len(directory))
	for _, site := range directory {
		byCode[site.Code] = site
		codes = append(codes, site.Code)
	}
	sort.Strings(codes)

	normalized := strings.ToUpper(strings.ReplaceAll(question, "?", ""))

	for _, token := range strings.Fields(normalized) {
		if site, ok := byCode[token]; ok {
			return site, true
		}
	}

	bestScore := 0
	bestCode := ""
	for _, code := range codes {
		if score := fuzzy.WRatio(normalized, code); score > bestScore {
			bestScore = score
			bestCode = code
		}
	}
	if bestScore >= FuzzyThreshold {
		return byCode[bestCode], true
	}
	return models.SiteRecord{}, false
}

// correlationKey derives the region correlation key of a site: its region
// area tag when present, else the first three characters of the code.
func correlationKey(site models.SiteRecord) string {
	if key := strings.TrimSpace(site.RegionArea); key != "" {
		return key
	}
	if len(site.Code) > 3 {
		return site.Code[:3]
	}
	return site.Code
}
