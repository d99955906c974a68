package query

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/VictorOli23/Consultas-SPI/internal/legend"
	"github.com/VictorOli23/Consultas-SPI/internal/models"
)

// notFoundAnswer is returned when no site code could be resolved from the
// question. Guidance instead of an error: the caller renders it verbatim.
const notFoundAnswer = "Sigla não identificada. Tente: 'Quem atende em SJC?'"

// formatAnswer renders the roster as the HTML fragment the terminal front
// end displays. Technicians are grouped by segment when the sheets carried
// one.
func formatAnswer(site models.SiteRecord, recs []models.DutyRecord, now time.Time, lg *legend.Legend) string {
	var b strings.Builder

	b.WriteString("📡 <b>NetQuery Terminal</b><br><hr>")
	fmt.Fprintf(&b, "📍 <b>Localidade:</b> %s (%s)<br>", site.DisplayName, site.Code)
	fmt.Fprintf(&b, "🏢 <b>Área/DDD:</b> %s / %s<br>", site.RegionArea, site.AreaCode)
	fmt.Fprintf(&b, "📅 <b>Plantonistas de Hoje (%s):</b><br><br>", now.Format("02/01"))

	if len(recs) == 0 {
		b.WriteString("⚠️ <i>Nenhum plantão encontrado para este DDD hoje na escala.</i>")
		return b.String()
	}

	for _, segment := range segmentOrder(recs) {
		if segment != "" {
			fmt.Fprintf(&b, "🔧 <b>%s</b><br>", segment)
		}
		for _, rec := range recs {
			if rec.Segment != segment {
				continue
			}
			writeEntry(&b, rec, lg)
		}
	}
	return b.String()
}

func writeEntry(b *strings.Builder, rec models.DutyRecord, lg *legend.Legend) {
	fmt.Fprintf(b, "👨‍🔧 <b>Técnico:</b> %s<br>", rec.Technician)
	fmt.Fprintf(b, "⏰ <b>Horário:</b> %s<br>", lg.Resolve(rec.ShiftCode))
	fmt.Fprintf(b, "📞 <b>Contato:</b> <a href='tel:%s' style='color:#38bdf8'>%s</a><br>", rec.Contact, rec.Contact)
	fmt.Fprintf(b, "👤 <b>Supervisor:</b> %s<br>", rec.Supervisor)
	fmt.Fprintf(b, "🖥️ <b>CM:</b> %s<br><hr style='border:0; border-top:1px dashed #334155; margin:10px 0;'>", rec.Coordinator)
}

// segmentOrder returns the distinct segments of the batch, sorted, with the
// unlabeled segment first.
func segmentOrder(recs []models.DutyRecord) []string {
	seen := make(map[string]struct{})
	var segments []string
	for _, rec := range recs {
		if _, ok := seen[rec.Segment]; ok {
			continue
		}
		seen[rec.Segment] = struct{}{}
		segments = append(segments, rec.Segment)
	}
	sort.Slice(segments, func(i, j int) bool {
		if (segments[i] == "") != (segments[j] == "") {
			return segments[i] == ""
		}
		return segments[i] < segments[j]
	})
	return segments
}
