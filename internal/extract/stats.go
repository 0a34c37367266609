package extract

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/fbref-matches/internal/match"
)

// Stats implements Extractor. Missing tables, short footers and absent
// standalone fields all resolve to match.NA.
func (f *FBref) Stats(doc *goquery.Document, homeID, awayID string) match.Stats {
	stats := make(match.Stats)

	for _, cat := range Categories {
		labels := statLabels(doc, homeID, cat)
		if len(labels) == 0 {
			labels = statLabels(doc, awayID, cat)
		}
		if len(labels) == 0 {
			// Category absent from the page: mark its stats unavailable
			// without clobbering values another category already supplied.
			for _, label := range knownLabels[cat] {
				setDefault(stats, label+homeSuffix, match.NA)
				setDefault(stats, label+awaySuffix, match.NA)
			}
			continue
		}

		home := footerValues(doc, homeID, cat)
		away := footerValues(doc, awayID, cat)
		for i, label := range labels {
			// Later categories overwrite values of labels they share with earlier ones.
			stats[label+homeSuffix] = valueAt(home, i)
			stats[label+awaySuffix] = valueAt(away, i)
		}
	}

	stats["possession_H"] = textOrNA(doc.Find(selPossessionH))
	stats["possession_A"] = textOrNA(doc.Find(selPossessionA))
	stats["corners_H"] = textOrNA(doc.Find(selCornersH))
	stats["corners_A"] = textOrNA(doc.Find(selCornersA))
	stats["saves_H"] = textOrNA(doc.Find(keeperSaves(homeID)))
	stats["saves_A"] = textOrNA(doc.Find(keeperSaves(awayID)))

	return stats
}

func statLabels(doc *goquery.Document, teamID, category string) []string {
	var labels []string
	doc.Find(statHeader(teamID, category)).Each(func(_ int, th *goquery.Selection) {
		if ds, ok := th.Attr("data-stat"); ok {
			labels = append(labels, ds)
		}
	})
	if len(labels) <= headerIdentityCols {
		return nil
	}
	return labels[headerIdentityCols:]
}

func footerValues(doc *goquery.Document, teamID, category string) []string {
	var values []string
	doc.Find(statFooter(teamID, category)).Each(func(_ int, td *goquery.Selection) {
		values = append(values, text(td))
	})
	if len(values) <= footerIdentityCols {
		return nil
	}
	return values[footerIdentityCols:]
}

func valueAt(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return match.NA
}

func textOrNA(s *goquery.Selection) string {
	if s.Length() == 0 {
		return match.NA
	}
	return text(s)
}

func setDefault(stats match.Stats, key, value string) {
	if _, ok := stats[key]; !ok {
		stats[key] = value
	}
}
