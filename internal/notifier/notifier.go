package notifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/pfrederiksen/fbref-matches/internal/match"
)

// MaxPostLength is the Twitter character limit
const MaxPostLength = 280

// Notifier defines the interface for announcing new matches
type Notifier interface {
	// Notify posts one announcement per match
	Notify(ctx context.Context, posts []*match.Posted) error
}

// Limit returns at most max posts; max <= 0 keeps them all
func Limit(posts []*match.Posted, max int) []*match.Posted {
	if max <= 0 || len(posts) <= max {
		return posts
	}
	return posts[:max]
}

// formatPost formats a stored match as a post
func formatPost(p *match.Posted) string {
	m := p.Match
	var b strings.Builder

	fmt.Fprintf(&b, "⚽ %s %s\n\n", p.League, p.Season)

	goalsH, goalsA := m.Value("goals_H"), m.Value("goals_A")
	if known(goalsH) && known(goalsA) {
		fmt.Fprintf(&b, "%s %s-%s %s\n", m.Home, goalsH, goalsA, m.Away)
	} else {
		fmt.Fprintf(&b, "%s vs %s\n", m.Home, m.Away)
	}

	fmt.Fprintf(&b, "📅 %s", m.Date)
	if m.Time != "" && m.Time != match.TBD {
		fmt.Fprintf(&b, " %s", m.Time)
	}
	b.WriteString("\n")

	if m.Venue != "" {
		fmt.Fprintf(&b, "🏟️ %s\n", m.Venue)
	}

	xgH, xgA := m.Value("xg_H"), m.Value("xg_A")
	if known(xgH) && known(xgA) {
		fmt.Fprintf(&b, "📊 xG %s - %s\n", xgH, xgA)
	}
	if posH, posA := m.Value("possession_H"), m.Value("possession_A"); known(posH) && known(posA) {
		fmt.Fprintf(&b, "🔄 Possession %s - %s\n", posH, posA)
	}

	fmt.Fprintf(&b, "\n#%s #football", strings.ReplaceAll(p.League, " ", ""))

	post := []rune(b.String())
	if len(post) > MaxPostLength {
		return string(post[:MaxPostLength-3]) + "..."
	}
	return string(post)
}

func known(v string) bool {
	return v != "" && v != match.NA
}
