package notifier

import (
	"context"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/pfrederiksen/fbref-matches/internal/match"
)

// DryRunNotifier prints what would be posted without actually posting
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a dry-run notifier writing to w, or stdout if w is nil
func NewDryRunNotifier(w io.Writer) *DryRunNotifier {
	if w == nil {
		w = os.Stdout
	}
	return &DryRunNotifier{out: w}
}

// Notify prints the posts that would be published
func (n *DryRunNotifier) Notify(ctx context.Context, posts []*match.Posted) error {
	for i, p := range posts {
		if err := ctx.Err(); err != nil {
			return err
		}
		post := formatPost(p)
		fmt.Fprintf(n.out, "--- Post %d/%d ---\n", i+1, len(posts))
		fmt.Fprintln(n.out, post)
		fmt.Fprintf(n.out, "\n(Length: %d characters)\n\n", utf8.RuneCountInString(post))
	}
	return nil
}
