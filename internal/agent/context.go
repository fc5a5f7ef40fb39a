package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// knowledgeIndicators are the phrases that mark a query as needing live web
// context. Substring match on the lower-cased query; heuristic by intent,
// false positives and negatives are accepted.
var knowledgeIndicators = []string{
	"who is", "what is", "current", "latest", "news", "price", "market", "competitor",
}

// Searcher is the web-search capability the assembler consults.
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
}

// Assembler produces the context string handed to the model: the current
// time, always, plus a labeled search summary when the query asks for live
// knowledge. It never fails; search errors are folded into the context text.
type Assembler struct {
	searcher Searcher
	clock    func() time.Time
	log      zerolog.Logger
}

func NewAssembler(searcher Searcher, log zerolog.Logger) *Assembler {
	return &Assembler{searcher: searcher, clock: time.Now, log: log}
}

func (a *Assembler) Assemble(ctx context.Context, userQuery string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The current time is %s.", centralTimeline(a.clock()))

	if !needsSearch(userQuery) {
		return b.String()
	}
	result, err := a.searcher.Search(ctx, userQuery)
	if err != nil {
		a.log.Warn().Err(err).Msg("web search failed, folding error into context")
		result = fmt.Sprintf("Search error: %v", err)
	}
	fmt.Fprintf(&b, " Web Search Results: %s", result)
	return b.String()
}

func needsSearch(query string) bool {
	q := strings.ToLower(query)
	for _, phrase := range knowledgeIndicators {
		if strings.Contains(q, phrase) {
			return true
		}
	}
	return false
}

// centralTimeline renders t in US Central time, e.g.
// "03:32 PM CST on December 29, 2025".
func centralTimeline(t time.Time) string {
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		loc = time.FixedZone("CST", -6*60*60)
	}
	return t.In(loc).Format("03:04 PM MST on January 02, 2006")
}
