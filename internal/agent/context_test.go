package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type stubSearcher struct {
	result string
	err    error
	calls  int
	query  string
}

func (s *stubSearcher) Search(_ context.Context, query string) (string, error) {
	s.calls++
	s.query = query
	return s.result, s.err
}

func TestAssembleAlwaysIncludesTime(t *testing.T) {
	searcher := &stubSearcher{}
	a := NewAssembler(searcher, zerolog.Nop())

	out := a.Assemble(context.Background(), "tell me a joke")
	assert.Contains(t, out, "The current time is ")
	assert.Equal(t, 0, searcher.calls)
	assert.NotContains(t, out, "Web Search Results")
}

func TestAssembleTriggersSearchOnce(t *testing.T) {
	triggering := []string{
		"What is the current price of gold?",
		"who is the CEO of Northway Logistics",
		"any LATEST news on warehouse robotics",
		"how big is the market for RPA",
		"main competitor of UiPath",
	}
	for _, query := range triggering {
		t.Run(query, func(t *testing.T) {
			searcher := &stubSearcher{result: "snippet one | snippet two"}
			a := NewAssembler(searcher, zerolog.Nop())

			out := a.Assemble(context.Background(), query)
			assert.Equal(t, 1, searcher.calls)
			assert.Equal(t, query, searcher.query, "raw query must be forwarded")
			assert.Contains(t, out, "Web Search Results: snippet one | snippet two")
		})
	}
}

func TestAssembleSkipsSearchWithoutIndicators(t *testing.T) {
	queries := []string{
		"my name is Dana and I run Northway Logistics",
		"we struggle with invoice reconciliation",
		"thanks, that helps",
	}
	for _, query := range queries {
		searcher := &stubSearcher{}
		a := NewAssembler(searcher, zerolog.Nop())
		a.Assemble(context.Background(), query)
		assert.Zero(t, searcher.calls, "query %q must not trigger search", query)
	}
}

func TestAssembleFoldsSearchError(t *testing.T) {
	searcher := &stubSearcher{err: errors.New("provider quota exceeded")}
	a := NewAssembler(searcher, zerolog.Nop())

	out := a.Assemble(context.Background(), "what is the latest on serp pricing")
	assert.Contains(t, out, "Search error: provider quota exceeded")
	assert.Contains(t, out, "The current time is ")
}
