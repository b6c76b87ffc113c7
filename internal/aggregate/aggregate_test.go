package aggregate

import (
	"context"
	"errors"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/glimpse/internal/types"
)

type slowSource struct {
	name  string
	delay time.Duration
	items []types.Candidate
	err   error
}

func (s slowSource) Name() string { return s.name }

func (s slowSource) Candidates(_ context.Context) ([]types.Candidate, error) {
	time.Sleep(s.delay)
	return s.items, s.err
}

func tabCandidate(id string) types.Candidate {
	return types.Candidate{Type: types.CandidateTab, ID: id, Title: id}
}

func bookmarkCandidate(id string) types.Candidate {
	return types.Candidate{Type: types.CandidateBookmark, ID: id, Title: id}
}

func ids(candidates []types.Candidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.ID
	}
	return out
}

func TestAggregator_TabsFirstRegardlessOfCompletion(t *testing.T) {
	agg := NewAggregator(
		[]Source{slowSource{name: "tabs", delay: 30 * time.Millisecond, items: []types.Candidate{tabCandidate("t1"), tabCandidate("t2")}}},
		[]Source{
			slowSource{name: "bar", items: []types.Candidate{bookmarkCandidate("b1")}},
			slowSource{name: "html", delay: 10 * time.Millisecond, items: []types.Candidate{bookmarkCandidate("b2")}},
		},
		nil,
	)

	assert.Equal(t, []string{"t1", "t2", "b1", "b2"}, ids(agg.Collect(context.Background())))
}

func TestAggregator_FailingSourceYieldsEmpty(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	agg := NewAggregator(
		[]Source{slowSource{name: "tabs", err: errors.New("permission denied")}},
		[]Source{Static{Items: []types.Candidate{bookmarkCandidate("b1")}}},
		logger,
	)

	assert.Equal(t, []string{"b1"}, ids(agg.Collect(context.Background())))

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, "tabs", hook.Entries[0].Data["source"])
	assert.Equal(t, "permission denied", hook.Entries[0].Data["error"])
}

func TestAggregator_NoSources(t *testing.T) {
	candidates := NewAggregator(nil, nil, nil).Collect(context.Background())

	assert.NotNil(t, candidates)
	assert.Empty(t, candidates)
}

func TestStatic_Name(t *testing.T) {
	assert.Equal(t, "static", Static{}.Name())
	assert.Equal(t, "snapshot", Static{Label: "snapshot"}.Name())
}

func TestSourceError(t *testing.T) {
	cause := errors.New("boom")
	err := &SourceError{Source: "tabs", Message: "failed", Cause: cause}

	assert.Equal(t, "tabs: failed: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "tabs: failed", (&SourceError{Source: "tabs", Message: "failed"}).Error())
}
