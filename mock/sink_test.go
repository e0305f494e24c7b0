package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/phonecrawl"
	"github.com/fwojciec/phonecrawl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultSink_ImplementsInterface(t *testing.T) {
	t.Parallel()

	// Verify mock can be used where ResultSink is expected
	var _ phonecrawl.ResultSink = &mock.ResultSink{}
}

func TestResultSink_Publish(t *testing.T) {
	t.Parallel()

	t.Run("delegates to PublishFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *phonecrawl.Report
		s := &mock.ResultSink{
			PublishFn: func(_ context.Context, report *phonecrawl.Report) error {
				calledWith = report
				return nil
			},
		}

		report := &phonecrawl.Report{
			Site:    "jiji-ci",
			Numbers: []string{"0707070707"},
		}

		err := s.Publish(context.Background(), report)

		require.NoError(t, err)
		assert.Equal(t, report, calledWith)
	})
}
