package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteHistoryQuery_Options(t *testing.T) {
	tests := []struct {
		name     string
		query    QuoteHistoryQuery
		validate func(t *testing.T, q QuoteHistoryQuery)
	}{
		{
			name:  "default limit",
			query: QuoteHistoryQuery{ProductID: " ground-lb "},
			validate: func(t *testing.T, q QuoteHistoryQuery) {
				opts, err := q.Options()
				require.NoError(t, err)
				assert.Equal(t, "ground-lb", opts.ProductID)
				assert.Equal(t, DefaultHistoryLimit, opts.Limit)
				assert.Nil(t, opts.StartTime)
				assert.Nil(t, opts.EndTime)
			},
		},
		{
			name:  "limit is capped",
			query: QuoteHistoryQuery{Limit: 10000, Skip: 20, Zone: 4},
			validate: func(t *testing.T, q QuoteHistoryQuery) {
				opts, err := q.Options()
				require.NoError(t, err)
				assert.Equal(t, MaxHistoryLimit, opts.Limit)
				assert.Equal(t, 20, opts.Skip)
				assert.Equal(t, 4, opts.Zone)
			},
		},
		{
			name:  "date bounds cover whole days",
			query: QuoteHistoryQuery{From: "2025-06-01", To: "2025-06-02"},
			validate: func(t *testing.T, q QuoteHistoryQuery) {
				opts, err := q.Options()
				require.NoError(t, err)
				require.NotNil(t, opts.StartTime)
				require.NotNil(t, opts.EndTime)
				assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), *opts.StartTime)
				assert.Equal(t, time.Date(2025, 6, 2, 23, 59, 59, 999999999, time.UTC), *opts.EndTime)
			},
		},
		{
			name:  "timestamps",
			query: QuoteHistoryQuery{From: "2025-06-01T10:00:00Z"},
			validate: func(t *testing.T, q QuoteHistoryQuery) {
				opts, err := q.Options()
				require.NoError(t, err)
				assert.Equal(t, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), opts.StartTime.UTC())
			},
		},
		{
			name:  "bad bound",
			query: QuoteHistoryQuery{To: "yesterday"},
			validate: func(t *testing.T, q QuoteHistoryQuery) {
				_, err := q.Options()
				assert.ErrorIs(t, err, ErrInvalidHistoryRange)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, tt.query)
		})
	}
}
