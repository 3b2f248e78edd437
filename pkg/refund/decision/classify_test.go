package decision

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyExperience(t *testing.T) {
	p := DefaultPolicy()
	tests := []struct {
		name           string
		days           int
		shortlistCount int
		want           Experience
	}{
		{"brand new account", 0, 100, Inexperienced},
		{"just under experience days", 99, 100, Inexperienced},
		{"at experience days with enough shortlists", 100, 16, Experienced},
		{"at experience days with few shortlists", 100, 15, Inexperienced},
		{"just under tenure with few shortlists", 365, 15, Inexperienced},
		{"at tenure with few shortlists", 366, 1, Experienced},
		{"future date", -5, 100, Inexperienced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyExperience(*daysAgo(tt.days), tt.shortlistCount, fixedNow, p)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDaysSince_DropsPartialDays(t *testing.T) {
	first := fixedNow.Add(-(99*24*time.Hour + 23*time.Hour))
	assert.Equal(t, 99, DaysSince(first, fixedNow))

	future := fixedNow.Add(6 * time.Hour)
	assert.Equal(t, -1, DaysSince(future, fixedNow))
}

func TestComputeRatio(t *testing.T) {
	tests := []struct {
		name    string
		prior   int
		count   int
		want    string
		wantErr error
	}{
		{"no prior refunds", 0, 10, "0", nil},
		{"no prior refunds and no shortlists", 0, 0, "0", nil},
		{"exact quotient", 3, 10, "0.3", nil},
		{"repeating quotient", 1, 3, "0.33", nil},
		{"rounds half up", 51, 200, "0.26", nil},
		{"rounds down", 1, 8, "0.13", nil},
		{"prior refunds without shortlists", 2, 0, "0", ErrUndefinedRatio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeRatio(tt.prior, tt.count)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestRoundRatio(t *testing.T) {
	assert.Equal(t, "0.26", RoundRatio(decimal.RequireFromString("0.255")).String())
	assert.Equal(t, "0.25", RoundRatio(decimal.RequireFromString("0.2549")).String())
	assert.Equal(t, "0.4", RoundRatio(decimal.RequireFromString("0.404")).String())
}

func TestValidate(t *testing.T) {
	t.Run("all fields missing", func(t *testing.T) {
		res := Validate(Input{})
		assert.False(t, res.Valid())
		assert.Equal(t, []Field{
			FieldShortlistsRequested,
			FieldTotalSumRequested,
			FieldShortlistCount,
			FieldFirstActivityDate,
		}, res.Missing)
		assert.EqualError(t, res.Err(),
			"required fields missing or zero: shortlists_requested, total_sum_requested, shortlist_count, first_activity_date")
	})

	t.Run("zero date is missing", func(t *testing.T) {
		zero := time.Time{}
		res := Validate(Input{
			ShortlistsRequested: 1, TotalSumRequested: decimal.NewFromInt(1),
			ShortlistCount: 1, FirstActivityDate: &zero,
		})
		assert.Equal(t, []Field{FieldFirstActivityDate}, res.Missing)
	})

	t.Run("negative values fail", func(t *testing.T) {
		res := Validate(Input{
			ShortlistsRequested: -1, TotalSumRequested: decimal.NewFromInt(-5),
			ShortlistCount: 4, FirstActivityDate: daysAgo(1),
		})
		assert.Equal(t, []Field{FieldShortlistsRequested, FieldTotalSumRequested}, res.Missing)
	})

	t.Run("complete input", func(t *testing.T) {
		res := Validate(Input{
			ShortlistsRequested: 1, TotalSumRequested: decimal.RequireFromString("0.01"),
			ShortlistCount: 1, FirstActivityDate: daysAgo(1),
		})
		assert.True(t, res.Valid())
		assert.NoError(t, res.Err())
	})
}
