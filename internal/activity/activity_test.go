package activity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahul-gound/fera-naturehelp/internal/model"
)

var now = time.Date(2026, 10, 16, 15, 30, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return now.Add(-time.Duration(n) * 24 * time.Hour)
}

func TestBuildFeed_NewestFirst(t *testing.T) {
	contributions := []model.Contribution{
		{PlantName: "Neem Tree", Location: "Pune", CreatedAt: daysAgo(0)},
	}
	donations := []model.Donation{
		{Amount: decimal.NewFromInt(50), CreatedAt: daysAgo(2)},
	}

	feed := BuildFeed(contributions, donations)
	require.Len(t, feed, 2)

	assert.Equal(t, Event{Kind: KindPlant, Text: "Planted a Neem Tree", Location: "Pune", Timestamp: daysAgo(0)}, feed[0])
	assert.Equal(t, Event{Kind: KindDonation, Text: "Donated $50", Timestamp: daysAgo(2)}, feed[1])
}

func TestBuildFeed_InterleavesByTimestamp(t *testing.T) {
	contributions := []model.Contribution{
		{PlantName: "Mango Tree", CreatedAt: daysAgo(1)},
		{PlantName: "Bamboo", CreatedAt: daysAgo(5)},
	}
	donations := []model.Donation{
		{Amount: decimal.RequireFromString("12.50"), CreatedAt: daysAgo(3)},
		{Amount: decimal.NewFromInt(100), CreatedAt: daysAgo(0)},
	}

	var texts []string
	for _, e := range BuildFeed(contributions, donations) {
		texts = append(texts, e.Text)
	}
	assert.Equal(t, []string{"Donated $100", "Planted a Mango Tree", "Donated $12.5", "Planted a Bamboo"}, texts)
}

func TestBuildFeed_TiesKeepContributionsFirst(t *testing.T) {
	ts := daysAgo(1)
	feed := BuildFeed(
		[]model.Contribution{{PlantName: "Teak Tree", CreatedAt: ts}},
		[]model.Donation{{Amount: decimal.NewFromInt(10), CreatedAt: ts}},
	)
	require.Len(t, feed, 2)
	assert.Equal(t, KindPlant, feed[0].Kind)
	assert.Equal(t, KindDonation, feed[1].Kind)
}

func TestBuildFeed_Empty(t *testing.T) {
	assert.Empty(t, BuildFeed(nil, nil))
}

func TestRelativeLabel(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{0, "Today"},
		{1, "Yesterday"},
		{2, "2 days ago"},
		{5, "5 days ago"},
		{6, "6 days ago"},
		{7, "1 weeks ago"},
		{10, "1 weeks ago"},
		{29, "4 weeks ago"},
		{30, "1 months ago"},
		{40, "1 months ago"},
		{364, "12 months ago"},
		{365, "1 years ago"},
		{800, "2 years ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RelativeLabel(daysAgo(tt.days), now), "days=%d", tt.days)
	}
}

func TestRelativeLabel_FloorsPartialDays(t *testing.T) {
	assert.Equal(t, "Today", RelativeLabel(now.Add(-23*time.Hour), now))
	assert.Equal(t, "Yesterday", RelativeLabel(now.Add(-47*time.Hour), now))
}
