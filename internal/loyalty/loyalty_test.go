package loyalty

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardFor(t *testing.T) {
	tests := []struct {
		name         string
		points       int
		unlocked     int
		next         string
		pointsToNext int
		progress     float64
	}{
		{name: "New customer", points: 0, unlocked: 0, next: "Café offert", pointsToNext: 50, progress: 0},
		{name: "Mid segment", points: 38, unlocked: 0, next: "Café offert", pointsToNext: 12, progress: 76},
		{name: "Exactly on a tier", points: 100, unlocked: 2, next: "10% de réduction", pointsToNext: 100, progress: 0},
		{name: "Between tiers", points: 275, unlocked: 3, next: "Repas offert", pointsToNext: 225, progress: 50},
		{name: "All unlocked", points: 640, unlocked: 4, progress: 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := CardFor(tt.points)

			count := 0
			for _, tier := range card.Tiers {
				if tier.Unlocked {
					count++
				}
			}
			assert.Equal(t, tt.unlocked, count)
			assert.Equal(t, tt.pointsToNext, card.PointsToNext)
			assert.InDelta(t, tt.progress, card.Progress, 1e-9)

			if tt.next == "" {
				assert.Nil(t, card.Next)
				return
			}
			require.NotNil(t, card.Next)
			assert.Equal(t, tt.next, card.Next.Name)
		})
	}
}

func TestPointsFor(t *testing.T) {
	assert.Equal(t, 28, PointsFor(decimal.RequireFromString("28.00")))
	assert.Equal(t, 12, PointsFor(decimal.RequireFromString("12.999")))
	assert.Equal(t, 0, PointsFor(decimal.RequireFromString("0.5")))
	assert.Equal(t, 0, PointsFor(decimal.RequireFromString("-3")))
}
