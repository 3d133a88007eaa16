// Package loyalty computes customer reward status from accumulated points.
package loyalty

import "github.com/shopspring/decimal"

// Step is the size of one progress bar segment.
const Step = 50

// Reward is a tier unlocked once a customer holds Points.
type Reward struct {
	Points int    `json:"points"`
	Name   string `json:"name"`
}

// Rewards lists the tiers in ascending order.
var Rewards = []Reward{
	{Points: 50, Name: "Café offert"},
	{Points: 100, Name: "Dessert gratuit"},
	{Points: 200, Name: "10% de réduction"},
	{Points: 500, Name: "Repas offert"},
}

// Tier is a reward with its unlock state for a given balance.
type Tier struct {
	Reward
	Unlocked bool `json:"unlocked"`
}

// Card summarises a balance against the reward tiers.
type Card struct {
	Points       int     `json:"points"`
	Tiers        []Tier  `json:"tiers"`
	Next         *Reward `json:"next,omitempty"`
	PointsToNext int     `json:"pointsToNext"`
	Progress     float64 `json:"progress"`
}

// CardFor builds the loyalty card for a balance.
func CardFor(points int) Card {
	if points < 0 {
		points = 0
	}

	card := Card{
		Points:   points,
		Tiers:    make([]Tier, 0, len(Rewards)),
		Progress: float64(points%Step) / Step * 100,
	}

	for _, r := range Rewards {
		card.Tiers = append(card.Tiers, Tier{Reward: r, Unlocked: points >= r.Points})
		if card.Next == nil && r.Points > points {
			next := r
			card.Next = &next
			card.PointsToNext = r.Points - points
		}
	}

	return card
}

// PointsFor returns the points earned for spending total: one per whole currency unit.
func PointsFor(total decimal.Decimal) int {
	if total.IsNegative() {
		return 0
	}
	return int(total.Floor().IntPart())
}
