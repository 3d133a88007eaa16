package model

import "github.com/shopspring/decimal"

// MenuItem represents a purchasable item in the catalogue.
type MenuItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Group       string          `json:"group"`
	Image       string          `json:"image"`
	Available   bool            `json:"available"`
	Options     []PriceOption   `json:"options,omitempty"`
}

// PriceOption is a named price variant of a menu item.
type PriceOption struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Option returns the variant with the given name.
func (m MenuItem) Option(name string) (PriceOption, bool) {
	for _, o := range m.Options {
		if o.Name == name {
			return o, true
		}
	}
	return PriceOption{}, false
}

// CategoryView describes a category for browsing.
type CategoryView struct {
	Name      string `json:"name"`
	Group     string `json:"group"`
	Icon      string `json:"icon"`
	ItemCount int    `json:"itemCount"`
}

// GroupView describes a group of categories.
type GroupView struct {
	Name       string         `json:"name"`
	Categories []CategoryView `json:"categories"`
}

// MenuOverview is the landing payload for the menu screen.
type MenuOverview struct {
	Restaurant string      `json:"restaurant"`
	Currency   string      `json:"currency"`
	Groups     []GroupView `json:"groups"`
}
