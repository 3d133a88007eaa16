package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"tableside/internal/model"

	"github.com/shopspring/decimal"
)

// DefaultImage is used for items that carry no image URI.
const DefaultImage = "https://images.unsplash.com/photo-1546548970-71785318a17b?w=400"

// minorUnitExp converts minor currency units (millimes) to major units.
const minorUnitExp = -3

// Document is the bundled menu file shape, shared with the admin export.
type Document struct {
	Restaurant Restaurant `json:"restaurant"`
}

// Restaurant is the root of a menu document.
type Restaurant struct {
	Name       string     `json:"name"`
	Currency   string     `json:"currency"`
	Categories []Category `json:"categories"`
}

// Category is a named list of items.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Item is a menu entry as stored in the document. Prices are in minor units.
type Item struct {
	Code        *int64           `json:"code,omitempty"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Price       *int64           `json:"price,omitempty"`
	Prices      map[string]int64 `json:"prices,omitempty"`
	Image       string           `json:"image"`
	Available   *bool            `json:"available,omitempty"`
}

// Parse decodes a menu document.
func Parse(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("failed to decode menu document: %w", err)
	}
	return doc, nil
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := Document{Restaurant: Restaurant{
		Name:       d.Restaurant.Name,
		Currency:   d.Restaurant.Currency,
		Categories: make([]Category, len(d.Restaurant.Categories)),
	}}
	for i, c := range d.Restaurant.Categories {
		out.Restaurant.Categories[i] = c.Clone()
	}
	return out
}

// Clone returns a deep copy of the category.
func (c Category) Clone() Category {
	items := make([]Item, len(c.Items))
	for i, it := range c.Items {
		items[i] = it.Clone()
	}
	return Category{ID: c.ID, Name: c.Name, Items: items}
}

// Clone returns a deep copy of the item.
func (it Item) Clone() Item {
	out := it
	if it.Code != nil {
		v := *it.Code
		out.Code = &v
	}
	if it.Price != nil {
		v := *it.Price
		out.Price = &v
	}
	if it.Available != nil {
		v := *it.Available
		out.Available = &v
	}
	if it.Prices != nil {
		out.Prices = make(map[string]int64, len(it.Prices))
		for k, v := range it.Prices {
			out.Prices[k] = v
		}
	}
	return out
}

// Validate checks the price fields of an item.
func (it Item) Validate() error {
	if it.Price != nil && *it.Price < 0 {
		return model.ErrInvalidPrice
	}
	for _, v := range it.Prices {
		if v < 0 {
			return model.ErrInvalidPrice
		}
	}
	return nil
}

// ItemID derives the catalogue id of an item: its code when present,
// otherwise "<categoryID>-<name>".
func ItemID(categoryID string, it Item) string {
	if it.Code != nil {
		return strconv.FormatInt(*it.Code, 10)
	}
	return categoryID + "-" + it.Name
}

// toMenuItem converts a document item into the catalogue shape.
// A non-zero single price wins; otherwise the cheapest variant is the base price.
func toMenuItem(c Category, k Kind, it Item) model.MenuItem {
	mi := model.MenuItem{
		ID:          ItemID(c.ID, it),
		Name:        it.Name,
		Description: it.Description,
		Price:       decimal.Zero,
		Category:    k.Name(),
		Group:       string(k.Group()),
		Image:       it.Image,
		Available:   it.Available == nil || *it.Available,
	}
	if mi.Image == "" {
		mi.Image = DefaultImage
	}

	if len(it.Prices) > 0 {
		names := make([]string, 0, len(it.Prices))
		for name := range it.Prices {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			mi.Options = append(mi.Options, model.PriceOption{
				Name:  name,
				Price: fromMinor(it.Prices[name]),
			})
		}
	}

	// Variant items list from their cheapest option. The printed menu shows
	// the first named variant ("Said") instead; cart lines always carry the
	// chosen option's own price, so only the listing differs.
	switch {
	case it.Price != nil && *it.Price != 0:
		mi.Price = fromMinor(*it.Price)
	case len(mi.Options) > 0:
		mi.Price = mi.Options[0].Price
		for _, o := range mi.Options[1:] {
			if o.Price.LessThan(mi.Price) {
				mi.Price = o.Price
			}
		}
	}

	return mi
}

func fromMinor(v int64) decimal.Decimal {
	return decimal.New(v, minorUnitExp)
}
