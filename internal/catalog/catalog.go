// Package catalog loads the restaurant menu and serves read-only views of it.
package catalog

import (
	"context"
	"fmt"
	"sort"

	"tableside/internal/model"
)

// Loader defines the interface for loading menu documents.
type Loader interface {
	// Load reads a menu document from the given location.
	Load(ctx context.Context, path string) (Document, error)
}

// Items converts the document into catalogue items, in document order.
// Unknown categories, duplicate ids and negative prices are rejected.
func (d Document) Items() ([]model.MenuItem, error) {
	var items []model.MenuItem
	seen := make(map[string]struct{})

	for _, c := range d.Restaurant.Categories {
		kind, err := ParseKind(c.Name)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", c.Name, err)
		}
		for _, it := range c.Items {
			if err := it.Validate(); err != nil {
				return nil, fmt.Errorf("item %q in category %q: %w", it.Name, c.Name, err)
			}
			mi := toMenuItem(c, kind, it)
			if _, dup := seen[mi.ID]; dup {
				return nil, fmt.Errorf("duplicate item id %q in category %q", mi.ID, c.Name)
			}
			seen[mi.ID] = struct{}{}
			items = append(items, mi)
		}
	}

	return items, nil
}

// Catalog is an immutable snapshot of the menu. It is safe for concurrent use.
type Catalog struct {
	restaurant string
	currency   string
	items      []model.MenuItem
	byID       map[string]int
	doc        Document
}

// New builds a catalog from a menu document.
func New(doc Document) (*Catalog, error) {
	items, err := doc.Items()
	if err != nil {
		return nil, err
	}

	byID := make(map[string]int, len(items))
	for i, it := range items {
		byID[it.ID] = i
	}

	return &Catalog{
		restaurant: doc.Restaurant.Name,
		currency:   doc.Restaurant.Currency,
		items:      items,
		byID:       byID,
		doc:        doc.Clone(),
	}, nil
}

// Restaurant returns the restaurant display name.
func (c *Catalog) Restaurant() string { return c.restaurant }

// Currency returns the currency code of all prices.
func (c *Catalog) Currency() string { return c.currency }

// Len returns the number of items, available or not.
func (c *Catalog) Len() int { return len(c.items) }

// Items returns every item, including unavailable ones.
func (c *Catalog) Items() []model.MenuItem {
	out := make([]model.MenuItem, len(c.items))
	copy(out, c.items)
	return out
}

// Available returns the items that can be ordered.
func (c *Catalog) Available() []model.MenuItem {
	return c.filter(func(model.MenuItem) bool { return true })
}

// ByID looks up an item regardless of availability.
func (c *Catalog) ByID(id string) (model.MenuItem, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.MenuItem{}, false
	}
	return c.items[i], true
}

// ByCategory returns the available items of a category. Unknown names yield nil.
func (c *Catalog) ByCategory(name string) []model.MenuItem {
	kind, err := ParseKind(name)
	if err != nil {
		return nil
	}
	return c.filter(func(it model.MenuItem) bool { return it.Category == kind.Name() })
}

// ByGroup returns the available items of a group; GroupAll returns all of them.
func (c *Catalog) ByGroup(g Group) []model.MenuItem {
	if g == GroupAll {
		return c.Available()
	}
	return c.filter(func(it model.MenuItem) bool { return it.Group == string(g) })
}

// Categories lists the categories of a group with their available item counts.
// For GroupAll it lists every category present in the menu, sorted by name.
func (c *Catalog) Categories(g Group) []model.CategoryView {
	counts := make(map[string]int)
	present := make(map[Kind]struct{})
	for _, it := range c.items {
		kind, _ := ParseKind(it.Category)
		present[kind] = struct{}{}
		if it.Available {
			counts[it.Category]++
		}
	}

	var kinds []Kind
	if g == GroupAll {
		for k := range present {
			kinds = append(kinds, k)
		}
		sort.Slice(kinds, func(i, j int) bool { return kinds[i].Name() < kinds[j].Name() })
	} else {
		kinds = KindsOf(g)
	}

	out := make([]model.CategoryView, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, model.CategoryView{
			Name:      k.Name(),
			Group:     string(k.Group()),
			Icon:      k.Icon(),
			ItemCount: counts[k.Name()],
		})
	}
	return out
}

// Overview returns the restaurant header and every group with its categories.
func (c *Catalog) Overview() model.MenuOverview {
	groups := make([]model.GroupView, 0, len(Groups))
	for _, g := range Groups {
		groups = append(groups, model.GroupView{Name: string(g), Categories: c.Categories(g)})
	}
	return model.MenuOverview{
		Restaurant: c.restaurant,
		Currency:   c.currency,
		Groups:     groups,
	}
}

// Document returns a deep copy of the source document.
func (c *Catalog) Document() Document {
	return c.doc.Clone()
}

func (c *Catalog) filter(keep func(model.MenuItem) bool) []model.MenuItem {
	var out []model.MenuItem
	for _, it := range c.items {
		if it.Available && keep(it) {
			out = append(out, it)
		}
	}
	return out
}
