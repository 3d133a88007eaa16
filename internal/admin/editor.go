// Package admin provides the operator-side menu editor and its password gate.
//
// The editor works on its own copy of the menu document. Edits are never
// written back to the live catalogue; operators export the document and
// redeploy it.
package admin

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"tableside/internal/catalog"
	"tableside/internal/model"
)

// ExportFilename is the suggested download name of an export.
const ExportFilename = "menu.json"

const defaultCurrency = "TND"

// Editor is an in-memory, mutex-guarded menu document.
type Editor struct {
	mu  sync.RWMutex
	doc catalog.Document
}

// NewEditor seeds an editor with a copy of doc.
func NewEditor(doc catalog.Document) *Editor {
	return &Editor{doc: doc.Clone()}
}

// Snapshot returns a copy of the current document.
func (e *Editor) Snapshot() catalog.Document {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.Clone()
}

// AddCategory appends an empty category. The name must be a known category.
func (e *Editor) AddCategory(id, name string) (catalog.Category, error) {
	id, name = strings.TrimSpace(id), strings.TrimSpace(name)
	if id == "" || name == "" {
		return catalog.Category{}, model.ErrMissingField
	}
	if _, err := catalog.ParseKind(name); err != nil {
		return catalog.Category{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.categoryIndex(id) >= 0 {
		return catalog.Category{}, model.ErrCategoryExists
	}

	c := catalog.Category{ID: id, Name: name, Items: []catalog.Item{}}
	e.doc.Restaurant.Categories = append(e.doc.Restaurant.Categories, c)
	return c.Clone(), nil
}

// UpdateCategory renames a category.
func (e *Editor) UpdateCategory(id, name string) (catalog.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return catalog.Category{}, model.ErrMissingField
	}
	if _, err := catalog.ParseKind(name); err != nil {
		return catalog.Category{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.categoryIndex(id)
	if i < 0 {
		return catalog.Category{}, model.ErrCategoryNotFound
	}
	e.doc.Restaurant.Categories[i].Name = name
	return e.doc.Restaurant.Categories[i].Clone(), nil
}

// DeleteCategory removes a category and its items.
func (e *Editor) DeleteCategory(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.categoryIndex(id)
	if i < 0 {
		return model.ErrCategoryNotFound
	}
	cats := e.doc.Restaurant.Categories
	e.doc.Restaurant.Categories = append(cats[:i], cats[i+1:]...)
	return nil
}

// AddItem appends an item to a category. Items are keyed by name within
// their category; name and image are required.
func (e *Editor) AddItem(categoryID string, it catalog.Item) (catalog.Item, error) {
	it.Name = strings.TrimSpace(it.Name)
	if err := validateItem(it); err != nil {
		return catalog.Item{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ci := e.categoryIndex(categoryID)
	if ci < 0 {
		return catalog.Item{}, model.ErrCategoryNotFound
	}
	c := &e.doc.Restaurant.Categories[ci]
	if itemIndex(c, it.Name) >= 0 {
		return catalog.Item{}, model.ErrMenuItemExists
	}

	c.Items = append(c.Items, it.Clone())
	return it.Clone(), nil
}

// UpdateItem replaces the item called name. An empty replacement name keeps
// the current one.
func (e *Editor) UpdateItem(categoryID, name string, it catalog.Item) (catalog.Item, error) {
	it.Name = strings.TrimSpace(it.Name)
	if it.Name == "" {
		it.Name = name
	}
	if err := validateItem(it); err != nil {
		return catalog.Item{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ci := e.categoryIndex(categoryID)
	if ci < 0 {
		return catalog.Item{}, model.ErrCategoryNotFound
	}
	c := &e.doc.Restaurant.Categories[ci]

	ii := itemIndex(c, name)
	if ii < 0 {
		return catalog.Item{}, model.ErrMenuItemNotFound
	}
	if it.Name != name && itemIndex(c, it.Name) >= 0 {
		return catalog.Item{}, model.ErrMenuItemExists
	}

	c.Items[ii] = it.Clone()
	return it.Clone(), nil
}

// DeleteItem removes the item called name from a category.
func (e *Editor) DeleteItem(categoryID, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ci := e.categoryIndex(categoryID)
	if ci < 0 {
		return model.ErrCategoryNotFound
	}
	c := &e.doc.Restaurant.Categories[ci]

	ii := itemIndex(c, name)
	if ii < 0 {
		return model.ErrMenuItemNotFound
	}
	c.Items = append(c.Items[:ii], c.Items[ii+1:]...)
	return nil
}

// Export serialises the current document as indented JSON.
func (e *Editor) Export() ([]byte, error) {
	doc := e.Snapshot()
	if doc.Restaurant.Currency == "" {
		doc.Restaurant.Currency = defaultCurrency
	}
	if doc.Restaurant.Categories == nil {
		doc.Restaurant.Categories = []catalog.Category{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode menu export: %w", err)
	}
	return data, nil
}

func (e *Editor) categoryIndex(id string) int {
	for i, c := range e.doc.Restaurant.Categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func itemIndex(c *catalog.Category, name string) int {
	for i, it := range c.Items {
		if it.Name == name {
			return i
		}
	}
	return -1
}

func validateItem(it catalog.Item) error {
	if it.Name == "" || strings.TrimSpace(it.Image) == "" {
		return model.ErrMissingField
	}
	return it.Validate()
}
