package service

import (
	"tableside/internal/catalog"
	"tableside/internal/model"
)

type menuService struct {
	menu Menu
}

// NewMenuService creates a new menu service.
func NewMenuService(menu Menu) MenuService {
	return &menuService{menu: menu}
}

func (s *menuService) Overview() model.MenuOverview {
	return s.menu.Overview()
}

func (s *menuService) Categories(group string) ([]model.CategoryView, error) {
	g, ok := catalog.ParseGroup(group)
	if !ok {
		return nil, model.ErrInvalidGroup
	}
	return s.menu.Categories(g), nil
}

func (s *menuService) Items(category string) ([]model.MenuItem, error) {
	var items []model.MenuItem
	if category == "" {
		items = s.menu.Available()
	} else {
		if _, err := catalog.ParseKind(category); err != nil {
			return nil, err
		}
		items = s.menu.ByCategory(category)
	}
	if items == nil {
		items = []model.MenuItem{}
	}
	return items, nil
}

func (s *menuService) Item(id string) (model.MenuItem, error) {
	it, ok := s.menu.ByID(id)
	if !ok {
		return model.MenuItem{}, model.ErrItemNotFound
	}
	return it, nil
}
