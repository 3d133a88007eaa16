package service

import (
	"context"

	"tableside/internal/admin"
	"tableside/internal/catalog"
	"tableside/internal/model"

	"github.com/rs/zerolog"
)

type adminService struct {
	gate      *admin.Gate
	editor    *admin.Editor
	publisher admin.Publisher
	logger    zerolog.Logger
}

// NewAdminService creates a new admin service. A nil publisher disables
// Publish.
func NewAdminService(gate *admin.Gate, editor *admin.Editor, publisher admin.Publisher, logger zerolog.Logger) AdminService {
	return &adminService{
		gate:      gate,
		editor:    editor,
		publisher: publisher,
		logger:    logger.With().Str("service", "admin").Logger(),
	}
}

func (s *adminService) Login(client, password string) (admin.Token, error) {
	return s.gate.Login(client, password)
}

func (s *adminService) Logout(token string) { s.gate.Logout(token) }

func (s *adminService) Authorize(token string) error { return s.gate.Authorize(token) }

func (s *adminService) Menu() catalog.Document { return s.editor.Snapshot() }

func (s *adminService) AddCategory(id, name string) (catalog.Category, error) {
	c, err := s.editor.AddCategory(id, name)
	if err == nil {
		s.logger.Info().Str("category_id", id).Str("name", c.Name).Msg("category added")
	}
	return c, err
}

func (s *adminService) UpdateCategory(id, name string) (catalog.Category, error) {
	return s.editor.UpdateCategory(id, name)
}

func (s *adminService) DeleteCategory(id string) error {
	if err := s.editor.DeleteCategory(id); err != nil {
		return err
	}
	s.logger.Info().Str("category_id", id).Msg("category deleted")
	return nil
}

func (s *adminService) AddItem(categoryID string, it catalog.Item) (catalog.Item, error) {
	return s.editor.AddItem(categoryID, it)
}

func (s *adminService) UpdateItem(categoryID, name string, it catalog.Item) (catalog.Item, error) {
	return s.editor.UpdateItem(categoryID, name, it)
}

func (s *adminService) DeleteItem(categoryID, name string) error {
	return s.editor.DeleteItem(categoryID, name)
}

func (s *adminService) Export() ([]byte, error) {
	return s.editor.Export()
}

// Publish uploads the current export and returns its object key.
func (s *adminService) Publish(ctx context.Context) (string, error) {
	if s.publisher == nil {
		return "", model.ErrExportUnavailable
	}
	data, err := s.editor.Export()
	if err != nil {
		return "", err
	}
	return s.publisher.Publish(ctx, data)
}
