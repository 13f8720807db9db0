package seed

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/Kochuseyin65/muayane/internal/api"
)

// Seeder creates equipment records through the backend API.
type Seeder struct {
	client *api.Client
	logger *zap.Logger
}

// New creates a seeder against the given base URL.
func New(base string, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{client: api.New(base, logger), logger: logger}
}

// Run logs in and creates one equipment with the given template,
// returning the created payload for display.
func (s *Seeder) Run(email, password, name, equipmentType string, tpl Template) (json.RawMessage, error) {
	login, err := s.client.Post("/auth/login", map[string]any{
		"email":    email,
		"password": password,
	}, "")
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if !login.OK() {
		return nil, fmt.Errorf("login failed with status %d", login.Status)
	}
	token := api.LoginToken(login)
	if token == "" {
		return nil, fmt.Errorf("token not found in login response")
	}
	s.logger.Info("logged in", zap.String("email", email))

	resp, err := s.client.Post("/equipment", map[string]any{
		"name":     name,
		"type":     equipmentType,
		"template": tpl,
	}, token)
	if err != nil {
		return nil, fmt.Errorf("create equipment: %w", err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("create equipment failed with status %d", resp.Status)
	}
	s.logger.Info("equipment created", zap.String("name", name))
	if resp.Envelope == nil {
		return nil, fmt.Errorf("create equipment returned no payload")
	}
	return resp.Envelope.Data, nil
}
