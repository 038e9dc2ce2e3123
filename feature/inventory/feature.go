package inventory

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the inventory feature. db may be nil.
func NewFeature(cfg Config, source Source, log *zap.Logger, db *gorm.DB) (*Feature, error) {
	svc, err := NewService(cfg, source, log, db)
	if err != nil {
		return nil, err
	}
	return &Feature{service: svc, handler: NewHandler(svc, log)}, nil
}

// Service exposes the pipeline service for the CLI commands.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "inventory"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
