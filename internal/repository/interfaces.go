package repository

import (
	"context"

	"github.com/dermalyze/ratioplot/pkg/models"
)

// RunRepository defines the interface for plot run history operations
type RunRepository interface {
	Create(ctx context.Context, run *models.PlotRun) error
	GetByID(ctx context.Context, id string) (*models.PlotRun, error)
	ListRecent(ctx context.Context, limit int) ([]*models.PlotRun, error)
}
