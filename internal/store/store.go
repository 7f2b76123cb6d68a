package store

import (
	"context"

	"github.com/dmuchai/my-code-review-agent/internal/models"
)

// ReviewListFilter specifies filters for listing recorded reviews.
type ReviewListFilter struct {
	RepoPath string
	Source   models.ReviewSource
	Limit    int
}

// Store defines the persistence interface for the review ledger.
type Store interface {
	CreateReview(ctx context.Context, r *models.Review) error
	GetReview(ctx context.Context, id string) (*models.Review, error)
	ListReviews(ctx context.Context, filter ReviewListFilter) ([]*models.Review, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
