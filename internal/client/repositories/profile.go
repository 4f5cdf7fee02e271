package repositories

import (
	"context"

	"github.com/dmitrijs2005/fittracker/internal/client/client"
	"github.com/dmitrijs2005/fittracker/internal/client/models"
)

type ProfileRepository interface {
	Get(ctx context.Context, userID int) (*models.Envelope[models.ProfileData], error)
	Update(ctx context.Context, userID int, update models.ProfileUpdate) (*models.Envelope[models.ProfileData], error)
}

type profileRepository struct {
	client client.Client
}

func NewProfileRepository(c client.Client) ProfileRepository {
	return &profileRepository{client: c}
}

func (r *profileRepository) Get(ctx context.Context, userID int) (*models.Envelope[models.ProfileData], error) {
	return r.client.FetchProfile(ctx, userID)
}

func (r *profileRepository) Update(ctx context.Context, userID int, update models.ProfileUpdate) (*models.Envelope[models.ProfileData], error) {
	return r.client.UpdateProfile(ctx, userID, update)
}
