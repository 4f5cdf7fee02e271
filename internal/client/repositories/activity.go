package repositories

import (
	"context"

	"github.com/dmitrijs2005/fittracker/internal/client/client"
	"github.com/dmitrijs2005/fittracker/internal/client/models"
)

type ActivityRepository interface {
	Add(ctx context.Context, record models.ActivityRecord) (*models.Envelope[models.ActivityCreated], error)
	History(ctx context.Context, userID int, filter models.HistoryFilter) (*models.Envelope[models.ActivityList], error)
}

type activityRepository struct {
	client client.Client
}

func NewActivityRepository(c client.Client) ActivityRepository {
	return &activityRepository{client: c}
}

func (r *activityRepository) Add(ctx context.Context, record models.ActivityRecord) (*models.Envelope[models.ActivityCreated], error) {
	return r.client.SubmitActivity(ctx, record)
}

func (r *activityRepository) History(ctx context.Context, userID int, filter models.HistoryFilter) (*models.Envelope[models.ActivityList], error) {
	return r.client.FetchHistory(ctx, userID, filter)
}
