package repositories

import (
	"context"

	"github.com/dmitrijs2005/fittracker/internal/client/client"
	"github.com/dmitrijs2005/fittracker/internal/client/models"
)

type GoalRepository interface {
	Current(ctx context.Context, userID int) (*models.Envelope[models.GoalState], error)
	Set(ctx context.Context, userID int, targetCalories int) (*models.Envelope[models.GoalState], error)
}

type goalRepository struct {
	client client.Client
}

func NewGoalRepository(c client.Client) GoalRepository {
	return &goalRepository{client: c}
}

func (r *goalRepository) Current(ctx context.Context, userID int) (*models.Envelope[models.GoalState], error) {
	return r.client.FetchGoal(ctx, userID)
}

func (r *goalRepository) Set(ctx context.Context, userID int, targetCalories int) (*models.Envelope[models.GoalState], error) {
	return r.client.SetGoal(ctx, userID, targetCalories)
}
