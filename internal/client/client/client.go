package client

import (
	"context"

	"github.com/dmitrijs2005/fittracker/internal/client/models"
)

// Client is the backend API, one method per endpoint. A returned envelope
// may still report success=false; only transport, status and decode
// failures are errors.
type Client interface {
	Login(ctx context.Context, email, password string) (*models.Envelope[models.AuthData], error)
	Register(ctx context.Context, username, email, password string) (*models.Envelope[models.AuthData], error)
	SubmitActivity(ctx context.Context, record models.ActivityRecord) (*models.Envelope[models.ActivityCreated], error)
	FetchHistory(ctx context.Context, userID int, filter models.HistoryFilter) (*models.Envelope[models.ActivityList], error)
	FetchProfile(ctx context.Context, userID int) (*models.Envelope[models.ProfileData], error)
	UpdateProfile(ctx context.Context, userID int, update models.ProfileUpdate) (*models.Envelope[models.ProfileData], error)
	FetchGoal(ctx context.Context, userID int) (*models.Envelope[models.GoalState], error)
	SetGoal(ctx context.Context, userID int, targetCalories int) (*models.Envelope[models.GoalState], error)
}
