package repositories

import (
	"context"

	"github.com/dmitrijs2005/fittracker/internal/client/client"
	"github.com/dmitrijs2005/fittracker/internal/client/models"
)

type AuthRepository interface {
	Login(ctx context.Context, email, password string) (*models.Envelope[models.AuthData], error)
	Register(ctx context.Context, username, email, password string) (*models.Envelope[models.AuthData], error)
}

type authRepository struct {
	client client.Client
}

func NewAuthRepository(c client.Client) AuthRepository {
	return &authRepository{client: c}
}

func (r *authRepository) Login(ctx context.Context, email, password string) (*models.Envelope[models.AuthData], error) {
	return r.client.Login(ctx, email, password)
}

func (r *authRepository) Register(ctx context.Context, username, email, password string) (*models.Envelope[models.AuthData], error) {
	return r.client.Register(ctx, username, email, password)
}
