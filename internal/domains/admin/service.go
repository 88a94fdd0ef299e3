package admin

import "context"

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
}
