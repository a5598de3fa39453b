package usecases_port

import "context"

type SubscribeUseCasePort interface {
	Execute(ctx context.Context, link, email string) error
}
