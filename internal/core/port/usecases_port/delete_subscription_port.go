package usecases_port

import "context"

type DeleteSubscriptionUseCasePort interface {
	Execute(ctx context.Context, link, email string) error
}
