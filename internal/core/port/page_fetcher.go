package port

import "context"

// PageFetcherPort выполняет один GET-запрос и возвращает HTML страницы.
// Любая ошибка транспорта оборачивает domain.ErrFetch.
type PageFetcherPort interface {
	FetchPage(ctx context.Context, link string) (string, error)
}

// LinkProberPort проверяет, что по ссылке вообще отвечает сервер.
// Код ответа не важен, недоступной считается только ошибка транспорта.
type LinkProberPort interface {
	IsReachable(ctx context.Context, link string) bool
}
