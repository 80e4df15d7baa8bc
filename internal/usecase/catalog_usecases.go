package usecase

import (
	"context"

	"github.com/example/kawa-b2b/internal/domain"
)

// LoadCatalog — загрузить каталог из источника в кэш. Вызывается при
// старте и может дёргаться повторно для обновления остатков.
type LoadCatalog struct {
	Source domain.CatalogSource
	Cache  domain.CatalogCache
}

func (uc LoadCatalog) Execute(ctx context.Context) error {
	list, err := uc.Source.Load(ctx)
	if err != nil {
		return err
	}
	uc.Cache.Replace(list)
	return nil
}

// ListProducts — каталог для витрины, из кэша.
type ListProducts struct {
	Cache domain.CatalogCache
}

func (uc ListProducts) Execute() []domain.Product {
	return uc.Cache.List()
}
