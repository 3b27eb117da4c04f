package product

import (
	"go.uber.org/fx"

	"github.com/billfold/billfold/internal/product/domain"
	"github.com/billfold/billfold/internal/product/service"
	"github.com/billfold/billfold/pkg/repository"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.ProvideStore[domain.Product]),
	fx.Provide(service.New),
)
