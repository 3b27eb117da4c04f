package customer

import (
	"go.uber.org/fx"

	"github.com/billfold/billfold/internal/customer/repository"
	"github.com/billfold/billfold/internal/customer/service"
)

var Module = fx.Module("customer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
