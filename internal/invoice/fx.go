package invoice

import (
	"go.uber.org/fx"

	"github.com/billfold/billfold/internal/invoice/repository"
	"github.com/billfold/billfold/internal/invoice/service"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
