package auth

import (
	"go.uber.org/fx"

	"github.com/billfold/billfold/internal/auth/domain"
	"github.com/billfold/billfold/internal/auth/service"
	"github.com/billfold/billfold/pkg/repository"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.ProvideStore[domain.User]),
	fx.Provide(repository.ProvideStore[domain.Session]),
	fx.Provide(service.New),
)
