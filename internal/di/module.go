package di

import (
	"go.uber.org/fx"

	"github.com/cyna-app/commerce/internal/adapter/payment"
	"github.com/cyna-app/commerce/internal/app"
	"github.com/cyna-app/commerce/internal/config"
	"github.com/cyna-app/commerce/internal/logger"
	"github.com/cyna-app/commerce/internal/pkg/auth"
	"github.com/cyna-app/commerce/internal/server/http/handlers"
	"github.com/cyna-app/commerce/internal/server/http/router"
	"github.com/cyna-app/commerce/internal/storage/postgres"
	"github.com/cyna-app/commerce/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		payment.Module,
		usecase.Module,
		fx.Provide(
			func(facade *app.CommerceFacade) handlers.CommerceFacade { return facade },
			func(storage *postgres.Storage) handlers.HealthChecker { return storage },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
