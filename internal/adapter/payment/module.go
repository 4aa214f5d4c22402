package payment

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/cyna-app/commerce/internal/config"
)

// Module exposes the payment gateway implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Gateway, error) {
	return NewHTTPClient(p.Config.PaymentAddress, p.Config.PaymentAPIKey, p.Logger)
}
