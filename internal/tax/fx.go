package tax

import (
	"github.com/smallbiznis/invoicefill/internal/tax/cache"
	"github.com/smallbiznis/invoicefill/internal/tax/client"
	"go.uber.org/fx"
)

var Module = fx.Module("tax.client",
	fx.Provide(cache.NewCache),
	fx.Provide(client.NewClient),
)
