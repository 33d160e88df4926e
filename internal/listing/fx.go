package listing

import (
	"github.com/smallbiznis/invoicefill/internal/listing/client"
	"go.uber.org/fx"
)

var Module = fx.Module("listing.client",
	fx.Provide(client.NewClient),
)
