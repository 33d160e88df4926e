package main

import (
	"github.com/smallbiznis/invoicefill/internal/clock"
	"github.com/smallbiznis/invoicefill/internal/config"
	"github.com/smallbiznis/invoicefill/internal/invoice"
	"github.com/smallbiznis/invoicefill/internal/listing"
	"github.com/smallbiznis/invoicefill/internal/observability"
	"github.com/smallbiznis/invoicefill/internal/ratelimit"
	"github.com/smallbiznis/invoicefill/internal/redisconn"
	"github.com/smallbiznis/invoicefill/internal/server"
	"github.com/smallbiznis/invoicefill/internal/tax"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		clock.Module,
		redisconn.Module,

		listing.Module,
		tax.Module,
		invoice.Module,

		ratelimit.Module, // /create_pdf is throttled per client IP
		server.Module,
	)
	app.Run()
}
