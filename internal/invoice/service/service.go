package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/smallbiznis/invoicefill/internal/clock"
	"github.com/smallbiznis/invoicefill/internal/config"
	"github.com/smallbiznis/invoicefill/internal/invoice/cost"
	invoicedomain "github.com/smallbiznis/invoicefill/internal/invoice/domain"
	"github.com/smallbiznis/invoicefill/internal/invoice/format"
	listingdomain "github.com/smallbiznis/invoicefill/internal/listing/domain"
	obslogger "github.com/smallbiznis/invoicefill/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/invoicefill/internal/observability/metrics"
	"github.com/smallbiznis/invoicefill/internal/observability/tracing"
	taxdomain "github.com/smallbiznis/invoicefill/internal/tax/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	tracerName      = "invoicefill/invoice"
	defaultQuantity = "1"
)

// Renderer draws the overlay document.
type Renderer interface {
	Render(ctx context.Context, data invoicedomain.InvoiceData) ([]byte, error)
}

// Merger stamps the overlay onto the template.
type Merger interface {
	Merge(ctx context.Context, template, overlay []byte) ([]byte, error)
}

type ServiceParam struct {
	fx.In

	Cfg       config.Config
	Log       *zap.Logger
	Listings  listingdomain.Fetcher
	Tax       taxdomain.Lookup
	Renderer  Renderer
	Merger    Merger
	Templates TemplateLoader
	Clock     clock.Clock
	Metrics   *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	log       *zap.Logger
	listings  listingdomain.Fetcher
	tax       taxdomain.Lookup
	renderer  Renderer
	merger    Merger
	templates TemplateLoader
	clock     clock.Clock
	metrics   *obsmetrics.Metrics
	dueDays   int
}

func NewService(p ServiceParam) invoicedomain.Service {
	return &Service{
		log:       p.Log.Named("invoice.service"),
		listings:  p.Listings,
		tax:       p.Tax,
		renderer:  p.Renderer,
		merger:    p.Merger,
		templates: p.Templates,
		clock:     p.Clock,
		metrics:   p.Metrics,
		dueDays:   p.Cfg.DueDays,
	}
}

// Generate validates the form, fetches the listing and returns the filled
// invoice document.
func (s *Service) Generate(ctx context.Context, form invoicedomain.FormData) ([]byte, error) {
	ctx, span := tracing.Start(ctx, tracerName, "invoice.generate")
	defer span.End()

	out, err := s.generate(ctx, form)
	if err != nil {
		span.RecordError(tracing.SafeError(err))
		span.SetStatus(codes.Error, "invoice generation failed")
		s.metrics.RecordInvoice(ctx, outcomeFor(err))
		return nil, err
	}

	s.metrics.RecordInvoice(ctx, "success")
	span.SetAttributes(attribute.Int("invoice.bytes", len(out)))
	return out, nil
}

func (s *Service) generate(ctx context.Context, form invoicedomain.FormData) ([]byte, error) {
	log := obslogger.WithContext(ctx, s.log)

	id, err := invoicedomain.ListingIDFromURL(form.URL())
	if err != nil {
		return nil, err
	}

	record, err := s.listings.Fetch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch listing: %w", err)
	}
	if record.Empty() {
		return nil, invoicedomain.ErrListingNotFound
	}

	merged := invoicedomain.MergeForm(record, form)
	data, err := s.buildInvoice(ctx, merged)
	if err != nil {
		return nil, err
	}

	overlay, err := s.render(ctx, data)
	if err != nil {
		return nil, err
	}

	template, err := s.templates.Load(ctx)
	if err != nil {
		return nil, err
	}

	mctx, span := tracing.Start(ctx, tracerName, "invoice.merge")
	out, err := s.merger.Merge(mctx, template, overlay)
	span.End()
	if err != nil {
		return nil, fmt.Errorf("merge overlay: %w", err)
	}

	log.Info("invoice generated",
		zap.String("listing_id", id),
		zap.String("tax_rate", data.Costs.TaxRate.String()),
		zap.Int("bytes", len(out)),
	)
	return out, nil
}

func (s *Service) render(ctx context.Context, data invoicedomain.InvoiceData) ([]byte, error) {
	ctx, span := tracing.Start(ctx, tracerName, "invoice.render")
	defer span.End()

	overlay, err := s.renderer.Render(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("render overlay: %w", err)
	}
	return overlay, nil
}

func (s *Service) buildInvoice(ctx context.Context, merged listingdomain.Record) (invoicedomain.InvoiceData, error) {
	subtotal, ok, err := invoicedomain.ParseAmount(merged[listingdomain.FieldPrice])
	if err != nil {
		return invoicedomain.InvoiceData{}, fmt.Errorf("%s: %w", listingdomain.FieldPrice, err)
	}
	if !ok {
		return invoicedomain.InvoiceData{}, invoicedomain.ErrMissingSellingPrice
	}

	shipping, err := invoicedomain.ParseOptional(merged[listingdomain.FieldShipping])
	if err != nil {
		return invoicedomain.InvoiceData{}, fmt.Errorf("%s: %w", listingdomain.FieldShipping, err)
	}
	discount, err := invoicedomain.ParseOptional(merged[listingdomain.FieldDiscount])
	if err != nil {
		return invoicedomain.InvoiceData{}, fmt.Errorf("%s: %w", listingdomain.FieldDiscount, err)
	}

	rate := s.tax.Lookup(ctx, merged.Text(listingdomain.FieldZip))
	costs := cost.Compute(subtotal, rate, shipping, discount)

	issued := s.clock.Now()
	return invoicedomain.InvoiceData{
		Contact: invoicedomain.Contact{
			Name:     merged.Text(listingdomain.FieldName),
			Company:  merged.Text(listingdomain.FieldCompany),
			Address1: merged.Text(listingdomain.FieldAddress1),
			Address2: merged.Text(listingdomain.FieldAddress2),
			Phone:    merged.Text(listingdomain.FieldPhone),
		},
		Item: invoicedomain.LineItem{
			Title:       merged.Text(listingdomain.FieldTitle),
			Description: merged.Text(listingdomain.FieldDescription),
			Quantity:    defaultQuantity,
			UnitPrice:   format.Money(subtotal),
			LineTotal:   format.Money(subtotal),
		},
		Costs:     costs,
		IssueDate: issued,
		DueDate:   issued.AddDate(0, 0, s.dueDays),
	}, nil
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, invoicedomain.ErrInvalidListingURL):
		return "invalid_listing_url"
	case errors.Is(err, invoicedomain.ErrListingNotFound):
		return "listing_not_found"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
