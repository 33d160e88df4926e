package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/invoicefill/internal/config"
	obslogger "github.com/smallbiznis/invoicefill/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/invoicefill/internal/observability/metrics"
	"github.com/smallbiznis/invoicefill/internal/observability/tracing"
	taxdomain "github.com/smallbiznis/invoicefill/internal/tax/domain"
	"github.com/smallbiznis/invoicefill/internal/upstream"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	dependencyName = "tax"
	tracerName     = "invoicefill/tax"
	apiKeyHeader   = "X-Api-Key"

	sourceAPI   = "api"
	sourceCache = "cache"
)

type ClientParam struct {
	fx.In

	Cfg     config.Config
	Log     *zap.Logger
	Metrics *obsmetrics.Metrics `optional:"true"`
	Cache   taxdomain.Cache     `optional:"true"`
}

// Client looks up sales tax by postal code. It never returns an error:
// every failure degrades to taxdomain.Unknown.
type Client struct {
	url     string
	apiKey  string
	http    *http.Client
	runner  *upstream.Runner
	cache   taxdomain.Cache
	metrics *obsmetrics.Metrics
	log     *zap.Logger
}

func NewClient(p ClientParam) taxdomain.Lookup {
	return New(p.Cfg.Tax, &http.Client{Timeout: p.Cfg.Tax.Timeout}, p.Cache, p.Log, p.Metrics)
}

func New(cfg config.TaxConfig, httpClient *http.Client, cache taxdomain.Cache, log *zap.Logger, metrics *obsmetrics.Metrics) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if log == nil {
		log = zap.NewNop()
	}
	log = obslogger.WithDependency(log.Named("tax.client"), dependencyName)

	var recorder upstream.Recorder
	if metrics != nil {
		recorder = metrics
	}

	return &Client{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		http:   httpClient,
		runner: upstream.NewRunner(upstream.Policy{
			Name:        dependencyName,
			MaxAttempts: cfg.MaxAttempts,
			Degrade:     true,
		}, log, recorder),
		cache:   cache,
		metrics: metrics,
		log:     log,
	}
}

type rateEntry struct {
	TotalRate json.RawMessage `json:"total_rate"`
}

func (c *Client) Lookup(ctx context.Context, zip string) taxdomain.Rate {
	zip = strings.TrimSpace(zip)
	ctx, span := tracing.Start(ctx, tracerName, "tax.lookup")
	defer span.End()

	if zip == "" {
		c.log.Warn("sales tax lookup skipped", zap.Error(taxdomain.ErrMissingZip))
		c.metrics.RecordTaxLookup(ctx, sourceAPI, upstream.OutcomeDegraded)
		return taxdomain.Unknown
	}

	if rate, ok := c.fromCache(ctx, zip); ok {
		span.SetAttributes(attribute.Bool("tax.cache_hit", true))
		c.metrics.RecordTaxLookup(ctx, sourceCache, upstream.OutcomeSuccess)
		return rate
	}

	rate, _ := upstream.Call(ctx, c.runner, taxdomain.Unknown, func(ctx context.Context) (taxdomain.Rate, error) {
		return c.lookupOnce(ctx, zip)
	})

	if !rate.Known() {
		c.metrics.RecordTaxLookup(ctx, sourceAPI, upstream.OutcomeDegraded)
		span.SetAttributes(attribute.String("tax.rate", rate.String()))
		return rate
	}

	c.metrics.RecordTaxLookup(ctx, sourceAPI, upstream.OutcomeSuccess)
	span.SetAttributes(attribute.String("tax.rate", rate.String()))
	c.toCache(ctx, zip, rate)
	return rate
}

func (c *Client) lookupOnce(ctx context.Context, zip string) (taxdomain.Rate, error) {
	endpoint, err := url.Parse(c.url)
	if err != nil {
		return taxdomain.Unknown, upstream.Permanent(fmt.Errorf("parse tax url: %w", err))
	}
	q := endpoint.Query()
	q.Set("zip_code", zip)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return taxdomain.Unknown, upstream.Permanent(fmt.Errorf("build tax request: %w", err))
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return taxdomain.Unknown, fmt.Errorf("tax request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return taxdomain.Unknown, fmt.Errorf("read tax response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return taxdomain.Unknown, fmt.Errorf("tax service returned status %d", resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return taxdomain.Unknown, upstream.Permanent(fmt.Errorf("tax service returned status %d", resp.StatusCode))
	}

	rate, err := parseRate(body)
	if err != nil {
		return taxdomain.Unknown, upstream.Permanent(err)
	}
	return rate, nil
}

// parseRate reads total_rate from the first array element. Objects are
// error payloads and count as no data.
func parseRate(body []byte) (taxdomain.Rate, error) {
	trimmed := strings.TrimSpace(string(body))
	if !strings.HasPrefix(trimmed, "[") {
		return taxdomain.Unknown, fmt.Errorf("%w: response is not a list", taxdomain.ErrNoTaxData)
	}

	var entries []rateEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return taxdomain.Unknown, fmt.Errorf("decode tax response: %w", err)
	}
	if len(entries) == 0 {
		return taxdomain.Unknown, fmt.Errorf("%w: empty list", taxdomain.ErrNoTaxData)
	}

	raw := strings.Trim(strings.TrimSpace(string(entries[0].TotalRate)), `"`)
	fraction, err := decimal.NewFromString(raw)
	if err != nil {
		return taxdomain.Unknown, fmt.Errorf("%w: %q", taxdomain.ErrInvalidTotalRate, raw)
	}
	return taxdomain.RateFromFraction(fraction), nil
}

func (c *Client) fromCache(ctx context.Context, zip string) (taxdomain.Rate, bool) {
	if c.cache == nil {
		return taxdomain.Unknown, false
	}
	rate, ok, err := c.cache.Get(ctx, zip)
	if err != nil {
		c.log.Warn("tax cache read failed", zap.Error(err))
		return taxdomain.Unknown, false
	}
	return rate, ok && rate.Known()
}

func (c *Client) toCache(ctx context.Context, zip string, rate taxdomain.Rate) {
	if c.cache == nil || !rate.Known() {
		return
	}
	if err := c.cache.Set(ctx, zip, rate); err != nil {
		c.log.Warn("tax cache write failed", zap.Error(err))
	}
}
