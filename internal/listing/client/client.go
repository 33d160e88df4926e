package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/smallbiznis/invoicefill/internal/config"
	listingdomain "github.com/smallbiznis/invoicefill/internal/listing/domain"
	obslogger "github.com/smallbiznis/invoicefill/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/invoicefill/internal/observability/metrics"
	"github.com/smallbiznis/invoicefill/internal/observability/tracing"
	"github.com/smallbiznis/invoicefill/internal/upstream"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	dependencyName = "listing"
	tracerName     = "invoicefill/listing"
	maxErrorBody   = 512
)

type ClientParam struct {
	fx.In

	Cfg     config.Config
	Log     *zap.Logger
	Metrics *obsmetrics.Metrics `optional:"true"`
}

type Client struct {
	url    string
	http   *http.Client
	runner *upstream.Runner
	log    *zap.Logger
}

func NewClient(p ClientParam) listingdomain.Fetcher {
	var recorder upstream.Recorder
	if p.Metrics != nil {
		recorder = p.Metrics
	}
	return New(p.Cfg.Listing, &http.Client{Timeout: p.Cfg.Listing.Timeout}, p.Log, recorder)
}

// New builds a listing client. Errors always propagate to the caller.
func New(cfg config.UpstreamConfig, httpClient *http.Client, log *zap.Logger, recorder upstream.Recorder) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if log == nil {
		log = zap.NewNop()
	}
	log = obslogger.WithDependency(log.Named("listing.client"), dependencyName)
	return &Client{
		url:  cfg.URL,
		http: httpClient,
		runner: upstream.NewRunner(upstream.Policy{
			Name:        dependencyName,
			MaxAttempts: cfg.MaxAttempts,
			Degrade:     false,
		}, log, recorder),
		log: log,
	}
}

type fetchRequest struct {
	ID string `json:"id"`
}

type fetchResponse struct {
	Result *struct {
		Listing listingdomain.Record `json:"listing"`
	} `json:"result"`
}

// Fetch posts the id and unwraps result.listing. A null or missing listing
// yields an empty record and no error.
func (c *Client) Fetch(ctx context.Context, id string) (listingdomain.Record, error) {
	ctx, span := tracing.Start(ctx, tracerName, "listing.fetch", attribute.String("listing.id", id))
	defer span.End()

	record, err := upstream.Call[listingdomain.Record](ctx, c.runner, nil, func(ctx context.Context) (listingdomain.Record, error) {
		return c.fetchOnce(ctx, id)
	})
	if err != nil {
		span.RecordError(tracing.SafeError(err))
		span.SetStatus(codes.Error, "listing fetch failed")
		c.log.Warn("listing fetch failed", zap.String("listing_id", id), zap.Error(err))
		return nil, err
	}
	if record == nil {
		record = listingdomain.Record{}
	}
	span.SetAttributes(attribute.Int("listing.fields", len(record)))
	return record, nil
}

func (c *Client) fetchOnce(ctx context.Context, id string) (listingdomain.Record, error) {
	payload, err := json.Marshal(fetchRequest{ID: id})
	if err != nil {
		return nil, upstream.Permanent(fmt.Errorf("encode listing request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, upstream.Permanent(fmt.Errorf("build listing request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		statusErr := &listingdomain.StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
		if statusErr.Retryable() {
			return nil, statusErr
		}
		return nil, upstream.Permanent(statusErr)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()

	var out fetchResponse
	if err := dec.Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return listingdomain.Record{}, nil
		}
		return nil, upstream.Permanent(fmt.Errorf("decode listing response: %w", err))
	}
	if out.Result == nil || out.Result.Listing == nil {
		return listingdomain.Record{}, nil
	}
	return out.Result.Listing, nil
}
