package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/smallbiznis/invoicefill/internal/invoice/domain"
	"github.com/smallbiznis/invoicefill/internal/invoice/merge"
	listingdomain "github.com/smallbiznis/invoicefill/internal/listing/domain"
)

var (
	ErrRateLimited    = errors.New("rate limit exceeded")
	ErrInvalidRequest = errors.New("request body must be a JSON object")
)

type errorResponse struct {
	Error string `json:"error"`
}

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, payload)
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

// mapError keeps the flat {"error": message} contract. Only throttling
// gets its own status; every generation failure is a 500.
func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
	}
	if errors.Is(err, ErrRateLimited) {
		return http.StatusTooManyRequests, errorResponse{Error: err.Error()}
	}
	return http.StatusInternalServerError, errorResponse{Error: err.Error()}
}

// classifyErrorForLog returns (type, code) for request logs.
func classifyErrorForLog(err error) (string, string) {
	var statusErr *listingdomain.StatusError
	switch {
	case err == nil:
		return "", ""
	case errors.Is(err, ErrRateLimited):
		return "rate_limited", "rate_limit_exceeded"
	case errors.Is(err, ErrInvalidRequest):
		return "validation_error", "invalid_request"
	case errors.Is(err, invoicedomain.ErrInvalidListingURL):
		return "validation_error", "invalid_listing_url"
	case errors.Is(err, invoicedomain.ErrListingNotFound):
		return "not_found", "listing_not_found"
	case errors.Is(err, invoicedomain.ErrMissingSellingPrice),
		errors.Is(err, invoicedomain.ErrInvalidAmount):
		return "validation_error", "invalid_amount"
	case errors.As(err, &statusErr):
		return "upstream_error", "listing_status"
	case errors.Is(err, merge.ErrPageOutOfRange):
		return "render_error", "page_out_of_range"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled", "context_done"
	default:
		return "internal_error", "internal_error"
	}
}
