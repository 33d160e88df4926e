package tracing

import (
	"errors"
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

const maxAttributeLength = 256

var blockedAttributeKeys = map[attribute.Key]struct{}{
	"tax.api_key":  {},
	"http.body":    {},
	"form.phone":   {},
	"form.name":    {},
	"form.address": {},
}

// SafeAttributes drops sensitive keys and truncates long string values.
func SafeAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	out := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, blocked := blockedAttributeKeys[attr.Key]; blocked {
			continue
		}
		if attr.Value.Type() == attribute.STRING {
			attr = attribute.String(string(attr.Key), truncate(attr.Value.AsString()))
		}
		out = append(out, attr)
	}
	return out
}

// SafeError returns a copy of err whose message is bounded in size.
func SafeError(err error) error {
	if err == nil {
		return nil
	}
	return errors.New(truncate(err.Error()))
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxAttributeLength {
		return s
	}
	return s[:maxAttributeLength]
}
