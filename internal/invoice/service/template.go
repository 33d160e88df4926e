package service

import (
	"context"
	"fmt"
	"os"
)

// TemplateLoader returns the template document for one request.
type TemplateLoader interface {
	Load(ctx context.Context) ([]byte, error)
}

// FileTemplate reads the template from disk on every call so a replaced
// file takes effect without a restart.
type FileTemplate struct {
	Path string
}

func (f FileTemplate) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("load template: %w", err)
	}
	return b, nil
}
