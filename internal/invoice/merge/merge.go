package merge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"go.uber.org/zap"
)

// ErrPageOutOfRange is returned when the overlay has fewer pages than the
// template.
var ErrPageOutOfRange = errors.New("overlay has fewer pages than template")

// stampDesc places overlay pages 1:1 over the template's bottom-left corner.
const stampDesc = "pos:bl, off:0 0, scale:1 abs, rot:0, op:1"

var disableConfigDir sync.Once

// Merger stamps overlay page i on top of template page i.
type Merger struct {
	log    *zap.Logger
	tmpDir string
}

func NewMerger(log *zap.Logger) *Merger {
	disableConfigDir.Do(pdfapi.DisableConfigDir)
	if log == nil {
		log = zap.NewNop()
	}
	return &Merger{log: log.Named("invoice.merge")}
}

func (m *Merger) configuration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// PageCount reports the number of pages in doc.
func (m *Merger) PageCount(doc []byte) (int, error) {
	n, err := pdfapi.PageCount(bytes.NewReader(doc), m.configuration())
	if err != nil {
		return 0, fmt.Errorf("read page count: %w", err)
	}
	return n, nil
}

// Merge returns a document with exactly as many pages as template.
func (m *Merger) Merge(ctx context.Context, template, overlay []byte) ([]byte, error) {
	templatePages, err := m.PageCount(template)
	if err != nil {
		return nil, fmt.Errorf("template: %w", err)
	}
	overlayPages, err := m.PageCount(overlay)
	if err != nil {
		return nil, fmt.Errorf("overlay: %w", err)
	}
	if overlayPages < templatePages {
		return nil, fmt.Errorf("%w: template has %d, overlay has %d", ErrPageOutOfRange, templatePages, overlayPages)
	}

	overlayFile, err := os.CreateTemp(m.tmpDir, "invoice-overlay-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("stage overlay: %w", err)
	}
	defer func() {
		_ = os.Remove(overlayFile.Name())
	}()
	if _, err := overlayFile.Write(overlay); err != nil {
		_ = overlayFile.Close()
		return nil, fmt.Errorf("stage overlay: %w", err)
	}
	if err := overlayFile.Close(); err != nil {
		return nil, fmt.Errorf("stage overlay: %w", err)
	}

	current := template
	for page := 1; page <= templatePages; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		wm, err := pdfcpu.ParsePDFWatermarkDetails(overlayFile.Name()+":"+strconv.Itoa(page), stampDesc, true, types.POINTS)
		if err != nil {
			return nil, fmt.Errorf("prepare overlay page %d: %w", page, err)
		}

		var out bytes.Buffer
		if err := pdfapi.AddWatermarks(bytes.NewReader(current), &out, []string{strconv.Itoa(page)}, wm, m.configuration()); err != nil {
			return nil, fmt.Errorf("stamp page %d: %w", page, err)
		}
		current = out.Bytes()
	}

	m.log.Debug("overlay merged", zap.Int("pages", templatePages), zap.Int("bytes", len(current)))
	return current, nil
}
