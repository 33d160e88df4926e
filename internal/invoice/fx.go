package invoice

import (
	"github.com/smallbiznis/invoicefill/internal/config"
	"github.com/smallbiznis/invoicefill/internal/invoice/merge"
	"github.com/smallbiznis/invoicefill/internal/invoice/render"
	"github.com/smallbiznis/invoicefill/internal/invoice/service"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("invoice.service",
	fx.Provide(
		fx.Annotate(newRenderer, fx.As(new(service.Renderer))),
		fx.Annotate(newMerger, fx.As(new(service.Merger))),
		fx.Annotate(newTemplateLoader, fx.As(new(service.TemplateLoader))),
		service.NewService,
	),
)

func newRenderer(layouts *config.LayoutHolder) *render.Renderer {
	return render.NewRenderer(layouts)
}

func newMerger(log *zap.Logger) *merge.Merger {
	return merge.NewMerger(log)
}

func newTemplateLoader(cfg config.Config) service.FileTemplate {
	return service.FileTemplate{Path: cfg.TemplatePath}
}
