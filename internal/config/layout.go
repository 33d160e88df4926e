package config

import (
	"errors"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/smallbiznis/invoicefill/internal/invoice/layout"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const layoutKey = "layout"

var defaultLayoutSearchPaths = []string{
	"/etc/invoicefill", // System config
	".",                // Current directory (dev mode)
}

// LayoutHolder serves the current overlay layout table and swaps it when
// the backing file changes.
type LayoutHolder struct {
	current atomic.Value // holds layout.Table
	log     *zap.Logger
}

func NewLayoutHolder(cfg Config, log *zap.Logger) (*LayoutHolder, error) {
	return newLayoutHolder(cfg.LayoutConfigPath, defaultLayoutSearchPaths, log)
}

func newLayoutHolder(explicitPath string, searchPaths []string, log *zap.Logger) (*LayoutHolder, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("layout-config")

	v := viper.New()
	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
	} else {
		v.SetConfigName("layout")
		v.SetConfigType("yml")
		for _, p := range searchPaths {
			v.AddConfigPath(p)
		}
	}

	v.SetEnvPrefix("INVOICEFILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	holder := &LayoutHolder{log: log}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		holder.current.Store(layout.Default())
		log.Info("layout file not found, using built-in defaults")
		return holder, nil
	}

	table, err := decodeLayout(v)
	if err != nil {
		return nil, err
	}
	holder.current.Store(table)
	log.Info("layout loaded", zap.String("file", filepath.Clean(v.ConfigFileUsed())))

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := decodeLayout(v)
		if err != nil {
			log.Warn("invalid layout ignored", zap.String("file", e.Name), zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("layout reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

// NewStaticLayoutHolder pins a table, mostly for tests and tooling.
func NewStaticLayoutHolder(table layout.Table) *LayoutHolder {
	holder := &LayoutHolder{log: zap.NewNop()}
	holder.current.Store(table)
	return holder
}

func (h *LayoutHolder) Get() layout.Table {
	return h.current.Load().(layout.Table)
}

func decodeLayout(v *viper.Viper) (layout.Table, error) {
	var table layout.Table
	if err := v.UnmarshalKey(layoutKey, &table); err != nil {
		return layout.Table{}, err
	}
	table = fillLayoutDefaults(table)
	if err := table.Validate(); err != nil {
		return layout.Table{}, err
	}
	return table, nil
}

// fillLayoutDefaults backfills anything the file left unset.
func fillLayoutDefaults(t layout.Table) layout.Table {
	d := layout.Default()

	if t.Page.Width == 0 && t.Page.Height == 0 {
		t.Page = d.Page
	}
	if strings.TrimSpace(t.Font) == "" {
		t.Font = d.Font
	}

	if len(t.Contact.Xs) == 0 {
		t.Contact.Xs = d.Contact.Xs
	}
	setIfZero(&t.Contact.Y, d.Contact.Y)
	setIfZero(&t.Contact.Size, d.Contact.Size)
	setIfZero(&t.Contact.Step, d.Contact.Step)

	setIfZero(&t.Item.TitleX, d.Item.TitleX)
	setIfZero(&t.Item.DescriptionX, d.Item.DescriptionX)
	setIfZero(&t.Item.Y, d.Item.Y)
	setIfZero(&t.Item.Size, d.Item.Size)
	setIfZero(&t.Item.Leading, d.Item.Leading)
	if t.Item.DescriptionWidth == 0 {
		t.Item.DescriptionWidth = d.Item.DescriptionWidth
	}
	if t.Item.TitleHyphenAt == 0 {
		t.Item.TitleHyphenAt = d.Item.TitleHyphenAt
	}
	if len(t.Item.TrailingOffsets) == 0 {
		t.Item.TrailingOffsets = d.Item.TrailingOffsets
	}

	setIfZero(&t.Costs.X, d.Costs.X)
	setIfZero(&t.Costs.SubtotalY, d.Costs.SubtotalY)
	setIfZero(&t.Costs.FirstY, d.Costs.FirstY)
	setIfZero(&t.Costs.Step, d.Costs.Step)
	setIfZero(&t.Costs.Size, d.Costs.Size)

	setIfZero(&t.Dates.X, d.Dates.X)
	setIfZero(&t.Dates.IssueY, d.Dates.IssueY)
	setIfZero(&t.Dates.DueY, d.Dates.DueY)
	setIfZero(&t.Dates.Size, d.Dates.Size)

	return t
}

func setIfZero(dst *float64, def float64) {
	if *dst == 0 {
		*dst = def
	}
}
