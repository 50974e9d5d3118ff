package pipeline

import (
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/tarotbuild/internal/assets"
	"git.home.luguber.info/inful/tarotbuild/internal/bundle"
	"git.home.luguber.info/inful/tarotbuild/internal/config"
	"git.home.luguber.info/inful/tarotbuild/internal/content"
	"git.home.luguber.info/inful/tarotbuild/internal/metrics"
	"git.home.luguber.info/inful/tarotbuild/internal/pages"
	"git.home.luguber.info/inful/tarotbuild/internal/templates"
)

// Inputs are the verified, read-only inputs of a build.
type Inputs struct {
	Table    *content.Table
	Index    *templates.Bound
	Spread   *templates.Bound
	Category *templates.Bound
}

// BuildState carries everything stages share during one build.
type BuildState struct {
	ID       string
	Config   *config.Config
	Paths    config.Paths
	Inputs   *Inputs
	Bundler  bundle.Bundler
	Recorder metrics.Recorder
	Log      *slog.Logger
	Report   *Report

	// Bundles holds the bundler output until it is written.
	Bundles map[bundle.Kind]*bundle.Output
	Script  assets.Asset
	Style   assets.Asset
	// Pages lists rendered pages relative to the output directory, slash-separated.
	Pages []string
}

// Assets returns the written hashed assets, script first.
func (bs *BuildState) Assets() []assets.Asset {
	var out []assets.Asset
	for _, a := range []assets.Asset{bs.Script, bs.Style} {
		if a.Name != "" {
			out = append(out, a)
		}
	}
	return out
}

// Values returns the page value builder for the written assets.
func (bs *BuildState) Values() *pages.Values {
	o := bs.Config.Output
	return &pages.Values{
		SiteName: bs.Config.Site.Name,
		BaseURL:  bs.Config.Site.BaseURL,
		Layout: pages.Layout{
			Assets:     filepath.ToSlash(filepath.Clean(o.Assets)),
			Spreads:    filepath.ToSlash(filepath.Clean(o.Spreads)),
			Categories: filepath.ToSlash(filepath.Clean(o.Categories)),
		},
		Bundles: pages.Bundles{Script: bs.Script.Name, Style: bs.Style.Name},
		Table:   bs.Inputs.Table,
	}
}
