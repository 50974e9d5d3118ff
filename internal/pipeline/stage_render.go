package pipeline

import (
	"context"
	"log/slog"
	"path"
	"path/filepath"

	"git.home.luguber.info/inful/tarotbuild/internal/errors"
	"git.home.luguber.info/inful/tarotbuild/internal/linkverify"
	"git.home.luguber.info/inful/tarotbuild/internal/logfields"
	"git.home.luguber.info/inful/tarotbuild/internal/sitemap"
	"git.home.luguber.info/inful/tarotbuild/internal/templates"
)

const indexPage = "index.html"

// emit renders one page and records it under rel, relative to the output directory.
func (bs *BuildState) emit(kind string, b *templates.Bound, vals templates.Values, rel string) error {
	body, err := b.Render(vals)
	if err != nil {
		return err
	}
	if err := writePage(filepath.Join(bs.Paths.Dist, filepath.FromSlash(rel)), body); err != nil {
		return err
	}
	bs.Pages = append(bs.Pages, rel)
	bs.Report.Pages[kind]++
	bs.Recorder.AddPagesRendered(kind, 1)
	bs.Log.Debug("Rendered page", logfields.Path(rel), slog.String("kind", kind))
	return nil
}

func stageRenderIndex(_ context.Context, bs *BuildState) error {
	return bs.emit("index", bs.Inputs.Index, bs.Values().Index(), indexPage)
}

func stageRenderSpreads(ctx context.Context, bs *BuildState) error {
	v := bs.Values()
	for _, s := range v.Table.Spreads {
		if err := ctx.Err(); err != nil {
			return err
		}
		vals, err := v.Spread(s)
		if err != nil {
			return err
		}
		if err := bs.emit("spread", bs.Inputs.Spread, vals, path.Join(v.Layout.Spreads, s.Slug+".html")); err != nil {
			return err
		}
	}
	bs.Log.Info("Rendered spread pages", logfields.Count(len(v.Table.Spreads)))
	return nil
}

func stageRenderCategories(ctx context.Context, bs *BuildState) error {
	v := bs.Values()
	used := v.Table.UsedCategories()
	for _, c := range used {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := bs.emit("category", bs.Inputs.Category, v.Category(c), path.Join(v.Layout.Categories, c.Slug+".html")); err != nil {
			return err
		}
	}
	bs.Log.Info("Rendered category pages", logfields.Count(len(used)))
	return nil
}

func stageSitemap(_ context.Context, bs *BuildState) error {
	file := filepath.Join(bs.Paths.Dist, sitemap.FileName)
	if err := sitemap.Write(file, bs.Config.Site.BaseURL, bs.Pages); err != nil {
		return err
	}
	bs.Log.Info("Wrote sitemap", logfields.Path(file), logfields.Count(len(bs.Pages)))
	return nil
}

func stageVerify(_ context.Context, bs *BuildState) error {
	pages, err := linkverify.New(bs.Paths.Dist, bs.Paths.Public).Verify()
	if err != nil {
		return err
	}
	if !sameFile(bs.Paths.Public, bs.Paths.Dist) {
		broken, err := linkverify.New(bs.Paths.Public, bs.Paths.Dist).VerifyPage(indexPage)
		if err != nil {
			return err
		}
		if len(broken) > 0 {
			return errors.BrokenReferences(len(broken), broken[0].String())
		}
	}
	bs.Log.Info("Verified local references", logfields.Count(len(pages)))
	return nil
}
