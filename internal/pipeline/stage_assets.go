package pipeline

import (
	"context"
	"path/filepath"

	"git.home.luguber.info/inful/tarotbuild/internal/assets"
	"git.home.luguber.info/inful/tarotbuild/internal/bundle"
	"git.home.luguber.info/inful/tarotbuild/internal/errors"
	"git.home.luguber.info/inful/tarotbuild/internal/logfields"
	"git.home.luguber.info/inful/tarotbuild/internal/workspace"
)

func stageClean(_ context.Context, bs *BuildState) error {
	return workspace.NewManager(CleanRules(bs.Paths)...).Clean()
}

func stageBundle(ctx context.Context, bs *BuildState) error {
	for _, req := range []bundle.Request{
		{Kind: bundle.KindScript, Entry: bs.Paths.ScriptEntry},
		{Kind: bundle.KindStyle, Entry: bs.Paths.StyleEntry},
	} {
		req.WorkDir = bs.Config.BaseDir()
		req.Target = bs.Config.Bundle.Target
		out, err := bs.Bundler.Bundle(ctx, req)
		if err != nil {
			if errors.IsCategory(err, errors.CategoryBundle) || ctx.Err() != nil {
				return err
			}
			return errors.BundleFailed(req.Entry, err)
		}
		bs.Bundles[req.Kind] = out
		bs.Log.Debug("Bundled entry point",
			logfields.File(req.Entry),
			logfields.Bytes(len(out.Contents)))
	}
	return nil
}

func stageWriteAssets(_ context.Context, bs *BuildState) error {
	for _, w := range []struct {
		kind bundle.Kind
		dst  *assets.Asset
	}{
		{bundle.KindScript, &bs.Script},
		{bundle.KindStyle, &bs.Style},
	} {
		out, ok := bs.Bundles[w.kind]
		if !ok {
			return errors.InternalError("bundle output missing", nil).WithContext("kind", string(w.kind))
		}
		a, err := assets.Write(bs.Paths.DistAssets, bs.Config.Bundle.AssetBase, w.kind.Ext(), out.Contents)
		if err != nil {
			return err
		}
		*w.dst = a
		bs.Report.AssetBytes += int64(a.Size)
		bs.Recorder.AddAssetBytes("."+w.kind.Ext(), int64(a.Size))
		bs.Log.Info("Wrote asset",
			logfields.File(a.Name),
			logfields.Hash(a.Hash),
			logfields.Bytes(a.Size))
	}
	return nil
}

func stagePublish(_ context.Context, bs *BuildState) error {
	if sameFile(bs.Paths.Public, bs.Paths.Dist) {
		bs.Log.Debug("Public root is the output directory; nothing to publish")
		return ErrStageSkipped
	}
	src := filepath.Join(bs.Paths.Dist, indexPage)
	if err := assets.CopyFile(src, filepath.Join(bs.Paths.Public, indexPage)); err != nil {
		return err
	}
	for _, a := range bs.Assets() {
		cp, err := a.CopyTo(bs.Paths.PublicAssets)
		if err != nil {
			return err
		}
		bs.Log.Debug("Published asset", logfields.Path(cp.Path))
	}
	bs.Log.Info("Published site root", logfields.Path(bs.Paths.Public), logfields.Count(len(bs.Assets())+1))
	return nil
}
