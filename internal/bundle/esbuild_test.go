package bundle

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/tarotbuild/internal/errors"
)

func writeSource(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestEsbuild_ScriptDefinesProductionAndMinifies(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "src/util.js", "export function shout(s) {\n  return s.toUpperCase();\n}\n")
	entry := writeSource(t, dir, "src/main.js", "import { shout } from './util.js';\nconst mode = process.env.NODE_ENV;\nconsole.log(shout(mode));\n")

	out, err := NewEsbuild().Bundle(context.Background(), Request{Kind: KindScript, Entry: entry, WorkDir: dir, Target: "es2020"})
	require.NoError(t, err)
	require.Equal(t, KindScript, out.Kind)

	js := string(out.Contents)
	require.Contains(t, js, `"production"`)
	require.NotContains(t, js, "process.env")
	require.NotContains(t, js, "sourceMappingURL")
	require.NotContains(t, js, "\n  ")
}

func TestEsbuild_StyleIsMinified(t *testing.T) {
	dir := t.TempDir()
	entry := writeSource(t, dir, "src/index.css", "body {\n  color: red;\n}\n")

	out, err := NewEsbuild().Bundle(context.Background(), Request{Kind: KindStyle, Entry: entry, WorkDir: dir})
	require.NoError(t, err)
	require.Contains(t, string(out.Contents), "body{color:red}")
}

func TestEsbuild_Deterministic(t *testing.T) {
	dir := t.TempDir()
	entry := writeSource(t, dir, "src/main.js", "console.log(1 + 2);\n")
	req := Request{Kind: KindScript, Entry: entry, WorkDir: dir}

	a, err := NewEsbuild().Bundle(context.Background(), req)
	require.NoError(t, err)
	b, err := NewEsbuild().Bundle(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, a.Contents, b.Contents)
}

func TestEsbuild_SyntaxErrorFails(t *testing.T) {
	dir := t.TempDir()
	entry := writeSource(t, dir, "src/main.js", "const = ;\n")

	_, err := NewEsbuild().Bundle(context.Background(), Request{Kind: KindScript, Entry: entry, WorkDir: dir})
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryBundle))
}

func TestEsbuild_MissingEntryFails(t *testing.T) {
	dir := t.TempDir()
	_, err := NewEsbuild().Bundle(context.Background(), Request{Kind: KindScript, Entry: filepath.Join(dir, "nope.js"), WorkDir: dir})
	require.Error(t, err)
}

func TestEsbuild_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	entry := writeSource(t, dir, "src/main.js", "console.log(1);\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEsbuild().Bundle(ctx, Request{Kind: KindScript, Entry: entry, WorkDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRequestValidate(t *testing.T) {
	require.Error(t, Request{Kind: KindScript}.Validate())
	require.Error(t, Request{Kind: KindStyle, Entry: "src/main.js"}.Validate())
	require.Error(t, Request{Kind: "image", Entry: "a.png"}.Validate())
	require.NoError(t, Request{Kind: KindStyle, Entry: "src/index.css"}.Validate())
}

func TestParseTarget(t *testing.T) {
	tgt, err := ParseTarget("ES2020")
	require.NoError(t, err)
	require.Equal(t, api.ES2020, tgt)

	tgt, err = ParseTarget("")
	require.NoError(t, err)
	require.Equal(t, api.ES2020, tgt)

	_, err = ParseTarget("es3")
	require.Error(t, err)
}
