package metrics

import (
	"os"
	"path/filepath"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/tarotbuild/internal/errors"
)

// WriteTextfile writes the registry in the text exposition format, suitable
// for the node_exporter textfile collector. The file is replaced atomically.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.FileSystemError("create metrics directory", dir, err)
		}
	}
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return errors.FileSystemError("write metrics file", path, err)
	}
	return nil
}
