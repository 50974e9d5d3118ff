package preview

import (
	"fmt"
	"net/http"
)

// Handler serves the output directory, a status endpoint and optionally metrics.
// Until one build has succeeded, page requests get the last build error.
// Pages come from the output directory of the last successful build.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/-/status", s.handleStatus)
	if s.opts.Metrics != nil {
		mux.Handle("/-/metrics", s.opts.Metrics)
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if _, good, err := s.status.get(); err != nil && !good {
			http.Error(w, "build failed: "+err.Error(), http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Cache-Control", "no-store")
		http.FileServer(http.Dir(s.config().Paths().Dist)).ServeHTTP(w, r)
	})
	return mux
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	builds, good, err := s.status.get()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = fmt.Fprintf(w, "builds=%d last=failed good=%t error=%v\n", builds, good, err)
		return
	}
	_, _ = fmt.Fprintf(w, "builds=%d last=ok good=%t\n", builds, good)
}
