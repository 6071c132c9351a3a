package httpx

import "net/http"

// healthHandler answers liveness probes. It reports static process health
// only; database and Redis connectivity are not checked here.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	// A write failure here means the prober went away; nothing to do.
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
