package app

import (
	"fmt"
	"net/http"
)

// healthHandler reports readiness: 200 once the container has installed the
// resource context, 503 while discovery is still running.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	if !a.container.IsReady() {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintln(w, "starting")
		return
	}
	status := a.container.Status()
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK loaded=%d disabled=%d skipped=%d\n", status.Loaded, status.Disabled, status.Skipped)
}

// startHealthcheckServer runs the readiness HTTP server in the background.
func (a *App) startHealthcheckServer(port int) {
	a.logger.Debug("Configuring health check server.")
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)

	addr := fmt.Sprintf(":%d", port)

	go func() {
		a.logger.Info("Health check server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			a.logger.Error("Health check server failed", "error", err)
		}
	}()
}
