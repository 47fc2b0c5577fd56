package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"r90calc/internal/clock"
	"r90calc/internal/prefs"
	"r90calc/internal/render"
	"r90calc/internal/sleep"
)

type pageData struct {
	Wake    string
	Version string
	Error   string
	View    *render.View

	CycleMinutes  int
	BufferMinutes int
}

type webApp struct {
	store  *prefs.Store
	clock  clock.Clock
	logger *zap.SugaredLogger
	tpl    *template.Template
}

func newWebApp(store *prefs.Store, clk clock.Clock, logger *zap.SugaredLogger) *webApp {
	return &webApp{
		store:  store,
		clock:  clk,
		logger: logger,
		tpl:    template.Must(template.New("page").Parse(pageHTML)),
	}
}

func (a *webApp) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", a.handleIndex)
	mux.HandleFunc("POST /wake", a.handleWake)
	mux.HandleFunc("GET /api/plan", a.handlePlan)
	return mux
}

func (a *webApp) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.renderPage(w, http.StatusOK, a.store.WakeUp().String(), "")
}

// handleWake stores the submitted wake-up time and redirects back to the page.
func (a *webApp) handleWake(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	raw := strings.TrimSpace(r.FormValue("wake"))

	picked, err := parseClock(raw, a.clock.Now())
	if err != nil {
		a.logger.Debugw("rejected wake-up time", "wake", raw, "error", err)
		a.renderPage(w, http.StatusBadRequest, raw, "wake-up time must be HH:MM (00:00 to 23:59)")
		return
	}
	if err := a.store.SetFromTime(picked); err != nil {
		a.logger.Errorw("save wake-up time", "error", err)
		a.renderPage(w, http.StatusInternalServerError, raw, "could not save wake-up time")
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *webApp) handlePlan(w http.ResponseWriter, r *http.Request) {
	p, err := sleep.NewPlan(a.store.WakeUp(), a.clock.Now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(render.NewView(p)); err != nil {
		a.logger.Warnw("encode plan", "error", err)
	}
}

func (a *webApp) renderPage(w http.ResponseWriter, status int, wake, errMsg string) {
	data := pageData{
		Wake:          wake,
		Version:       appVersion,
		Error:         errMsg,
		CycleMinutes:  int(sleep.CycleLength.Minutes()),
		BufferMinutes: int(sleep.FallAsleepBuffer.Minutes()),
	}
	if p, err := sleep.NewPlan(a.store.WakeUp(), a.clock.Now()); err == nil {
		v := render.NewView(p)
		data.View = &v
	} else {
		data.Error = err.Error()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := a.tpl.Execute(w, data); err != nil {
		a.logger.Warnw("render page", "error", err)
	}
}

// logRequests logs method, path and latency at debug level.
func logRequests(logger *zap.SugaredLogger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debugw("request", "method", r.Method, "path", r.URL.Path, "elapsed", time.Since(start))
	})
}

func serveWeb(ctx context.Context, port int, store *prefs.Store, clk clock.Clock, logger *zap.SugaredLogger) error {
	app := newWebApp(store, clk, logger)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           logRequests(logger, app.routes()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown web server: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func printListenAddrs(port int) {
	fmt.Println("Listening on:")
	fmt.Printf("  http://127.0.0.1:%d/\n", port)

	ifaces, _ := net.Interfaces()
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			ip, _, err := net.ParseCIDR(a.String())
			if err != nil || ip == nil || ip.IsLoopback() || ip.To4() == nil {
				continue
			}
			fmt.Printf("  http://%s:%d/\n", ip.String(), port)
		}
	}
	fmt.Println()
}

const pageHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <meta http-equiv="refresh" content="60">
  <title>r90calc</title>
  <style>
    body { font-family: system-ui, sans-serif; margin: 0; padding: 24px; max-width: 560px; box-sizing: border-box; background: #14123a; color: #fff; }
    * { box-sizing: border-box; }
    h2 { margin-top: 0; font-weight: 600; }
    .err { color: #b00020; margin: 12px 0; padding: 10px; background: #ffebee; border-radius: 6px; }
    .card { border: 1px solid rgba(255,255,255,0.2); border-radius: 16px; padding: 16px; margin: 16px 0; background: rgba(255,255,255,0.08); }
    .mono { font-family: ui-monospace, SFMono-Regular, Menlo, Monaco, Consolas, monospace; }
    .big { font-size: 2.2em; font-weight: 700; color: #4dd0e1; }
    .hint { color: rgba(255,255,255,0.6); font-size: 0.9em; margin-top: 4px; }
    .rec { display: flex; justify-content: space-between; padding: 10px 12px; border-radius: 10px; margin-top: 8px; background: rgba(255,255,255,0.05); }
    .rec.optimal { background: rgba(129,199,132,0.25); border: 1px solid #81c784; }
    input[type="text"] { padding: 8px 10px; font-size: 1em; border: 1px solid #ccc; border-radius: 6px; max-width: 100px; }
    button[type="submit"] { padding: 8px 16px; font-size: 1em; background: #ff9800; color: #fff; border: none; border-radius: 6px; cursor: pointer; }
    footer { margin-top: 40px; color: rgba(255,255,255,0.5); font-size: 0.9em; text-align: center; }
  </style>
</head>
<body>
  <h2>r90calc</h2>

  <form class="card" method="POST" action="/wake">
    <label for="wake">Wake up at</label>
    <input id="wake" name="wake" type="text" class="mono" value="{{.Wake}}" placeholder="07:00" pattern="[0-9]{1,2}:[0-9]{2}" required autocomplete="off">
    <button type="submit">Save</button>
  </form>

  {{if .Error}}<div class="err">{{.Error}}</div>{{end}}

  {{with .View}}
    <div class="card">
      <div>Going to sleep now ({{.Now}}) gives you</div>
      <div><span class="big">{{.Hours}}</span> hours <span class="big">{{.Minutes}}</span> minutes</div>
      <div class="hint">{{.Comment}}</div>
    </div>

    <div class="card">
      <div><b>Recommended bedtimes</b> before <span class="mono">{{.WakeUp}}</span></div>
      <div class="hint">({{$.CycleMinutes}} min per cycle + {{$.BufferMinutes}} min to fall asleep)</div>
      {{range .Lines}}
        <div class="rec{{if .Optimal}} optimal{{end}}">
          <span class="mono">{{.Time}}</span>
          <span>{{.Cycles}} cycles, {{printf "%.1f" .Hours}}h{{if .Optimal}}, {{.Badge}}{{end}}</span>
        </div>
      {{else}}
        <div class="hint">No bedtimes left before wake-up. Go to bed now.</div>
      {{end}}
    </div>
  {{end}}

  <footer>r90calc v{{.Version}}</footer>
</body>
</html>`
