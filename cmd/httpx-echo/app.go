package main

import (
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"

	"dqx0.com/go/httpmsg/httpx"
	"dqx0.com/go/httpmsg/httpx/session"
	"dqx0.com/go/httpmsg/internal/obs"
)

// app is the echo service. Its session manager is swapped whole on config
// reload.
type app struct {
	log      zerolog.Logger
	meter    *obs.MemoryMeter
	sessions atomic.Pointer[session.Manager]
}

func newApp(cfg *Config, log zerolog.Logger, meter *obs.MemoryMeter) *app {
	a := &app{log: log, meter: meter}
	a.apply(cfg)
	return a
}

// apply installs the parts of cfg that can change without a restart.
func (a *app) apply(cfg *Config) {
	a.sessions.Store(&session.Manager{
		Secret:     []byte(cfg.SessionSecret),
		CookieName: cfg.CookieName,
		TTL:        cfg.SessionTTL(),
		Path:       "/",
		Secure:     cfg.SecureCookies,
	})
	zerolog.SetGlobalLevel(obs.ZerologLevel(obs.ParseLevel(cfg.LogLevel)))
}

type echoReply struct {
	ID        string            `json:"id"`
	Method    string            `json:"method"`
	Version   string            `json:"version"`
	URI       string            `json:"uri"`
	Path      string            `json:"path"`
	Query     string            `json:"query,omitempty"`
	Fragment  string            `json:"fragment,omitempty"`
	Websocket bool              `json:"websocket"`
	Close     bool              `json:"close"`
	Headers   map[string]string `json:"headers"`
	Params    map[string]string `json:"params"`
	Cookies   map[string]string `json:"cookies"`
	Body      string            `json:"body,omitempty"`
}

func toMap(m *httpx.StringMap) map[string]string {
	out := make(map[string]string, m.Len())
	m.Each(func(k, v string) bool {
		out[k] = v
		return true
	})
	return out
}

func (a *app) ServeHTTP(w *httpx.Response, r *httpx.Request) {
	switch r.Path {
	case "/login":
		a.login(w, r)
	case "/logout":
		a.sessions.Load().Clear(w)
		w.SetRedirect("/")
	case "/me":
		a.me(w, r)
	case "/__metrics":
		counters, hists := a.meter.Snapshot()
		writeJSON(w, httpx.StatusOK, map[string]any{"counters": counters, "histograms": hists})
	default:
		writeJSON(w, httpx.StatusOK, echoReply{
			ID:        r.ID,
			Method:    r.Method.String(),
			Version:   r.Version.String(),
			URI:       r.URI(),
			Path:      r.Path,
			Query:     r.Query,
			Fragment:  r.Fragment,
			Websocket: r.Websocket,
			Close:     r.Close,
			Headers:   toMap(r.Headers()),
			Params:    toMap(r.Params()),
			Cookies:   toMap(r.Cookies()),
			Body:      r.Body,
		})
	}
}

func (a *app) login(w *httpx.Response, r *httpx.Request) {
	user := r.GetParam("user", "")
	if user == "" {
		w.Status = httpx.StatusBadRequest
		w.Body = "missing user"
		return
	}
	if _, err := a.sessions.Load().Issue(w, user); err != nil {
		a.log.Error().Err(err).Str("user", user).Msg("issue session")
		w.Status = httpx.StatusInternalServerError
		return
	}
	a.meter.Counter("echo_logins_total", 1)
	w.SetRedirect(localTarget(r.GetParam("next", ""), "/me"))
}

// localTarget returns next when it is a path on this host, def otherwise.
func localTarget(next, def string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return def
	}
	return next
}

func (a *app) me(w *httpx.Response, r *httpx.Request) {
	sub, err := a.sessions.Load().Authenticate(r)
	switch {
	case errors.Is(err, session.ErrNoCredentials):
		w.Status = httpx.StatusUnauthorized
		w.SetHeader("WWW-Authenticate", "Bearer")
		return
	case err != nil:
		w.Status = httpx.StatusUnauthorized
		w.Body = err.Error()
		return
	}
	writeJSON(w, httpx.StatusOK, map[string]string{"user": sub})
}

func writeJSON(w *httpx.Response, status httpx.Status, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		w.Status = httpx.StatusInternalServerError
		return
	}
	w.Status = status
	w.SetHeader("Content-Type", "application/json")
	w.Body = string(b)
}
