// Package handlers manages the different versions of the API.
package handlers

import (
	"context"
	"expvar"
	"net/http"
	"net/http/pprof"
	"os"

	"github.com/cadocurrency/ledger/app/services/node/handlers/debug/checkgrp"
	v1 "github.com/cadocurrency/ledger/app/services/node/handlers/v1"
	"github.com/cadocurrency/ledger/business/web/mid"
	"github.com/cadocurrency/ledger/foundation/blockchain/state"
	"github.com/cadocurrency/ledger/foundation/events"
	"github.com/cadocurrency/ledger/foundation/nameservice"
	"github.com/cadocurrency/ledger/foundation/web"
	"go.uber.org/zap"
)

// MuxConfig contains all the mandatory systems required by handlers.
type MuxConfig struct {
	Shutdown   chan os.Signal
	Log        *zap.SugaredLogger
	State      *state.State
	NS         *nameservice.NameService
	Evts       *events.Events
	APIToken   string
	CORSOrigin string
}

// PublicMux constructs a http.Handler with all application routes defined.
func PublicMux(cfg MuxConfig) http.Handler {

	// Construct the web.App which holds all routes as well as common Middleware.
	app := web.NewApp(
		cfg.Shutdown,
		mid.Logger(cfg.Log),
		mid.Errors(cfg.Log),
		mid.Metrics(),
		mid.Cors(cfg.CORSOrigin),
		mid.Panics(),
	)

	// Accept CORS 'OPTIONS' preflight requests from the browser miner.
	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return nil
	}
	app.Handle(http.MethodOptions, "", "/*", h, mid.Cors(cfg.CORSOrigin))

	v1cfg := v1.Config{
		Log:      cfg.Log,
		State:    cfg.State,
		NS:       cfg.NS,
		Evts:     cfg.Evts,
		APIToken: cfg.APIToken,
	}

	// Load the v1 routes and the routes older miners still call.
	v1.PublicRoutes(app, v1cfg)
	v1.LegacyRoutes(app, v1cfg)

	return app
}

// DebugStandardLibraryMux registers all the debug routes from the standard library
// into a new mux bypassing the use of the DefaultServerMux. Using the
// DefaultServerMux would be a security risk since a dependency could inject a
// handler into our service without us knowing it.
func DebugStandardLibraryMux() *http.ServeMux {
	mux := http.NewServeMux()

	// Register all the standard library debug endpoints.
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/debug/vars", expvar.Handler())

	return mux
}

// DebugMux registers all the debug standard library routes and then custom
// debug application routes for the service.
func DebugMux(build string, log *zap.SugaredLogger, st *state.State) http.Handler {
	mux := DebugStandardLibraryMux()

	// Register debug check endpoints.
	cgh := checkgrp.Handlers{
		Build: build,
		Log:   log,
		State: st,
	}
	mux.HandleFunc("/debug/readiness", cgh.Readiness)
	mux.HandleFunc("/debug/liveness", cgh.Liveness)

	return mux
}
