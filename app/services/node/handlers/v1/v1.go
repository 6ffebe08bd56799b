// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/cadocurrency/ledger/app/services/node/handlers/v1/public"
	"github.com/cadocurrency/ledger/business/web/mid"
	"github.com/cadocurrency/ledger/foundation/blockchain/state"
	"github.com/cadocurrency/ledger/foundation/events"
	"github.com/cadocurrency/ledger/foundation/nameservice"
	"github.com/cadocurrency/ledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log      *zap.SugaredLogger
	State    *state.State
	NS       *nameservice.NameService
	Evts     *events.Events
	APIToken string
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
		NS:    cfg.NS,
		WS:    websocket.Upgrader{},
		Evts:  cfg.Evts,
	}

	authen := mid.Authorize(cfg.APIToken)

	app.Handle(http.MethodGet, version, "/events", pbl.Events)
	app.Handle(http.MethodGet, version, "/genesis/list", pbl.Genesis)
	app.Handle(http.MethodGet, version, "/node/status", pbl.Status)
	app.Handle(http.MethodGet, version, "/balances/list", pbl.Balances)
	app.Handle(http.MethodGet, version, "/balances/list/:account", pbl.Balances)
	app.Handle(http.MethodGet, version, "/blocks/list", pbl.Chain)
	app.Handle(http.MethodGet, version, "/blocks/list/:account", pbl.BlocksByAccount)
	app.Handle(http.MethodGet, version, "/blocks/range/:from/:to", pbl.BlocksByNumber)
	app.Handle(http.MethodGet, version, "/tx/uncommitted/list", pbl.Mempool)
	app.Handle(http.MethodPost, version, "/tx/submit", pbl.SubmitTransfer, authen)
	app.Handle(http.MethodPost, version, "/mining/job", pbl.RequestJob, authen)
	app.Handle(http.MethodPost, version, "/mining/submit", pbl.SubmitShare, authen)
}

// LegacyRoutes binds the unversioned routes older mining clients use.
func LegacyRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
		NS:    cfg.NS,
		Evts:  cfg.Evts,
	}

	authen := mid.Authorize(cfg.APIToken)

	app.Handle(http.MethodGet, "", "/", pbl.Home)
	app.Handle(http.MethodGet, "", "/balance/:miner", pbl.MinerBalance)
	app.Handle(http.MethodPost, "", "/get_job", pbl.RequestJob, authen)
	app.Handle(http.MethodPost, "", "/submit_share", pbl.SubmitShare, authen)
}
