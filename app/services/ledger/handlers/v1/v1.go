// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/ardanlabs/ledger/app/services/ledger/handlers/v1/ledgergrp"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log   *zap.SugaredLogger
	State *state.State
	Evts  *events.Events
}

// Routes binds all the version 1 routes.
func Routes(app *web.App, cfg Config) {
	lgh := ledgergrp.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
		Evts:  cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/events", lgh.Events)
	app.Handle(http.MethodGet, version, "/genesis", lgh.Genesis)
	app.Handle(http.MethodGet, version, "/balances/list", lgh.Balances)
	app.Handle(http.MethodGet, version, "/balances/list/:account", lgh.Balances)
	app.Handle(http.MethodGet, version, "/blocks/list", lgh.Blocks)
	app.Handle(http.MethodGet, version, "/tx/pending", lgh.Pending)
	app.Handle(http.MethodPost, version, "/tx/add", lgh.SubmitTx)
	app.Handle(http.MethodPost, version, "/tx/process", lgh.Process)
	app.Handle(http.MethodGet, version, "/chain/export", lgh.Export)
	app.Handle(http.MethodPost, version, "/chain/replace", lgh.Replace)
	app.Handle(http.MethodPost, version, "/chain/extend", lgh.Extend)
}
