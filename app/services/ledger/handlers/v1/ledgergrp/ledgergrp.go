// Package ledgergrp maintains the group of handlers for ledger access.
package ledgergrp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ardanlabs/ledger/business/web/errs"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// maxChainBody is the largest chain document accepted by the replace and
// extend endpoints.
const maxChainBody = 32 << 20

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.Genesis(), http.StatusOK)
}

// Balances returns the current balances for all accounts or the specified one.
func (h Handlers) Balances(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	accountID := database.AccountID(web.Param(r, "account"))

	latest := h.State.LatestBlock()

	resp := balances{
		LatestBlock: latest.Hash,
		Number:      latest.Contents.Number,
		Uncommitted: len(h.State.Pending()),
		Balances:    h.State.Accounts(accountID),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Blocks returns the chain from genesis to tip.
func (h Handlers) Blocks(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.Blocks(), http.StatusOK)
}

// Pending returns the transactions waiting to be processed.
func (h Handlers) Pending(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.Pending(), http.StatusOK)
}

// SubmitTx adds a new transaction to the pending buffer.
func (h Handlers) SubmitTx(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var ntx newTx
	if err := web.Decode(r, &ntx); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	tx, err := database.NewTx(ntx.Deltas)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("add tran", "traceid", v.TraceID, "tx", tx)

	n, err := h.State.SubmitTx(tx)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	resp := struct {
		Status  string `json:"status"`
		Pending int    `json:"pending"`
	}{
		Status:  "transaction added to buffer",
		Pending: n,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Process drains the pending buffer into blocks. The block size can be set
// with the size query parameter.
func (h Handlers) Process(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var size int
	if s := r.URL.Query().Get("size"); s != "" {
		var err error
		if size, err = strconv.Atoi(s); err != nil {
			return errs.NewTrusted(fmt.Errorf("invalid size %q: %w", s, err), http.StatusBadRequest)
		}
	}

	accepted, rejected := h.State.ProcessMempool(size)
	latest := h.State.LatestBlock()

	resp := processed{
		Accepted:    accepted,
		Rejected:    rejected,
		LatestBlock: latest.Hash,
		Number:      latest.Contents.Number,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Export returns the chain in its exchange format.
func (h Handlers) Export(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	exported, err := h.State.Export()
	if err != nil {
		return err
	}

	return web.RespondRaw(ctx, w, []byte(exported), http.StatusOK)
}

// Replace validates the posted chain from genesis and replaces the current
// chain with it. The body is either the exchange format or a JSON array of
// blocks.
func (h Handlers) Replace(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blocks, err := h.decodeChain(r)
	if err != nil {
		return err
	}

	if err := h.State.ValidateAndReplace(blocks); err != nil {
		if database.IsValidityError(err) {
			return errs.NewTrusted(err, http.StatusConflict)
		}
		return err
	}

	resp := replaced{
		Status:      "chain replaced",
		Blocks:      len(blocks),
		LatestBlock: h.State.LatestBlock().Hash,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Extend appends the posted blocks that validate against the current tip.
func (h Handlers) Extend(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blocks, err := h.decodeChain(r)
	if err != nil {
		return err
	}

	appended, err := h.State.ExtendChain(blocks)

	resp := extended{
		Appended:    appended,
		Skipped:     []string{},
		LatestBlock: h.State.LatestBlock().Hash,
	}

	// The skipped blocks come back joined into a single error.
	switch joined := err.(type) {
	case nil:
	case interface{ Unwrap() []error }:
		for _, skipped := range joined.Unwrap() {
			resp.Skipped = append(resp.Skipped, skipped.Error())
		}
	default:
		resp.Skipped = append(resp.Skipped, err.Error())
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// decodeChain reads the posted chain document.
func (h Handlers) decodeChain(r *http.Request) ([]database.Block, error) {
	data, err := web.ReadBody(r, maxChainBody)
	if err != nil {
		if errors.Is(err, web.ErrPayloadTooLarge) {
			return nil, errs.NewTrusted(err, http.StatusRequestEntityTooLarge)
		}
		return nil, errs.NewTrusted(err, http.StatusBadRequest)
	}

	blocks, err := state.Decode(data)
	if err != nil {
		return nil, errs.NewTrusted(err, http.StatusBadRequest)
	}

	return blocks, nil
}
