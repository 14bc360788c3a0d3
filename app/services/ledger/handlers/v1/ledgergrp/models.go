package ledgergrp

import (
	"github.com/ardanlabs/ledger/business/sys/validate"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

type newTx struct {
	Deltas map[string]int64 `json:"deltas" validate:"required,min=1,dive,keys,account,endkeys"`
}

// Validate checks the data in the model is considered clean.
func (ntx newTx) Validate() error {
	return validate.Check(ntx)
}

type balances struct {
	LatestBlock string             `json:"latest_block"`
	Number      uint64             `json:"number"`
	Uncommitted int                `json:"uncommitted"`
	Balances    []database.Account `json:"balances"`
}

type processed struct {
	Accepted    int    `json:"accepted"`
	Rejected    int    `json:"rejected"`
	LatestBlock string `json:"latest_block"`
	Number      uint64 `json:"number"`
}

type replaced struct {
	Status      string `json:"status"`
	Blocks      int    `json:"blocks"`
	LatestBlock string `json:"latest_block"`
}

type extended struct {
	Appended    int      `json:"appended"`
	Skipped     []string `json:"skipped"`
	LatestBlock string   `json:"latest_block"`
}
