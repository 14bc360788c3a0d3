// Package txgen produces random balanced transfers for populating test and
// demo buffers.
package txgen

import (
	"math/rand/v2"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// DefaultBufferSize is the number of transactions in a generated buffer when
// no size is given.
const DefaultBufferSize = 30

// Generator produces random transfers between two accounts. The random
// source is owned by the generator and seeded explicitly, so two generators
// built with the same seed produce the same transactions.
type Generator struct {
	rnd  *rand.Rand
	from database.AccountID
	to   database.AccountID
}

// New constructs a generator of transfers between the two accounts.
func New(seed uint64, from database.AccountID, to database.AccountID) *Generator {
	return &Generator{
		rnd:  rand.New(rand.NewPCG(seed, seed)),
		from: from,
		to:   to,
	}
}

// RandomTx returns a balanced transfer between the two accounts with a
// magnitude in [1, maxValue]. The direction is picked at random. A maxValue
// below one is treated as one.
func (g *Generator) RandomTx(maxValue int64) database.Tx {
	if maxValue < 1 {
		maxValue = 1
	}

	sign := int64(g.rnd.IntN(2))*2 - 1
	amount := g.rnd.Int64N(maxValue) + 1
	fromPays := sign * amount

	return database.Tx{
		g.from: fromPays,
		g.to:   -fromPays,
	}
}

// Buffer returns n random transfers. A non positive n produces
// DefaultBufferSize transfers.
func (g *Generator) Buffer(n int, maxValue int64) []database.Tx {
	if n <= 0 {
		n = DefaultBufferSize
	}

	trans := make([]database.Tx, n)
	for i := range trans {
		trans[i] = g.RandomTx(maxValue)
	}

	return trans
}
