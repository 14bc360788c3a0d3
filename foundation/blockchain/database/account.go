package database

import (
	"errors"
	"strings"
)

// AccountID represents the name of an account holding a balance on the
// ledger. Any non blank name is a valid account.
type AccountID string

// ToAccountID converts a string to an account and validates the string is
// not blank.
func ToAccountID(name string) (AccountID, error) {
	a := AccountID(name)
	if !a.IsAccountID() {
		return "", errors.New("invalid account format")
	}

	return a, nil
}

// IsAccountID verifies whether the underlying data represents a usable name.
func (a AccountID) IsAccountID() bool {
	return strings.TrimSpace(string(a)) != ""
}

// =============================================================================

// Account represents the balance held by an individual account.
type Account struct {
	AccountID AccountID `json:"account"`
	Balance   int64     `json:"balance"`
}

// byAccount provides sorting support by the account id value.
type byAccount []Account

// Len returns the number of accounts in the list.
func (ba byAccount) Len() int {
	return len(ba)
}

// Less helps to sort the list by account id in ascending order.
func (ba byAccount) Less(i, j int) bool {
	return ba[i].AccountID < ba[j].AccountID
}

// Swap moves accounts in the order of the account id value.
func (ba byAccount) Swap(i, j int) {
	ba[i], ba[j] = ba[j], ba[i]
}
