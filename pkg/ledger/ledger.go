package ledger

import (
	"context"

	algotypes "github.com/algorand/go-algorand-sdk/v2/types"
)

// Params holds freshly fetched network transaction parameters.
// Parameters go stale after a validity window, so they are fetched per
// transaction and never reused across payment attempts.
type Params struct {
	Fee         uint64
	MinFee      uint64
	FirstValid  uint64
	LastValid   uint64
	GenesisID   string
	GenesisHash []byte
	FlatFee     bool
}

// AssetHolding is one asset balance held by an account.
type AssetHolding struct {
	AssetID uint64
	Amount  uint64
}

// AssetInfo describes an asset's immutable creation parameters.
type AssetInfo struct {
	AssetID  uint64
	Total    uint64
	Decimals uint32
	UnitName string
	Name     string
	URL      string
	Creator  string
}

// PendingTxn reports the confirmation state of a submitted transaction.
type PendingTxn struct {
	ConfirmedRound uint64
	PoolError      string
}

// Client is the ledger boundary the engine is implemented against.
// Algod provides the production implementation; tests supply mocks.
type Client interface {
	// SuggestedParams fetches current network transaction parameters.
	SuggestedParams(ctx context.Context) (Params, error)

	// MakePaymentTxn builds an unsigned payment transaction and returns
	// its canonical encoding, ready to hand to a wallet signer.
	MakePaymentTxn(params Params, from, to string, amount uint64, note []byte) ([]byte, error)

	// SubmitRawTransaction broadcasts a signed transaction and returns its ID.
	SubmitRawTransaction(ctx context.Context, signed []byte) (string, error)

	// WaitForConfirmation polls for inclusion for at most maxRounds rounds.
	// Returns ErrNotConfirmed when the bound is exhausted. This is polling
	// for inclusion, never re-submission.
	WaitForConfirmation(ctx context.Context, txid string, maxRounds uint64) (PendingTxn, error)

	// AccountAssets enumerates the asset holdings of an account.
	AccountAssets(ctx context.Context, address string) ([]AssetHolding, error)

	// AssetInfo fetches creation parameters for a single asset.
	AssetInfo(ctx context.Context, assetID uint64) (AssetInfo, error)
}

// IsValidAddress reports whether s is a syntactically valid chain address.
func IsValidAddress(s string) bool {
	_, err := algotypes.DecodeAddress(s)
	return err == nil
}
