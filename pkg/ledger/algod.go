package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/algod"
	"github.com/algorand/go-algorand-sdk/v2/encoding/msgpack"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
	algotypes "github.com/algorand/go-algorand-sdk/v2/types"
)

var (
	ErrNotConfirmed  = errors.New("transaction not confirmed within round limit")
	ErrTxnRejected   = errors.New("transaction rejected by the network")
	ErrNodeRequest   = errors.New("algod request failed")
	ErrInvalidConfig = errors.New("invalid algod configuration")
)

// AlgodConfig configures the algod node connection.
type AlgodConfig struct {
	URL   string `env:"ALGOD_URL" envDefault:"https://testnet-api.algonode.cloud"`
	Token string `env:"ALGOD_TOKEN" envDefault:""`
}

// Algod implements Client over an algod REST node.
type Algod struct {
	client *algod.Client
}

// NewAlgod creates a ledger client connected to the configured algod node.
func NewAlgod(cfg AlgodConfig) (*Algod, error) {
	if cfg.URL == "" {
		return nil, errors.Join(ErrInvalidConfig, errors.New("algod URL is required"))
	}

	client, err := algod.MakeClient(cfg.URL, cfg.Token)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	return &Algod{client: client}, nil
}

// SuggestedParams fetches current network transaction parameters.
func (a *Algod) SuggestedParams(ctx context.Context) (Params, error) {
	sp, err := a.client.SuggestedParams().Do(ctx)
	if err != nil {
		return Params{}, errors.Join(ErrNodeRequest, err)
	}

	return Params{
		Fee:         uint64(sp.Fee),
		MinFee:      sp.MinFee,
		FirstValid:  uint64(sp.FirstRoundValid),
		LastValid:   uint64(sp.LastRoundValid),
		GenesisID:   sp.GenesisID,
		GenesisHash: sp.GenesisHash,
		FlatFee:     sp.FlatFee,
	}, nil
}

// MakePaymentTxn builds an unsigned payment transaction and returns its
// canonical msgpack encoding.
func (a *Algod) MakePaymentTxn(params Params, from, to string, amount uint64, note []byte) ([]byte, error) {
	sp := algotypes.SuggestedParams{
		Fee:             algotypes.MicroAlgos(params.Fee),
		MinFee:          params.MinFee,
		FirstRoundValid: algotypes.Round(params.FirstValid),
		LastRoundValid:  algotypes.Round(params.LastValid),
		GenesisID:       params.GenesisID,
		GenesisHash:     params.GenesisHash,
		FlatFee:         params.FlatFee,
	}

	txn, err := transaction.MakePaymentTxn(from, to, amount, note, "", sp)
	if err != nil {
		return nil, fmt.Errorf("failed to build payment transaction: %w", err)
	}

	return msgpack.Encode(&txn), nil
}

// SubmitRawTransaction broadcasts a signed transaction and returns its ID.
func (a *Algod) SubmitRawTransaction(ctx context.Context, signed []byte) (string, error) {
	txid, err := a.client.SendRawTransaction(signed).Do(ctx)
	if err != nil {
		return "", errors.Join(ErrNodeRequest, err)
	}
	return txid, nil
}

// WaitForConfirmation polls for inclusion for at most maxRounds rounds past
// the node's current round. Expressed as an explicit bounded loop rather
// than an open-ended wait.
func (a *Algod) WaitForConfirmation(ctx context.Context, txid string, maxRounds uint64) (PendingTxn, error) {
	status, err := a.client.Status().Do(ctx)
	if err != nil {
		return PendingTxn{}, errors.Join(ErrNodeRequest, err)
	}

	current := status.LastRound
	deadline := current + maxRounds

	for current <= deadline {
		pending, _, err := a.client.PendingTransactionInformation(txid).Do(ctx)
		if err != nil {
			return PendingTxn{}, errors.Join(ErrNodeRequest, err)
		}
		if pending.PoolError != "" {
			return PendingTxn{PoolError: pending.PoolError},
				fmt.Errorf("%w: %s", ErrTxnRejected, pending.PoolError)
		}
		if pending.ConfirmedRound > 0 {
			return PendingTxn{ConfirmedRound: pending.ConfirmedRound}, nil
		}

		// Block until the next round rather than busy-polling the node.
		if _, err := a.client.StatusAfterBlock(current).Do(ctx); err != nil {
			return PendingTxn{}, errors.Join(ErrNodeRequest, err)
		}
		current++
	}

	return PendingTxn{}, ErrNotConfirmed
}

// AccountAssets enumerates the asset holdings of an account.
func (a *Algod) AccountAssets(ctx context.Context, address string) ([]AssetHolding, error) {
	account, err := a.client.AccountInformation(address).Do(ctx)
	if err != nil {
		return nil, errors.Join(ErrNodeRequest, err)
	}

	holdings := make([]AssetHolding, 0, len(account.Assets))
	for _, h := range account.Assets {
		holdings = append(holdings, AssetHolding{
			AssetID: h.AssetId,
			Amount:  h.Amount,
		})
	}
	return holdings, nil
}

// AssetInfo fetches creation parameters for a single asset.
func (a *Algod) AssetInfo(ctx context.Context, assetID uint64) (AssetInfo, error) {
	asset, err := a.client.GetAssetByID(assetID).Do(ctx)
	if err != nil {
		return AssetInfo{}, errors.Join(ErrNodeRequest, err)
	}

	return AssetInfo{
		AssetID:  asset.Index,
		Total:    asset.Params.Total,
		Decimals: uint32(asset.Params.Decimals),
		UnitName: asset.Params.UnitName,
		Name:     asset.Params.Name,
		URL:      asset.Params.Url,
		Creator:  asset.Params.Creator,
	}, nil
}
