// Package wallet defines the transaction signing boundary.
//
// A Signer is anything that can turn unsigned transaction bytes into signed
// ones: a browser wallet bridge, a mobile wallet over a pairing session, or
// the in-process LocalSigner. A user declining to sign is reported as
// ErrRejected so callers can distinguish it from transport failures.
package wallet

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/encoding/msgpack"
	"github.com/algorand/go-algorand-sdk/v2/mnemonic"
	algotypes "github.com/algorand/go-algorand-sdk/v2/types"
)

var (
	// ErrRejected indicates the wallet owner declined to sign.
	ErrRejected = errors.New("signing rejected by wallet owner")
	// ErrSigningFailed indicates the signer errored or timed out.
	ErrSigningFailed = errors.New("transaction signing failed")
)

// Signer signs a group of unsigned transactions.
// Implementations sign all or nothing; a partial result is never returned.
type Signer interface {
	Sign(ctx context.Context, unsigned [][]byte) ([][]byte, error)
}

// LocalSigner signs with an in-process ed25519 key. Used in tests and for
// server-side platform wallets; end users sign through their own wallets.
type LocalSigner struct {
	key ed25519.PrivateKey
}

// NewLocalSigner creates a signer from a raw ed25519 private key.
func NewLocalSigner(key ed25519.PrivateKey) *LocalSigner {
	if len(key) != ed25519.PrivateKeySize {
		panic("wallet: invalid ed25519 private key size")
	}
	return &LocalSigner{key: key}
}

// LocalSignerFromMnemonic creates a signer from a 25-word account mnemonic.
func LocalSignerFromMnemonic(words string) (*LocalSigner, error) {
	key, err := mnemonic.ToPrivateKey(words)
	if err != nil {
		return nil, errors.Join(ErrSigningFailed, err)
	}
	return NewLocalSigner(key), nil
}

// Address returns the signer's wallet address.
func (s *LocalSigner) Address() string {
	account, err := crypto.AccountFromPrivateKey(s.key)
	if err != nil {
		return ""
	}
	return account.Address.String()
}

// Sign decodes each unsigned transaction and signs it with the local key.
func (s *LocalSigner) Sign(ctx context.Context, unsigned [][]byte) ([][]byte, error) {
	signed := make([][]byte, len(unsigned))
	for i, raw := range unsigned {
		var txn algotypes.Transaction
		if err := msgpack.Decode(raw, &txn); err != nil {
			return nil, errors.Join(ErrSigningFailed, fmt.Errorf("decode transaction %d: %w", i, err))
		}

		_, stx, err := crypto.SignTransaction(s.key, txn)
		if err != nil {
			return nil, errors.Join(ErrSigningFailed, err)
		}
		signed[i] = stx
	}
	return signed, nil
}
