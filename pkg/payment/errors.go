package payment

import "errors"

// Failures before ErrBroadcastFailed mean no money moved. After a successful
// broadcast, ErrConfirmationTimeout means inclusion is unknown, and
// ErrRecordWriteFailed means money moved but entitlement was not recorded —
// the one case callers must reconcile manually using the receipt's TxID.
var (
	ErrNetworkParamsUnavailable = errors.New("failed to fetch network transaction params")
	ErrUserRejected             = errors.New("transaction rejected by wallet owner")
	ErrSigningFailed            = errors.New("transaction signing failed")
	ErrBroadcastFailed          = errors.New("transaction broadcast failed")
	ErrConfirmationTimeout      = errors.New("transaction not confirmed within round limit")
	ErrRecordWriteFailed        = errors.New("payment confirmed but subscription record write failed")
)
