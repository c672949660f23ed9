// Package payment drives the one-time on-chain payment that activates,
// upgrades, or renews a subscription plan.
//
// Subscribe is a strict linear flow (see Step): validate the plan, build a
// payment transaction from freshly fetched network parameters, collect a
// signature, broadcast, poll for confirmation within a bounded number of
// rounds, then replace the wallet's subscription row. Broadcast and record
// write are deliberately not atomic: a record-write failure after a confirmed
// payment is surfaced as ErrRecordWriteFailed together with a receipt
// carrying the TxID, never conflated with failures where no money moved.
//
// # Caller obligations
//
// The processor provides no mutual exclusion across concurrent Subscribe
// calls for the same wallet. Two concurrent calls could both succeed
// on-chain, each resetting the expiry and wasting one payment. Callers must
// disable re-entrant invocation at the interaction boundary, e.g. disable
// the triggering control while a call is in flight.
//
// There is no cancellation after broadcast; the confirmation poll runs to
// inclusion or timeout.
//
// # Usage
//
//	proc := payment.NewProcessor(client, store, catalog, cfg.ReceiverAddress,
//		payment.WithBillingPeriod(cfg.BillingPeriod),
//		payment.WithMaxConfirmRounds(cfg.MaxConfirmRounds),
//	)
//
//	receipt, err := proc.Subscribe(ctx, walletAddress, "pro", signer)
//	switch {
//	case errors.Is(err, payment.ErrUserRejected):
//		// no money moved, nothing to do
//	case errors.Is(err, payment.ErrRecordWriteFailed):
//		// payment confirmed: keep receipt.TxID for manual reconciliation
//	case err == nil:
//		// receipt.ExpiresAt is the new entitlement window
//	}
package payment
