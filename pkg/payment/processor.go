package payment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Emrys-Org/loyalmint/pkg/entitlement"
	"github.com/Emrys-Org/loyalmint/pkg/ledger"
	"github.com/Emrys-Org/loyalmint/pkg/wallet"
)

const (
	// DefaultBillingPeriod is one billing period applied on every payment.
	DefaultBillingPeriod = 30 * 24 * time.Hour
	// DefaultMaxConfirmRounds bounds the confirmation poll.
	DefaultMaxConfirmRounds = 4

	// txnNotePrefix marks platform subscription payments on the ledger.
	txnNotePrefix = "loyalmint/subscribe:"
)

// Config holds the processor's environment-driven settings.
type Config struct {
	ReceiverAddress  string        `env:"PLATFORM_RECEIVER_ADDRESS,required"`
	BillingPeriod    time.Duration `env:"BILLING_PERIOD" envDefault:"720h"`
	MaxConfirmRounds uint64        `env:"MAX_CONFIRM_ROUNDS" envDefault:"4"`
}

// Processor drives the one-time on-chain payment that activates or upgrades
// a plan, then records the resulting subscription state.
type Processor struct {
	ledger    ledger.Client
	store     entitlement.Store
	catalog   *entitlement.Catalog
	receiver  string
	period    time.Duration
	maxRounds uint64
	log       *slog.Logger
	now       func() time.Time
	onStep    func(Step)
}

// Option configures a Processor instance.
type Option func(*Processor)

// WithBillingPeriod overrides the period granted per payment.
func WithBillingPeriod(period time.Duration) Option {
	return func(p *Processor) {
		if period > 0 {
			p.period = period
		}
	}
}

// WithMaxConfirmRounds overrides the confirmation poll bound.
func WithMaxConfirmRounds(rounds uint64) Option {
	return func(p *Processor) {
		if rounds > 0 {
			p.maxRounds = rounds
		}
	}
}

// WithLogger sets the structured logger used by the processor.
func WithLogger(log *slog.Logger) Option {
	return func(p *Processor) {
		if log != nil {
			p.log = log
		}
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) {
		if now != nil {
			p.now = now
		}
	}
}

// WithTransitionHook registers a callback invoked as the flow enters each
// step, letting the UI render progress without reaching into the engine.
func WithTransitionHook(hook func(Step)) Option {
	return func(p *Processor) {
		if hook != nil {
			p.onStep = hook
		}
	}
}

// NewProcessor creates a payment processor that pays into receiverAddress.
// Panics if required dependencies are nil or the receiver address is invalid,
// to fail fast during initialization.
func NewProcessor(client ledger.Client, store entitlement.Store, catalog *entitlement.Catalog, receiverAddress string, opts ...Option) *Processor {
	if client == nil {
		panic("payment: ledger.Client is required")
	}
	if store == nil {
		panic("payment: entitlement.Store is required")
	}
	if catalog == nil {
		panic("payment: entitlement.Catalog is required")
	}
	if !ledger.IsValidAddress(receiverAddress) {
		panic("payment: invalid platform receiver address")
	}

	p := &Processor{
		ledger:    client,
		store:     store,
		catalog:   catalog,
		receiver:  receiverAddress,
		period:    DefaultBillingPeriod,
		maxRounds: DefaultMaxConfirmRounds,
		log:       slog.Default(),
		now:       func() time.Time { return time.Now().UTC() },
		onStep:    func(Step) {},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Subscribe runs the linear payment flow for one plan purchase: build a
// payment transaction for the plan price, have the signer sign it, broadcast
// it, poll for inclusion, then replace the wallet's subscription row with
// plan, activation now, and expiry now + one billing period. Upgrading,
// downgrading, or renewing always resets the period from the moment of
// payment; remaining time never stacks.
//
// There are no internal retries except the bounded confirmation poll; a
// failed call is retried only by an explicit caller-initiated repeat. When
// the record write fails after confirmation, the returned receipt is non-nil
// and carries the TxID alongside ErrRecordWriteFailed.
func (p *Processor) Subscribe(ctx context.Context, walletAddress, planID string, signer wallet.Signer) (*Receipt, error) {
	if signer == nil {
		return nil, ErrSigningFailed
	}

	attempt := uuid.New()
	log := p.log.With(
		slog.String("attempt", attempt.String()),
		slog.String("wallet", walletAddress),
		slog.String("plan", planID),
	)

	p.onStep(StepSelecting)
	plan, ok := p.catalog.Get(planID)
	if !ok {
		return nil, entitlement.ErrUnknownPlan
	}
	if !ledger.IsValidAddress(walletAddress) {
		return nil, entitlement.ErrInvalidAddress
	}

	p.onStep(StepBuildingTransaction)
	params, err := p.ledger.SuggestedParams(ctx)
	if err != nil {
		return nil, errors.Join(ErrNetworkParamsUnavailable, err)
	}

	note := []byte(txnNotePrefix + planID)
	unsigned, err := p.ledger.MakePaymentTxn(params, walletAddress, p.receiver, uint64(plan.Price), note)
	if err != nil {
		return nil, errors.Join(ErrNetworkParamsUnavailable, err)
	}

	p.onStep(StepAwaitingSignature)
	signed, err := signer.Sign(ctx, [][]byte{unsigned})
	if err != nil {
		if errors.Is(err, wallet.ErrRejected) {
			log.InfoContext(ctx, "payment declined by wallet owner")
			return nil, errors.Join(ErrUserRejected, err)
		}
		return nil, errors.Join(ErrSigningFailed, err)
	}
	if len(signed) != 1 {
		return nil, ErrSigningFailed
	}

	p.onStep(StepSubmitting)
	txid, err := p.ledger.SubmitRawTransaction(ctx, signed[0])
	if err != nil {
		return nil, errors.Join(ErrBroadcastFailed, err)
	}
	log = log.With(slog.String("txid", txid))
	log.InfoContext(ctx, "payment transaction broadcast")

	// Past this point the call cannot be abandoned: the poll runs to
	// inclusion or timeout.
	p.onStep(StepConfirming)
	pending, err := p.ledger.WaitForConfirmation(ctx, txid, p.maxRounds)
	if err != nil {
		return nil, errors.Join(ErrConfirmationTimeout, err)
	}

	p.onStep(StepRecording)
	now := p.now()
	sub := &entitlement.Subscription{
		WalletAddress: walletAddress,
		PlanID:        planID,
		ActivatedAt:   now,
		ExpiresAt:     now.Add(p.period),
	}

	receipt := &Receipt{
		TxID:           txid,
		PlanID:         planID,
		ConfirmedRound: pending.ConfirmedRound,
		ActivatedAt:    now,
		ExpiresAt:      sub.ExpiresAt,
	}

	if err := p.store.Upsert(ctx, sub); err != nil {
		// Money moved but entitlement did not update. Surface the TxID so
		// the caller can offer a manual reconciliation path.
		log.ErrorContext(ctx, "subscription record write failed after confirmed payment",
			slog.Any("error", err))
		return receipt, errors.Join(ErrRecordWriteFailed, err)
	}

	p.onStep(StepDone)
	log.InfoContext(ctx, "subscription activated",
		slog.Time("expires_at", sub.ExpiresAt))
	return receipt, nil
}
