package payment

import "time"

// Step identifies a stage of the subscribe flow. Steps execute in strict
// sequence; no step begins before the prior one resolves.
type Step string

const (
	StepSelecting           Step = "selecting"
	StepBuildingTransaction Step = "building_transaction"
	StepAwaitingSignature   Step = "awaiting_signature"
	StepSubmitting          Step = "submitting"
	StepConfirming          Step = "confirming"
	StepRecording           Step = "recording"
	StepDone                Step = "done"
)

// Receipt is the outcome of a subscribe call. On ErrRecordWriteFailed a
// non-nil Receipt still carries the confirmed TxID so the caller can
// reconcile the entitlement record manually.
type Receipt struct {
	TxID           string
	PlanID         string
	ConfirmedRound uint64
	ActivatedAt    time.Time
	ExpiresAt      time.Time
}
