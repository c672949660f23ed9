// Package ledger defines the engine's boundary to the Algorand ledger and
// provides the algod-backed implementation.
//
// The Client interface covers exactly what the subscription engine needs:
// fetching network parameters, building and broadcasting a payment
// transaction, bounded confirmation polling, and enumerating account assets
// for program counting. Tests mock Client; production wires Algod:
//
//	client, err := ledger.NewAlgod(cfg)
//	if err != nil {
//		return err
//	}
//	counter := ledger.ProgramCounter(client, "LOYAL")
//
// WaitForConfirmation is the only place in the engine where bounded retrying
// occurs, and it polls for inclusion rather than re-submitting.
package ledger
