// Package entitlement implements plan catalogs, subscription resolution, and
// per-plan resource gating for the loyalty platform.
//
// A wallet address is the entitlement key. The package answers two questions
// for UI handlers: "which plan is this wallet on right now?" and "may it mint
// one more loyalty program?". Subscription rows live in external storage
// behind the Store interface; program counts are recomputed from ledger state
// on every check and never cached.
//
// # Components
//
//   - Catalog: immutable plan lookup built at process start (DefaultCatalog
//     ships the platform tiers).
//   - Service.Resolve: wallet address -> current subscription, nil meaning the
//     implicit free tier. Activity is derived from the expiry timestamp at
//     call time, never read from a stored flag.
//   - Check / Service.CanCreateProgram: the gating decision. Fails closed when
//     storage or the ledger is unavailable.
//   - Store: persistence boundary with MemoryStore (tests, development) and
//     PGStore (pgx/v5, goose migrations) implementations.
//
// # Usage
//
//	catalog := entitlement.DefaultCatalog()
//	pool, err := entitlement.Connect(ctx, pgCfg)
//	if err != nil {
//		return err
//	}
//	svc := entitlement.NewService(
//		catalog,
//		entitlement.NewPGStore(pool),
//		ledger.ProgramCounter(client, "LOYAL"),
//	)
//
//	decision, err := svc.CanCreateProgram(ctx, walletAddress)
//	if err != nil {
//		// entitlement unknown: deny and surface the failure
//	}
//	if !decision.Allowed {
//		// show upgrade prompt; decision.Reason explains the denial
//	}
//
// The client-side check is advisory. The authoritative resource set lives on
// a public ledger the client cannot fence, so any trusted backend enforcing
// the same limits must re-validate.
package entitlement
