package ledger

import (
	"context"
	"strings"
)

// ProgramCounter returns a counter over the wallet's ledger holdings that
// counts loyalty-program assets: unique, non-fungible units carrying the
// platform's unit-name marker. The count is derived state and recomputed on
// every call; callers must not cache it across gating decisions.
//
// The returned function satisfies entitlement.CounterFunc.
func ProgramCounter(client Client, unitNameMarker string) func(ctx context.Context, address string) (int64, error) {
	if client == nil {
		panic("ledger: Client is required")
	}
	if unitNameMarker == "" {
		panic("ledger: unit name marker is required")
	}

	return func(ctx context.Context, address string) (int64, error) {
		holdings, err := client.AccountAssets(ctx, address)
		if err != nil {
			return 0, err
		}

		var count int64
		for _, holding := range holdings {
			// Zero balance means opted in but transferred away
			if holding.Amount == 0 {
				continue
			}

			info, err := client.AssetInfo(ctx, holding.AssetID)
			if err != nil {
				return 0, err
			}

			if isProgramAsset(info, unitNameMarker) {
				count++
			}
		}

		return count, nil
	}
}

// isProgramAsset reports whether an asset is a loyalty program marker:
// a single indivisible unit whose unit name starts with the platform prefix.
func isProgramAsset(info AssetInfo, marker string) bool {
	return info.Total == 1 && info.Decimals == 0 && strings.HasPrefix(info.UnitName, marker)
}
