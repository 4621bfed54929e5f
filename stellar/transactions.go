package stellar

import (
	"fmt"
	"sort"

	"github.com/AlexZinkM/scf-launchpad/internal/common"
	"github.com/AlexZinkM/scf-launchpad/internal/model"
)

// FilterTransactions applies req to txs and returns matches sorted newest first.
func FilterTransactions(txs []model.Transaction, req *model.TransactionFilter) ([]model.Transaction, error) {
	result := make([]model.Transaction, 0, len(txs))
	for _, tx := range txs {
		if req != nil {
			ok, err := matches(tx, req)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		result = append(result, tx)
	}

	// Sort by time DESC (newest first)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func matches(tx model.Transaction, req *model.TransactionFilter) (bool, error) {
	if req.Hash != nil && *req.Hash != tx.Hash {
		return false, nil
	}
	if req.Successful != nil && *req.Successful != tx.Successful {
		return false, nil
	}
	if req.From != nil && tx.CreatedAt.Before(*req.From) {
		return false, nil
	}
	if req.To != nil && tx.CreatedAt.After(*req.To) {
		return false, nil
	}

	// Compare fees as stroops to avoid float precision issues
	if req.MinFee != nil {
		cmp, err := common.CompareAmounts(tx.FeeCharged, *req.MinFee)
		if err != nil {
			return false, fmt.Errorf("failed to compare min fee: %w", err)
		}
		if cmp < 0 {
			return false, nil
		}
	}
	if req.MaxFee != nil {
		cmp, err := common.CompareAmounts(tx.FeeCharged, *req.MaxFee)
		if err != nil {
			return false, fmt.Errorf("failed to compare max fee: %w", err)
		}
		if cmp > 0 {
			return false, nil
		}
	}
	return true, nil
}

// TotalFees sums the fees charged across txs.
func TotalFees(txs []model.Transaction) (string, error) {
	var total uint64
	for _, tx := range txs {
		stroops, err := common.AmountToStroops(tx.FeeCharged)
		if err != nil {
			return "", fmt.Errorf("invalid fee on %s: %w", tx.Hash, err)
		}
		total += stroops
	}
	return common.StroopsToAmount(total), nil
}
