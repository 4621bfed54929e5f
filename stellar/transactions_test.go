package stellar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/scf-launchpad/internal/model"
)

func sampleTransactions() []model.Transaction {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []model.Transaction{
		{Hash: "a", FeeCharged: "0.0000100", Successful: true, CreatedAt: base},
		{Hash: "b", FeeCharged: "0.0001000", Successful: false, CreatedAt: base.Add(2 * time.Hour)},
		{Hash: "c", FeeCharged: "0.0010000", Successful: true, CreatedAt: base.Add(time.Hour)},
	}
}

func TestFilterTransactionsSortsNewestFirst(t *testing.T) {
	got, err := FilterTransactions(sampleTransactions(), nil)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{got[0].Hash, got[1].Hash, got[2].Hash})
}

func TestFilterTransactionsByFields(t *testing.T) {
	txs := sampleTransactions()
	hash := "c"
	got, err := FilterTransactions(txs, &model.TransactionFilter{Hash: &hash})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].Hash)

	success := true
	got, err = FilterTransactions(txs, &model.TransactionFilter{Successful: &success})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	minFee, maxFee := "0.00005", "0.0005"
	got, err = FilterTransactions(txs, &model.TransactionFilter{MinFee: &minFee, MaxFee: &maxFee})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Hash)

	from := txs[0].CreatedAt.Add(30 * time.Minute)
	to := txs[0].CreatedAt.Add(90 * time.Minute)
	got, err = FilterTransactions(txs, &model.TransactionFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].Hash)
}

func TestFilterTransactionsBadFee(t *testing.T) {
	bad := "abc"
	_, err := FilterTransactions(sampleTransactions(), &model.TransactionFilter{MinFee: &bad})
	assert.Error(t, err)
}

func TestTotalFees(t *testing.T) {
	total, err := TotalFees(sampleTransactions())
	require.NoError(t, err)
	assert.Equal(t, "0.0011100", total)
}
