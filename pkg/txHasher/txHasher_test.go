package txHasher

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/safeops-labs/safetx-go/pkg/calldata"
	"github.com/safeops-labs/safetx-go/pkg/config"
	"github.com/safeops-labs/safetx-go/pkg/types"
)

var (
	testSafe = common.HexToAddress("0x1234567890123456789012345678901234567890")
	usdc     = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
)

// usdcTransferTx builds the reference transaction used across these tests: a
// transfer of 42449330000 units to the 0x12-repeating recipient.
func usdcTransferTx(t *testing.T, nonce uint64) types.SafeTx {
	t.Helper()

	recipient := common.HexToAddress("0x1212121212121212121212121212121212121212")
	amount, err := types.AmountFromDecimalString("42449330000")
	require.NoError(t, err)

	data, err := calldata.EncodeTransfer(recipient, amount)
	require.NoError(t, err)

	return types.SafeTx{
		To:        usdc,
		Data:      data,
		Operation: types.OperationCall,
		Nonce:     nonce,
	}
}

func TestDomainSeparator(t *testing.T) {
	sep := DomainSeparator(config.ChainId_EthereumMainnet, testSafe)
	require.Equal(t,
		"0xb2ffa97037138e0887300dcec8977fc302917a8ca27fe5508710dd2fb756a2a9",
		sep.Hex())
}

func TestDomainSeparator_BindsChainAndContract(t *testing.T) {
	base := DomainSeparator(config.ChainId_EthereumMainnet, testSafe)

	require.NotEqual(t, base, DomainSeparator(config.ChainId_Optimism, testSafe))
	require.NotEqual(t, base, DomainSeparator(config.ChainId_EthereumMainnet, usdc))
}

func TestStructHash(t *testing.T) {
	hash, err := StructHash(usdcTransferTx(t, 0))
	require.NoError(t, err)
	require.Equal(t,
		"0x62a1bad39722faee464451f574f393d4eacd81065c47a31f3ab23207711fb0cf",
		hash.Hex())
}

func TestCompute(t *testing.T) {
	digest, err := Compute(config.ChainId_EthereumMainnet, testSafe, usdcTransferTx(t, 0))
	require.NoError(t, err)
	require.Equal(t,
		"0x0d153d32aafcbfc6485d6646d4314a28b46d67006ece9f87b3f0595b3d2be28c",
		digest.Hex())
}

func TestCompute_Deterministic(t *testing.T) {
	tx := usdcTransferTx(t, 3)

	first, err := Compute(config.ChainId_EthereumMainnet, testSafe, tx)
	require.NoError(t, err)
	second, err := Compute(config.ChainId_EthereumMainnet, testSafe, tx)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestCompute_NonceChangesDigest(t *testing.T) {
	digest0, err := Compute(config.ChainId_EthereumMainnet, testSafe, usdcTransferTx(t, 0))
	require.NoError(t, err)
	digest1, err := Compute(config.ChainId_EthereumMainnet, testSafe, usdcTransferTx(t, 1))
	require.NoError(t, err)

	require.NotEqual(t, digest0, digest1)
	require.Equal(t,
		"0x758c181850930ebe44ba58770f915def11c8ed4cf4a4b02283a38f864b893346",
		digest1.Hex())
}

func TestCompute_EveryFieldBindsDigest(t *testing.T) {
	base := usdcTransferTx(t, 0)

	other := common.HexToAddress("0x0000000000000000000000000000000000000001")
	one := types.AmountFromUint64(1)

	mutations := map[string]func(tx *types.SafeTx){
		"to":              func(tx *types.SafeTx) { tx.To = other },
		"value":           func(tx *types.SafeTx) { tx.Value = one },
		"data":            func(tx *types.SafeTx) { tx.Data = append(tx.Data, 0x00) },
		"operation":       func(tx *types.SafeTx) { tx.Operation = types.OperationDelegateCall },
		"safe tx gas":     func(tx *types.SafeTx) { tx.SafeTxGas = one },
		"base gas":        func(tx *types.SafeTx) { tx.BaseGas = one },
		"gas price":       func(tx *types.SafeTx) { tx.GasPrice = one },
		"gas token":       func(tx *types.SafeTx) { tx.GasToken = other },
		"refund receiver": func(tx *types.SafeTx) { tx.RefundReceiver = other },
		"nonce":           func(tx *types.SafeTx) { tx.Nonce = 1 },
	}

	baseDigest, err := Compute(config.ChainId_EthereumMainnet, testSafe, base)
	require.NoError(t, err)

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			tx := usdcTransferTx(t, 0)
			mutate(&tx)

			digest, err := Compute(config.ChainId_EthereumMainnet, testSafe, tx)
			require.NoError(t, err)
			require.NotEqual(t, baseDigest, digest, "mutating %s must change the digest", name)
		})
	}
}

func TestCompute_InvalidOperation(t *testing.T) {
	tx := usdcTransferTx(t, 0)
	tx.Operation = types.Operation(9)

	_, err := Compute(config.ChainId_EthereumMainnet, testSafe, tx)
	require.Error(t, err)
}

func TestCompute_EmptyData(t *testing.T) {
	tx := types.SafeTx{To: testSafe, Operation: types.OperationCall}

	digest, err := Compute(config.ChainId_EthereumMainnet, testSafe, tx)
	require.NoError(t, err)
	require.NotEqual(t, types.SigningDigest{}, digest)
}
