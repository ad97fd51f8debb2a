package builder

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/safeops-labs/safetx-go/pkg/calldata"
	"github.com/safeops-labs/safetx-go/pkg/config"
	"github.com/safeops-labs/safetx-go/pkg/multisend"
	"github.com/safeops-labs/safetx-go/pkg/signatures"
	"github.com/safeops-labs/safetx-go/pkg/txHasher"
	"github.com/safeops-labs/safetx-go/pkg/types"
)

// SafeTransactionBuilder assembles Safe transactions and their signing
// digests for one Safe on one chain. It holds no other state and every method
// is a pure function of its inputs, so a builder may be shared between
// goroutines freely.
type SafeTransactionBuilder struct {
	safeAddress common.Address
	chainID     config.ChainId
}

func NewSafeTransactionBuilder(safeAddress common.Address, chainID config.ChainId) *SafeTransactionBuilder {
	return &SafeTransactionBuilder{
		safeAddress: safeAddress,
		chainID:     chainID,
	}
}

// TokenTransfer is one ERC20 transfer out of the Safe.
type TokenTransfer struct {
	Token     common.Address
	Recipient common.Address
	Amount    types.Amount
}

// SafeTxRecord is the JSON rendering of a SafeTx, shaped the way Safe tooling
// expects it (string-typed numerics, checksummed addresses, 0x-prefixed data).
type SafeTxRecord struct {
	To             string `json:"to"`
	Value          string `json:"value"`
	Data           string `json:"data"`
	Operation      uint8  `json:"operation"`
	SafeTxGas      string `json:"safeTxGas"`
	BaseGas        string `json:"baseGas"`
	GasPrice       string `json:"gasPrice"`
	GasToken       string `json:"gasToken"`
	RefundReceiver string `json:"refundReceiver"`
	Nonce          uint64 `json:"nonce"`
}

// TransferDetail describes one transfer inside a bundle for display purposes.
type TransferDetail struct {
	Token     string `json:"token"`
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

// TxBundle is the complete in-memory result of building one Safe transaction:
// the transaction record, its signing digest and the transfer breakdown. This
// is what the CLI serializes for the owners who will approve the hash.
type TxBundle struct {
	ID          string           `json:"id"`
	SafeAddress string           `json:"safe_address"`
	ChainID     config.ChainId   `json:"chain_id"`
	Transaction SafeTxRecord     `json:"transaction"`
	Digest      string           `json:"transaction_hash"`
	Transfers   []TransferDetail `json:"transfers,omitempty"`

	// Tx and SigningDigest carry the raw values for further composition
	// (e.g. assembling the signature blob once owners have approved).
	Tx            types.SafeTx        `json:"-"`
	SigningDigest types.SigningDigest `json:"-"`
}

// Build creates a Safe transaction with default (zero) fee fields and
// computes its signing digest.
func (b *SafeTransactionBuilder) Build(to common.Address, value types.Amount, data []byte, operation types.Operation, nonce uint64) (*TxBundle, error) {
	tx := types.SafeTx{
		To:        to,
		Value:     value,
		Data:      data,
		Operation: operation,
		Nonce:     nonce,
	}

	digest, err := txHasher.Compute(b.chainID, b.safeAddress, tx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute signing digest")
	}

	return &TxBundle{
		ID:            uuid.New().String(),
		SafeAddress:   types.ChecksumAddress(b.safeAddress),
		ChainID:       b.chainID,
		Transaction:   recordFromTx(tx),
		Digest:        digest.Hex(),
		Tx:            tx,
		SigningDigest: digest,
	}, nil
}

// BuildTokenTransfer creates a single ERC20 transfer transaction (a plain
// CALL into the token contract, zero native value).
func (b *SafeTransactionBuilder) BuildTokenTransfer(transfer TokenTransfer, nonce uint64) (*TxBundle, error) {
	data, err := calldata.EncodeTransfer(transfer.Recipient, transfer.Amount)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode transfer call data")
	}

	bundle, err := b.Build(transfer.Token, types.Amount{}, data, types.OperationCall, nonce)
	if err != nil {
		return nil, err
	}
	bundle.Transfers = []TransferDetail{detailFromTransfer(transfer)}
	return bundle, nil
}

// BuildMultiSendTransfers packs several ERC20 transfers into one MultiSend
// batch and wraps it in a single Safe transaction. The outer call targets the
// chain's MultiSend dispatch contract as a DELEGATECALL, so the sub-calls
// execute in the Safe's own context.
func (b *SafeTransactionBuilder) BuildMultiSendTransfers(transfers []TokenTransfer, nonce uint64) (*TxBundle, error) {
	if len(transfers) == 0 {
		return nil, multisend.ErrEmptyBatch
	}

	dispatchAddress, err := config.GetMultiSendAddressForChainId(b.chainID)
	if err != nil {
		return nil, err
	}

	entries := make([]types.CallEntry, 0, len(transfers))
	details := make([]TransferDetail, 0, len(transfers))
	for i, transfer := range transfers {
		data, err := calldata.EncodeTransfer(transfer.Recipient, transfer.Amount)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to encode transfer %d", i)
		}
		entries = append(entries, types.CallEntry{
			To:        transfer.Token,
			Data:      data,
			Operation: types.OperationCall,
		})
		details = append(details, detailFromTransfer(transfer))
	}

	batchData, err := multisend.EncodeBatch(entries)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode MultiSend batch")
	}

	bundle, err := b.Build(dispatchAddress, types.Amount{}, batchData, types.OperationDelegateCall, nonce)
	if err != nil {
		return nil, err
	}
	bundle.Transfers = details
	return bundle, nil
}

// ApprovalSignatures builds the execTransaction signature blob for owners who
// have pre-approved the bundle's digest on-chain.
func (b *SafeTransactionBuilder) ApprovalSignatures(owners []common.Address) ([]byte, error) {
	return signatures.Assemble(owners)
}

func recordFromTx(tx types.SafeTx) SafeTxRecord {
	return SafeTxRecord{
		To:             types.ChecksumAddress(tx.To),
		Value:          tx.Value.String(),
		Data:           hexutil.Encode(tx.Data),
		Operation:      uint8(tx.Operation),
		SafeTxGas:      tx.SafeTxGas.String(),
		BaseGas:        tx.BaseGas.String(),
		GasPrice:       tx.GasPrice.String(),
		GasToken:       types.ChecksumAddress(tx.GasToken),
		RefundReceiver: types.ChecksumAddress(tx.RefundReceiver),
		Nonce:          tx.Nonce,
	}
}

func detailFromTransfer(t TokenTransfer) TransferDetail {
	return TransferDetail{
		Token:     types.ChecksumAddress(t.Token),
		Recipient: types.ChecksumAddress(t.Recipient),
		Amount:    t.Amount.String(),
	}
}
