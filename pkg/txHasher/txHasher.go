package txHasher

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/safeops-labs/safetx-go/pkg/config"
	"github.com/safeops-labs/safetx-go/pkg/types"
)

// Type strings hashed into the EIP-712 domain separator and SafeTx struct
// hash. These are contract constants; changing a single character changes
// every digest this package produces.
const (
	EIP712DomainTypeString = "EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"
	SafeTxTypeString       = "SafeTx(address to,uint256 value,bytes data,uint8 operation,uint256 safeTxGas,uint256 baseGas,uint256 gasPrice,address gasToken,address refundReceiver,uint256 nonce)"
)

var (
	domainTypeHash = crypto.Keccak256Hash([]byte(EIP712DomainTypeString))
	safeTxTypeHash = crypto.Keccak256Hash([]byte(SafeTxTypeString))
	nameHash       = crypto.Keccak256Hash([]byte(config.SafeDomainName))
	versionHash    = crypto.Keccak256Hash([]byte(config.SafeDomainVersion))
)

// DomainSeparator computes the EIP-712 domain separator binding digests to
// one chain and one Safe contract. Both are explicit parameters; the result
// is a pure function of them.
func DomainSeparator(chainID config.ChainId, verifyingContract common.Address) common.Hash {
	buf := make([]byte, 0, 5*32)
	buf = append(buf, domainTypeHash.Bytes()...)
	buf = append(buf, nameHash.Bytes()...)
	buf = append(buf, versionHash.Bytes()...)
	buf = append(buf, uint64Word(uint64(chainID))...)
	buf = append(buf, addressWord(verifyingContract)...)
	return crypto.Keccak256Hash(buf)
}

// StructHash computes keccak256 of the ABI-encoded SafeTx struct: the SafeTx
// typehash followed by each field as a 32-byte word in declared order, with
// the dynamic data field represented by its keccak256 hash.
func StructHash(tx types.SafeTx) (common.Hash, error) {
	op, err := tx.Operation.Uint8()
	if err != nil {
		return common.Hash{}, err
	}

	value := tx.Value.Bytes32()
	safeTxGas := tx.SafeTxGas.Bytes32()
	baseGas := tx.BaseGas.Bytes32()
	gasPrice := tx.GasPrice.Bytes32()

	buf := make([]byte, 0, 11*32)
	buf = append(buf, safeTxTypeHash.Bytes()...)
	buf = append(buf, addressWord(tx.To)...)
	buf = append(buf, value[:]...)
	buf = append(buf, crypto.Keccak256(tx.Data)...)
	buf = append(buf, uint64Word(uint64(op))...)
	buf = append(buf, safeTxGas[:]...)
	buf = append(buf, baseGas[:]...)
	buf = append(buf, gasPrice[:]...)
	buf = append(buf, addressWord(tx.GasToken)...)
	buf = append(buf, addressWord(tx.RefundReceiver)...)
	buf = append(buf, uint64Word(tx.Nonce)...)
	return crypto.Keccak256Hash(buf), nil
}

// Compute produces the signing digest for tx:
//
//	keccak256(0x19 ++ 0x01 ++ domainSeparator ++ structHash)
//
// Deterministic for any well-formed SafeTx; identical inputs always produce
// identical digests.
func Compute(chainID config.ChainId, verifyingContract common.Address, tx types.SafeTx) (types.SigningDigest, error) {
	structHash, err := StructHash(tx)
	if err != nil {
		return types.SigningDigest{}, err
	}
	domainSeparator := DomainSeparator(chainID, verifyingContract)

	buf := make([]byte, 0, 2+2*32)
	buf = append(buf, 0x19, 0x01)
	buf = append(buf, domainSeparator.Bytes()...)
	buf = append(buf, structHash.Bytes()...)
	return types.SigningDigest(crypto.Keccak256Hash(buf)), nil
}

func addressWord(addr common.Address) []byte {
	return common.LeftPadBytes(addr.Bytes(), 32)
}

func uint64Word(v uint64) []byte {
	return common.LeftPadBytes(new(big.Int).SetUint64(v).Bytes(), 32)
}
