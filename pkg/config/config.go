package config

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Environment variable names for the safetx CLI
const (
	EnvSafeAddress = "SAFETX_SAFE_ADDRESS"
	EnvChainID     = "SAFETX_CHAIN_ID"
	EnvNonce       = "SAFETX_NONCE"
	EnvVerbose     = "SAFETX_VERBOSE"
)

// EIP-712 domain constants for the Safe singleton this module targets.
const (
	SafeDomainName    = "Safe"
	SafeDomainVersion = "1.3.0"
)

type ChainId uint64

const (
	ChainId_EthereumMainnet ChainId = 1
	ChainId_Optimism        ChainId = 10
	ChainId_Polygon         ChainId = 137
	ChainId_Base            ChainId = 8453
	ChainId_Arbitrum        ChainId = 42161
)

type ChainName string

const (
	ChainName_EthereumMainnet ChainName = "mainnet"
	ChainName_Optimism        ChainName = "optimism"
	ChainName_Polygon         ChainName = "polygon"
	ChainName_Base            ChainName = "base"
	ChainName_Arbitrum        ChainName = "arbitrum"
)

var ChainIdToName = map[ChainId]ChainName{
	ChainId_EthereumMainnet: ChainName_EthereumMainnet,
	ChainId_Optimism:        ChainName_Optimism,
	ChainId_Polygon:         ChainName_Polygon,
	ChainId_Base:            ChainName_Base,
	ChainId_Arbitrum:        ChainName_Arbitrum,
}
var ChainNameToId = map[ChainName]ChainId{
	ChainName_EthereumMainnet: ChainId_EthereumMainnet,
	ChainName_Optimism:        ChainId_Optimism,
	ChainName_Polygon:         ChainId_Polygon,
	ChainName_Base:            ChainId_Base,
	ChainName_Arbitrum:        ChainId_Arbitrum,
}

// MultiSend 1.3.0 (the non-callOnly variant; batches are replayed via
// DELEGATECALL from the Safe).
var multiSendContracts = map[ChainId]common.Address{
	ChainId_EthereumMainnet: common.HexToAddress("0xA238CBeb142c10Ef7Ad8442C6D1f9E89e07e7761"),
	ChainId_Optimism:        common.HexToAddress("0x998739BFdAAdde7C933B942a68053933098f9EDa"),
	ChainId_Polygon:         common.HexToAddress("0x998739BFdAAdde7C933B942a68053933098f9EDa"),
	ChainId_Base:            common.HexToAddress("0x998739BFdAAdde7C933B942a68053933098f9EDa"),
	ChainId_Arbitrum:        common.HexToAddress("0x998739BFdAAdde7C933B942a68053933098f9EDa"),
}

// GetMultiSendAddressForChainId returns the MultiSend dispatch contract for a
// given chain.
func GetMultiSendAddressForChainId(chainId ChainId) (common.Address, error) {
	addr, ok := multiSendContracts[chainId]
	if !ok {
		return common.Address{}, fmt.Errorf("no MultiSend contract known for chain ID %d", chainId)
	}
	return addr, nil
}

// SafeTxConfig is the caller-supplied context for building and hashing Safe
// transactions. Chain ID and Safe address are carried here and passed down
// explicitly; nothing in this module reads process-wide state.
type SafeTxConfig struct {
	SafeAddress string  `json:"safe_address"` // The Safe multisig contract
	ChainID     ChainId `json:"chain_id"`
	Nonce       uint64  `json:"nonce"`

	Verbose bool `json:"verbose"`
}

// Validate validates the CLI-facing configuration
func (c *SafeTxConfig) Validate() error {
	if c.SafeAddress == "" {
		return fmt.Errorf("safe address cannot be empty")
	}
	if !common.IsHexAddress(c.SafeAddress) {
		return fmt.Errorf("invalid safe address format: %s", c.SafeAddress)
	}

	if _, exists := ChainIdToName[c.ChainID]; !exists {
		supported := make([]string, 0, len(ChainIdToName))
		for id, name := range ChainIdToName {
			supported = append(supported, fmt.Sprintf("%d (%s)", id, name))
		}
		return fmt.Errorf("unsupported chain ID %d. Supported: %s", c.ChainID, strings.Join(supported, ", "))
	}
	return nil
}
