package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/safeops-labs/safetx-go/pkg/builder"
	"github.com/safeops-labs/safetx-go/pkg/config"
	"github.com/safeops-labs/safetx-go/pkg/logger"
	"github.com/safeops-labs/safetx-go/pkg/signatures"
	"github.com/safeops-labs/safetx-go/pkg/types"
	"github.com/safeops-labs/safetx-go/pkg/units"
)

func main() {
	app := &cli.App{
		Name:  "safetx",
		Usage: "Safe multisig transaction builder",
		Description: `Builds Safe (v1.3.0) transactions offline and computes the EIP-712 signing
hash owners approve via approveHash. Supports single ERC20 transfers,
MultiSend batches and assembly of the approved-hash signature blob for
execTransaction.`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "Enable verbose logging",
				EnvVars: []string{config.EnvVerbose},
			},
		},
		Commands: []*cli.Command{
			transferCommand(),
			multiSendCommand(),
			approvalsCommand(),
			sortDigestsCommand(),
			convertCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func safeTxFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "safe",
			Usage:    "Safe multisig contract address",
			EnvVars:  []string{config.EnvSafeAddress},
			Required: true,
		},
		&cli.Uint64Flag{
			Name:    "chain-id",
			Aliases: []string{"chain"},
			Usage:   "Chain ID: 1 (mainnet), 10 (optimism), 137 (polygon), 8453 (base), 42161 (arbitrum)",
			EnvVars: []string{config.EnvChainID},
			Value:   uint64(config.ChainId_EthereumMainnet),
		},
		&cli.Uint64Flag{
			Name:    "nonce",
			Usage:   "Current Safe nonce",
			EnvVars: []string{config.EnvNonce},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write the transaction bundle JSON to this file",
		},
	}
}

func transferCommand() *cli.Command {
	return &cli.Command{
		Name:  "transfer",
		Usage: "Build a single ERC20 transfer transaction",
		Flags: append(safeTxFlags(),
			&cli.StringFlag{Name: "token", Usage: "ERC20 token contract address", Required: true},
			&cli.StringFlag{Name: "recipient", Usage: "Transfer recipient address", Required: true},
			&cli.StringFlag{Name: "amount", Usage: "Amount in the token's smallest unit", Required: true},
		),
		Action: runTransfer,
	}
}

func multiSendCommand() *cli.Command {
	return &cli.Command{
		Name:  "multisend",
		Usage: "Build a MultiSend batch of ERC20 transfers",
		Flags: append(safeTxFlags(),
			&cli.StringSliceFlag{
				Name:     "transfer",
				Usage:    "Transfer spec token:recipient:amount (repeatable)",
				Required: true,
			},
		),
		Action: runMultiSend,
	}
}

func approvalsCommand() *cli.Command {
	return &cli.Command{
		Name:      "approvals",
		Usage:     "Assemble the approved-hash signature blob for execTransaction",
		ArgsUsage: "OWNER_ADDRESS...",
		Action:    runApprovals,
	}
}

func sortDigestsCommand() *cli.Command {
	return &cli.Command{
		Name:      "sort-digests",
		Usage:     "Sort 32-byte digests ascending and concatenate them",
		ArgsUsage: "DIGEST...",
		Action:    runSortDigests,
	}
}

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:  "convert",
		Usage: "Convert a decimal token amount to its smallest unit",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "value", Usage: "Decimal amount, commas allowed", Required: true},
			&cli.IntFlag{Name: "decimals", Usage: "Token decimals", Value: 6},
		},
		Action: runConvert,
	}
}

func newBuilder(c *cli.Context) (*builder.SafeTransactionBuilder, *config.SafeTxConfig, error) {
	cfg := &config.SafeTxConfig{
		SafeAddress: c.String("safe"),
		ChainID:     config.ChainId(c.Uint64("chain-id")),
		Nonce:       c.Uint64("nonce"),
		Verbose:     c.Bool("verbose"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("configuration error: %w", err)
	}

	safeAddress, err := types.ParseAddress(cfg.SafeAddress)
	if err != nil {
		return nil, nil, err
	}
	return builder.NewSafeTransactionBuilder(safeAddress, cfg.ChainID), cfg, nil
}

func runTransfer(c *cli.Context) error {
	b, cfg, err := newBuilder(c)
	if err != nil {
		return err
	}
	l, _ := logger.NewLogger(&logger.LoggerConfig{Debug: cfg.Verbose})

	token, err := types.ParseAddress(c.String("token"))
	if err != nil {
		return err
	}
	recipient, err := types.ParseAddress(c.String("recipient"))
	if err != nil {
		return err
	}
	amount, err := types.AmountFromDecimalString(c.String("amount"))
	if err != nil {
		return err
	}

	bundle, err := b.BuildTokenTransfer(builder.TokenTransfer{
		Token:     token,
		Recipient: recipient,
		Amount:    amount,
	}, cfg.Nonce)
	if err != nil {
		return err
	}

	l.Debug("built transfer transaction",
		zap.String("safe", bundle.SafeAddress),
		zap.Uint64("chain_id", uint64(bundle.ChainID)),
		zap.String("digest", bundle.Digest),
	)
	return emitBundle(c, bundle)
}

func runMultiSend(c *cli.Context) error {
	b, cfg, err := newBuilder(c)
	if err != nil {
		return err
	}
	l, _ := logger.NewLogger(&logger.LoggerConfig{Debug: cfg.Verbose})

	specs := c.StringSlice("transfer")
	transfers := make([]builder.TokenTransfer, 0, len(specs))
	for _, spec := range specs {
		transfer, err := parseTransferSpec(spec)
		if err != nil {
			return err
		}
		transfers = append(transfers, transfer)
	}

	bundle, err := b.BuildMultiSendTransfers(transfers, cfg.Nonce)
	if err != nil {
		return err
	}

	l.Debug("built MultiSend transaction",
		zap.Int("transfers", len(transfers)),
		zap.String("digest", bundle.Digest),
	)
	return emitBundle(c, bundle)
}

func runApprovals(c *cli.Context) error {
	args := c.Args().Slice()
	owners := make([]common.Address, 0, len(args))
	for _, arg := range args {
		owner, err := types.ParseAddress(arg)
		if err != nil {
			return err
		}
		owners = append(owners, owner)
	}

	blob, err := signatures.Assemble(owners)
	if err != nil {
		return err
	}
	fmt.Printf("0x%x\n", blob)
	return nil
}

func runSortDigests(c *cli.Context) error {
	args := c.Args().Slice()
	digests := make([][32]byte, 0, len(args))
	for _, arg := range args {
		raw, err := hex.DecodeString(strings.TrimPrefix(arg, "0x"))
		if err != nil || len(raw) != 32 {
			return fmt.Errorf("digest %q is not 32 bytes of hex", arg)
		}
		var d [32]byte
		copy(d[:], raw)
		digests = append(digests, d)
	}
	if len(digests) == 0 {
		return fmt.Errorf("no digests given")
	}
	fmt.Printf("0x%x\n", signatures.SortAndConcatenateDigests(digests))
	return nil
}

func runConvert(c *cli.Context) error {
	amount, err := units.ToSmallestUnit(c.String("value"), c.Int("decimals"))
	if err != nil {
		return err
	}
	fmt.Println(amount.String())
	return nil
}

func parseTransferSpec(spec string) (builder.TokenTransfer, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 3 {
		return builder.TokenTransfer{}, fmt.Errorf("transfer spec %q must be token:recipient:amount", spec)
	}
	token, err := types.ParseAddress(parts[0])
	if err != nil {
		return builder.TokenTransfer{}, err
	}
	recipient, err := types.ParseAddress(parts[1])
	if err != nil {
		return builder.TokenTransfer{}, err
	}
	amount, err := types.AmountFromDecimalString(parts[2])
	if err != nil {
		return builder.TokenTransfer{}, err
	}
	return builder.TokenTransfer{Token: token, Recipient: recipient, Amount: amount}, nil
}

func emitBundle(c *cli.Context, bundle *builder.TxBundle) error {
	out, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return err
	}

	if path := c.String("output"); path != "" {
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	fmt.Println(string(out))
	fmt.Printf("\nTransaction hash (for approveHash):\n%s\n", bundle.Digest)
	return nil
}
