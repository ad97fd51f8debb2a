package signatures

import (
	"bytes"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// ApprovalEntryLength is the fixed size of one signature slot in the blob
// passed to execTransaction.
const ApprovalEntryLength = 65

// ErrEmptyOwnerSet is returned when a signature blob is requested for zero
// owners.
var ErrEmptyOwnerSet = errors.New("empty owner set")

// ApprovalEntry builds the 65-byte signature entry for an owner whose
// approval of the digest is already recorded on-chain via approveHash:
//
//	r = left_pad32(owner), s = 0, v = 1
//
// v == 1 tells checkSignatures to look the owner up in approvedHashes instead
// of recovering a signature.
func ApprovalEntry(owner common.Address) []byte {
	out := make([]byte, ApprovalEntryLength)
	copy(out[12:32], owner.Bytes())
	out[64] = 0x01
	return out
}

// Assemble deduplicates owners, sorts them in ascending order of their raw
// 20-byte value and concatenates one approval entry per owner. The Safe
// contract walks the blob expecting strictly increasing owner addresses and
// rejects out-of-order or duplicate entries, so the sort is mandatory and the
// result is independent of input order.
func Assemble(owners []common.Address) ([]byte, error) {
	if len(owners) == 0 {
		return nil, ErrEmptyOwnerSet
	}

	sorted := SortOwners(owners)

	blob := make([]byte, 0, len(sorted)*ApprovalEntryLength)
	for _, owner := range sorted {
		blob = append(blob, ApprovalEntry(owner)...)
	}
	return blob, nil
}

// SortOwners returns a deduplicated copy of owners sorted by ascending raw
// address bytes. Hex case never enters into it; the comparison is on the
// 20-byte values.
func SortOwners(owners []common.Address) []common.Address {
	sorted := make([]common.Address, len(owners))
	copy(sorted, owners)

	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].Bytes(), sorted[j].Bytes()) < 0
	})

	deduped := make([]common.Address, 0, len(sorted))
	for _, owner := range sorted {
		if n := len(deduped); n == 0 || deduped[n-1] != owner {
			deduped = append(deduped, owner)
		}
	}
	return deduped
}

// SortAndConcatenateDigests sorts 32-byte digests in ascending byte order and
// concatenates them. Same ordering contract as Assemble, applied to raw hash
// values rather than full signature entries.
func SortAndConcatenateDigests(digests [][32]byte) []byte {
	sorted := make([][32]byte, len(digests))
	copy(sorted, digests)

	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i][:], sorted[j][:]) < 0
	})

	out := make([]byte, 0, len(sorted)*32)
	for _, d := range sorted {
		out = append(out, d[:]...)
	}
	return out
}
