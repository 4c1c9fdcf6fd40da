package blockchain

import (
	"context"
	"encoding/binary"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"truthprevails/internal/domain/entity"
	"truthprevails/internal/domain/service"
	"truthprevails/pkg/errors"
	"truthprevails/pkg/hashing"
)

type memoryEntry struct {
	submitter common.Address
	timestamp int64
}

// MemoryRegistry is an in-process ledger with the same rules as the contract. Used in
// development and by tests.
type MemoryRegistry struct {
	mu      sync.RWMutex
	entries map[[32]byte]memoryEntry
	order   [][32]byte
	block   uint64
	now     func() time.Time
}

var _ service.HashRegistry = (*MemoryRegistry)(nil)

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		entries: make(map[[32]byte]memoryEntry),
		now:     time.Now,
	}
}

// WithClock replaces the timestamp source.
func (r *MemoryRegistry) WithClock(now func() time.Time) *MemoryRegistry {
	r.now = now
	return r
}

func (r *MemoryRegistry) Mode() string {
	return "memory"
}

func (r *MemoryRegistry) SubmitHash(ctx context.Context, hash, signerKey string) (*entity.SubmissionReceipt, error) {
	digest, err := hashing.ToBytes32(hash)
	if err != nil {
		return nil, errors.BadRequest("Invalid hash format", err)
	}
	if hashing.IsZero(digest) {
		return nil, errors.BadRequest("Hash cannot be empty", nil)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(signerKey, "0x"))
	if err != nil {
		return nil, errors.Internal("Invalid signer key", err)
	}
	submitter := crypto.PubkeyToAddress(key.PublicKey)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[digest]; ok {
		return nil, errors.HashAlreadyRegistered(hashing.FromBytes32(digest))
	}

	r.block++
	r.entries[digest] = memoryEntry{submitter: submitter, timestamp: r.now().Unix()}
	r.order = append(r.order, digest)

	var blockBytes [8]byte
	binary.BigEndian.PutUint64(blockBytes[:], r.block)
	txHash := crypto.Keccak256Hash(digest[:], submitter.Bytes(), blockBytes[:])

	return &entity.SubmissionReceipt{
		Hash:            hashing.FromBytes32(digest),
		TransactionHash: txHash.Hex(),
		BlockNumber:     r.block,
		Submitter:       submitter.Hex(),
	}, nil
}

func (r *MemoryRegistry) VerifyHash(ctx context.Context, hash string) (*entity.RegistryEntry, error) {
	digest, err := hashing.ToBytes32(hash)
	if err != nil {
		return nil, errors.BadRequest("Invalid hash format", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[digest]
	if !ok {
		return entity.AbsentEntry(hashing.FromBytes32(digest)), nil
	}

	return &entity.RegistryEntry{
		Hash:      hashing.FromBytes32(digest),
		Exists:    true,
		Submitter: e.submitter.Hex(),
		Timestamp: e.timestamp,
	}, nil
}

func (r *MemoryRegistry) AllHashes(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return toHex(r.order), nil
}

func (r *MemoryRegistry) HashesBySubmitter(ctx context.Context, submitter string) ([]string, error) {
	if !common.IsHexAddress(submitter) {
		return nil, errors.BadRequest("Invalid submitter address", nil)
	}
	address := common.HexToAddress(submitter)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched [][32]byte
	for _, h := range r.order {
		if r.entries[h].submitter == address {
			matched = append(matched, h)
		}
	}
	return toHex(matched), nil
}

func (r *MemoryRegistry) RecentHashes(ctx context.Context, n int) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if n <= 0 {
		return []string{}, nil
	}
	if n > len(r.order) {
		n = len(r.order)
	}
	return toHex(r.order[len(r.order)-n:]), nil
}

func (r *MemoryRegistry) TotalHashes(ctx context.Context) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return uint64(len(r.order)), nil
}

func toHex(hashes [][32]byte) []string {
	out := make([]string, 0, len(hashes))
	for _, h := range hashes {
		out = append(out, hashing.FromBytes32(h))
	}
	return out
}
