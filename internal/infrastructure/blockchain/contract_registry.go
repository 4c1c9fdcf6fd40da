package blockchain

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"truthprevails/internal/domain/entity"
	"truthprevails/internal/domain/service"
	"truthprevails/pkg/errors"
	"truthprevails/pkg/hashing"
	"truthprevails/pkg/logger"
)

// ContractRegistry talks to a deployed HashRegistry contract over JSON-RPC.
// Every RPC is bounded by timeout.
type ContractRegistry struct {
	client   *ethclient.Client
	contract *bind.BoundContract
	address  common.Address
	chainID  *big.Int
	timeout  time.Duration
}

var _ service.HashRegistry = (*ContractRegistry)(nil)

func NewContractRegistry(ctx context.Context, rpcURL, contractAddress string, timeout time.Duration) (*ContractRegistry, error) {
	if !common.IsHexAddress(contractAddress) {
		return nil, fmt.Errorf("invalid contract address: %q", contractAddress)
	}

	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := ethclient.DialContext(dialCtx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to blockchain rpc: %v", err)
	}

	chainID, err := client.ChainID(dialCtx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to read chain id: %v", err)
	}

	parsed, err := abi.JSON(strings.NewReader(HashRegistryABI))
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to parse registry abi: %v", err)
	}

	address := common.HexToAddress(contractAddress)
	logger.Info("Hash registry bound at %s on chain %s", address.Hex(), chainID.String())

	return &ContractRegistry{
		client:   client,
		contract: bind.NewBoundContract(address, parsed, client, client, client),
		address:  address,
		chainID:  chainID,
		timeout:  timeout,
	}, nil
}

func (r *ContractRegistry) Mode() string {
	return "contract"
}

func (r *ContractRegistry) SubmitHash(ctx context.Context, hash, signerKey string) (*entity.SubmissionReceipt, error) {
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

	existing, err := r.VerifyHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if existing.Exists {
		return nil, errors.HashAlreadyRegistered(existing.Hash)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts, err := bind.NewKeyedTransactorWithChainID(key, r.chainID)
	if err != nil {
		return nil, errors.Internal("Failed to create transactor", err)
	}
	opts.Context = ctx

	tx, err := r.contract.Transact(opts, "submitHash", digest)
	if err != nil {
		if strings.Contains(err.Error(), "Hash already exists") {
			return nil, errors.HashAlreadyRegistered(hashing.FromBytes32(digest))
		}
		return nil, errors.Internal("Failed to submit hash to blockchain", err)
	}
	logger.Debug("Registry submission %s sent from %s", tx.Hash().Hex(), opts.From.Hex())

	receipt, err := bind.WaitMined(ctx, r.client, tx)
	if err != nil {
		return nil, errors.Internal("Failed waiting for registry transaction", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, errors.Internal("Registry transaction reverted", fmt.Errorf("tx %s reverted", tx.Hash().Hex()))
	}

	return &entity.SubmissionReceipt{
		Hash:            hashing.FromBytes32(digest),
		TransactionHash: tx.Hash().Hex(),
		BlockNumber:     receipt.BlockNumber.Uint64(),
		Submitter:       opts.From.Hex(),
	}, nil
}

func (r *ContractRegistry) VerifyHash(ctx context.Context, hash string) (*entity.RegistryEntry, error) {
	digest, err := hashing.ToBytes32(hash)
	if err != nil {
		return nil, errors.BadRequest("Invalid hash format", err)
	}
	normalized := hashing.FromBytes32(digest)

	out, err := r.call(ctx, "verifyHash", digest)
	if err != nil {
		return nil, errors.Internal("Failed to query blockchain registry", err)
	}

	exists := *abi.ConvertType(out[0], new(bool)).(*bool)
	if !exists {
		return entity.AbsentEntry(normalized), nil
	}
	submitter := *abi.ConvertType(out[1], new(common.Address)).(*common.Address)
	timestamp := *abi.ConvertType(out[2], new(*big.Int)).(**big.Int)

	return &entity.RegistryEntry{
		Hash:      normalized,
		Exists:    true,
		Submitter: submitter.Hex(),
		Timestamp: timestamp.Int64(),
	}, nil
}

func (r *ContractRegistry) AllHashes(ctx context.Context) ([]string, error) {
	return r.hashList(ctx, "getAllHashes")
}

func (r *ContractRegistry) HashesBySubmitter(ctx context.Context, submitter string) ([]string, error) {
	if !common.IsHexAddress(submitter) {
		return nil, errors.BadRequest("Invalid submitter address", nil)
	}
	return r.hashList(ctx, "getHashesBySubmitter", common.HexToAddress(submitter))
}

func (r *ContractRegistry) RecentHashes(ctx context.Context, n int) ([]string, error) {
	if n <= 0 {
		return []string{}, nil
	}
	return r.hashList(ctx, "getRecentHashes", big.NewInt(int64(n)))
}

func (r *ContractRegistry) TotalHashes(ctx context.Context) (uint64, error) {
	out, err := r.call(ctx, "getTotalHashes")
	if err != nil {
		return 0, errors.Internal("Failed to query blockchain registry", err)
	}
	total := *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)
	return total.Uint64(), nil
}

func (r *ContractRegistry) Close() {
	r.client.Close()
}

func (r *ContractRegistry) hashList(ctx context.Context, method string, args ...interface{}) ([]string, error) {
	out, err := r.call(ctx, method, args...)
	if err != nil {
		return nil, errors.Internal("Failed to query blockchain registry", err)
	}

	raw := *abi.ConvertType(out[0], new([][32]byte)).(*[][32]byte)
	hashes := make([]string, 0, len(raw))
	for _, h := range raw {
		hashes = append(hashes, hashing.FromBytes32(h))
	}
	return hashes, nil
}

func (r *ContractRegistry) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var out []interface{}
	if err := r.contract.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return nil, err
	}
	return out, nil
}
