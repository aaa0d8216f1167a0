package ethereum

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	goethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/chainraise/crowdfund-server/internal/adapter"
	"github.com/chainraise/crowdfund-server/internal/domain"
)

// crowdfundABIJSON is the subset of the CrowdFund contract ABI this service
// uses. Campaign ids are assigned sequentially starting at 1; campaigns(0)
// is never populated.
const crowdfundABIJSON = `[
	{"inputs":[],"name":"campaignCount","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"","type":"uint256"}],"name":"campaigns","outputs":[{"name":"creator","type":"address"},{"name":"title","type":"string"},{"name":"description","type":"string"},{"name":"goal","type":"uint256"},{"name":"deadline","type":"uint256"},{"name":"amountCollected","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"_title","type":"string"},{"name":"_description","type":"string"},{"name":"_goal","type":"uint256"},{"name":"_durationInDays","type":"uint256"}],"name":"createCampaign","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"name":"_id","type":"uint256"}],"name":"fund","outputs":[],"stateMutability":"payable","type":"function"}
]`

// gas headroom applied on top of the node's estimate
const gasLimitMargin = 20 // percent

// CrowdfundClient wraps the CrowdFund contract behind retryable RPC
// semantics. It is the only component that talks to the ledger.
//
//go:generate mockgen -source=client.go -destination=../../mocks/crowdfund_client.go -package=mocks -mock_names=CrowdfundClient=MockCrowdfundClient
type CrowdfundClient interface {
	// CampaignCount returns the number of campaigns created so far
	CampaignCount(ctx context.Context) (uint64, error)

	// CampaignAt reads a single campaign by its ledger-assigned id.
	// Returns domain.ErrCampaignNotFound for ids that were never assigned.
	CampaignAt(ctx context.Context, id uint64) (*domain.Campaign, error)

	// SubmitCreate submits a campaign creation transaction and returns its hash
	SubmitCreate(ctx context.Context, title, description string, goalWei *big.Int, durationDays uint64) (common.Hash, error)

	// SubmitDonate submits a funding transaction carrying amountWei as value
	SubmitDonate(ctx context.Context, id uint64, amountWei *big.Int) (common.Hash, error)

	// AwaitCommit blocks until the transaction is mined. Returns
	// domain.ErrTransactionReverted if it was mined but reverted.
	AwaitCommit(ctx context.Context, txHash common.Hash) error

	// Close closes the underlying connection
	Close()
}

type crowdfundClient struct {
	client          adapter.EthClient
	clock           adapter.Clock
	contractAddress common.Address
	contractABI     abi.ABI
	signerKey       *ecdsa.PrivateKey
	signerAddress   common.Address

	chainIDMu sync.Mutex
	chainID   *big.Int
}

// Config holds the contract client configuration
type Config struct {
	ContractAddress string
	// SignerKeyHex is the backend signer's private key in hex (no 0x prefix
	// required). Write operations fail without it; reads work regardless.
	SignerKeyHex string
}

// NewClient creates a new CrowdFund contract client
func NewClient(cfg Config, client adapter.EthClient, clock adapter.Clock) (CrowdfundClient, error) {
	contractABI, err := abi.JSON(strings.NewReader(crowdfundABIJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract ABI: %w", err)
	}

	c := &crowdfundClient{
		client:          client,
		clock:           clock,
		contractAddress: common.HexToAddress(cfg.ContractAddress),
		contractABI:     contractABI,
	}

	if cfg.SignerKeyHex != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.SignerKeyHex, "0x"))
		if err != nil {
			return nil, fmt.Errorf("failed to parse signer key: %w", err)
		}
		c.signerKey = key
		c.signerAddress = crypto.PubkeyToAddress(key.PublicKey)
	}

	return c, nil
}

// CampaignCount returns the number of campaigns created so far
func (c *crowdfundClient) CampaignCount(ctx context.Context) (uint64, error) {
	data, err := c.contractABI.Pack("campaignCount")
	if err != nil {
		return 0, fmt.Errorf("failed to pack data: %w", err)
	}

	result, err := c.client.CallContract(ctx, goethereum.CallMsg{
		To:   &c.contractAddress,
		Data: data,
	}, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", domain.ErrLedgerUnavailable, err)
	}

	var count *big.Int
	if err := c.contractABI.UnpackIntoInterface(&count, "campaignCount", result); err != nil {
		return 0, fmt.Errorf("failed to unpack result: %w", err)
	}

	return count.Uint64(), nil
}

// CampaignAt reads a single campaign by its ledger-assigned id
func (c *crowdfundClient) CampaignAt(ctx context.Context, id uint64) (*domain.Campaign, error) {
	data, err := c.contractABI.Pack("campaigns", new(big.Int).SetUint64(id))
	if err != nil {
		return nil, fmt.Errorf("failed to pack data: %w", err)
	}

	result, err := c.client.CallContract(ctx, goethereum.CallMsg{
		To:   &c.contractAddress,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call contract: %w", err)
	}

	values, err := c.contractABI.Unpack("campaigns", result)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack result: %w", err)
	}
	if len(values) != 6 {
		return nil, fmt.Errorf("unexpected campaigns tuple size: %d", len(values))
	}

	creator, ok := values[0].(common.Address)
	if !ok {
		return nil, fmt.Errorf("unexpected creator type %T", values[0])
	}
	// The campaigns mapping returns a zero struct for ids that were never
	// assigned, not an error
	if creator == (common.Address{}) {
		return nil, domain.ErrCampaignNotFound
	}

	title, _ := values[1].(string)
	description, _ := values[2].(string)
	goal, ok := values[3].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected goal type %T", values[3])
	}
	deadline, ok := values[4].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected deadline type %T", values[4])
	}
	raised, ok := values[5].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected amountCollected type %T", values[5])
	}

	return &domain.Campaign{
		ID:             id,
		CreatorAddress: creator.Hex(),
		Title:          title,
		Description:    description,
		GoalWei:        goal,
		RaisedWei:      raised,
		Deadline:       c.clock.Unix(deadline.Int64(), 0),
	}, nil
}

// SubmitCreate submits a campaign creation transaction
func (c *crowdfundClient) SubmitCreate(ctx context.Context, title, description string, goalWei *big.Int, durationDays uint64) (common.Hash, error) {
	data, err := c.contractABI.Pack("createCampaign", title, description, goalWei, new(big.Int).SetUint64(durationDays))
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to pack data: %w", err)
	}

	return c.submit(ctx, data, nil)
}

// SubmitDonate submits a funding transaction carrying amountWei as value
func (c *crowdfundClient) SubmitDonate(ctx context.Context, id uint64, amountWei *big.Int) (common.Hash, error) {
	data, err := c.contractABI.Pack("fund", new(big.Int).SetUint64(id))
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to pack data: %w", err)
	}

	return c.submit(ctx, data, amountWei)
}

// submit signs and broadcasts a contract transaction
func (c *crowdfundClient) submit(ctx context.Context, data []byte, value *big.Int) (common.Hash, error) {
	if c.signerKey == nil {
		return common.Hash{}, fmt.Errorf("no signer key configured")
	}

	chainID, err := c.resolveChainID(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: %s", domain.ErrLedgerUnavailable, err)
	}

	nonce, err := c.client.PendingNonceAt(ctx, c.signerAddress)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to get gas price: %w", err)
	}

	gasLimit, err := c.client.EstimateGas(ctx, goethereum.CallMsg{
		From:  c.signerAddress,
		To:    &c.contractAddress,
		Value: value,
		Data:  data,
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to estimate gas: %w", err)
	}
	gasLimit += gasLimit * gasLimitMargin / 100

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &c.contractAddress,
		Value:    value,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})

	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), c.signerKey)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := c.client.SendTransaction(ctx, signedTx); err != nil {
		return common.Hash{}, fmt.Errorf("failed to send transaction: %w", err)
	}

	return signedTx.Hash(), nil
}

// resolveChainID returns the chain id, resolving and caching it on first
// use. Safe under concurrent submitters; a failed resolution is retried by
// the next caller.
func (c *crowdfundClient) resolveChainID(ctx context.Context) (*big.Int, error) {
	c.chainIDMu.Lock()
	defer c.chainIDMu.Unlock()

	if c.chainID == nil {
		chainID, err := c.client.NetworkID(ctx)
		if err != nil {
			return nil, err
		}
		c.chainID = chainID
	}

	return c.chainID, nil
}

// AwaitCommit blocks until the transaction is mined, polling for the receipt
// with exponential backoff
func (c *crowdfundClient) AwaitCommit(ctx context.Context, txHash common.Hash) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxInterval = 5 * time.Second
	policy.MaxElapsedTime = 2 * time.Minute

	return backoff.Retry(func() error {
		receipt, err := c.client.TransactionReceipt(ctx, txHash)
		if err != nil {
			if errors.Is(err, goethereum.NotFound) {
				return fmt.Errorf("transaction not mined yet: %s", txHash.Hex())
			}
			return err
		}

		if receipt.Status == types.ReceiptStatusFailed {
			return backoff.Permanent(domain.ErrTransactionReverted)
		}

		return nil
	}, backoff.WithContext(policy, ctx))
}

// Close closes the underlying connection
func (c *crowdfundClient) Close() {
	c.client.Close()
}
