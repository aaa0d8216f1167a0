package ethereum_test

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"sync"
	"testing"
	"time"

	goethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainraise/crowdfund-server/internal/adapter"
	"github.com/chainraise/crowdfund-server/internal/domain"
	"github.com/chainraise/crowdfund-server/internal/mocks"
	"github.com/chainraise/crowdfund-server/internal/providers/ethereum"
)

const (
	testContractAddress = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	// Throwaway key, the first default account of a local hardhat node
	testSignerKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
)

func newTestClient(t *testing.T, ethClient adapter.EthClient, clock adapter.Clock, signerKey string) ethereum.CrowdfundClient {
	client, err := ethereum.NewClient(ethereum.Config{
		ContractAddress: testContractAddress,
		SignerKeyHex:    signerKey,
	}, ethClient, clock)
	require.NoError(t, err)
	return client
}

// packCampaign encodes a campaigns(uint256) call result the way the contract
// would return it
func packCampaign(t *testing.T, creator common.Address, title, description string, goal, deadline, raised *big.Int) []byte {
	contractABI, err := abi.JSON(strings.NewReader(ethereum.CrowdfundABIJSON))
	require.NoError(t, err)

	out, err := contractABI.Methods["campaigns"].Outputs.Pack(creator, title, description, goal, deadline, raised)
	require.NoError(t, err)
	return out
}

func TestCampaignCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ethClient := mocks.NewMockEthClient(ctrl)
	ethClient.EXPECT().
		CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(common.LeftPadBytes(big.NewInt(5).Bytes(), 32), nil)

	client := newTestClient(t, ethClient, mocks.NewMockClock(ctrl), "")

	count, err := client.CampaignCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(5), count)
}

func TestCampaignCount_LedgerUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ethClient := mocks.NewMockEthClient(ctrl)
	ethClient.EXPECT().
		CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(nil, errors.New("connection refused"))

	client := newTestClient(t, ethClient, mocks.NewMockClock(ctrl), "")

	_, err := client.CampaignCount(context.Background())
	assert.ErrorIs(t, err, domain.ErrLedgerUnavailable)
}

func TestCampaignAt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	creator := common.HexToAddress("0x1111111111111111111111111111111111111111")
	goal := big.NewInt(2000000000000000000)
	deadline := big.NewInt(1900000000)
	raised := big.NewInt(500000000000000000)

	ethClient := mocks.NewMockEthClient(ctrl)
	ethClient.EXPECT().
		CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(packCampaign(t, creator, "Save the bees", "Pollinators need help", goal, deadline, raised), nil)

	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Unix(deadline.Int64(), int64(0)).Return(time.Unix(deadline.Int64(), 0))

	client := newTestClient(t, ethClient, clock, "")

	campaign, err := client.CampaignAt(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), campaign.ID)
	assert.Equal(t, creator.Hex(), campaign.CreatorAddress)
	assert.Equal(t, "Save the bees", campaign.Title)
	assert.Equal(t, "Pollinators need help", campaign.Description)
	assert.Zero(t, campaign.GoalWei.Cmp(goal))
	assert.Zero(t, campaign.RaisedWei.Cmp(raised))
	assert.Equal(t, time.Unix(deadline.Int64(), 0), campaign.Deadline)
}

func TestCampaignAt_NeverAssigned(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// The campaigns mapping returns a zero struct for unassigned ids
	ethClient := mocks.NewMockEthClient(ctrl)
	ethClient.EXPECT().
		CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(packCampaign(t, common.Address{}, "", "", big.NewInt(0), big.NewInt(0), big.NewInt(0)), nil)

	client := newTestClient(t, ethClient, mocks.NewMockClock(ctrl), "")

	_, err := client.CampaignAt(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrCampaignNotFound)
}

func TestSubmitDonate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	amount := big.NewInt(1000000000000000000)

	ethClient := mocks.NewMockEthClient(ctrl)
	ethClient.EXPECT().NetworkID(gomock.Any()).Return(big.NewInt(31337), nil)
	ethClient.EXPECT().PendingNonceAt(gomock.Any(), gomock.Any()).Return(uint64(7), nil)
	ethClient.EXPECT().SuggestGasPrice(gomock.Any()).Return(big.NewInt(1000000000), nil)
	ethClient.EXPECT().EstimateGas(gomock.Any(), gomock.Any()).Return(uint64(100000), nil)
	ethClient.EXPECT().
		SendTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, tx *types.Transaction) error {
			assert.Equal(t, uint64(7), tx.Nonce())
			assert.Equal(t, testContractAddress, tx.To().Hex())
			assert.Zero(t, tx.Value().Cmp(amount))
			// Estimate plus headroom
			assert.Equal(t, uint64(120000), tx.Gas())
			return nil
		})

	client := newTestClient(t, ethClient, mocks.NewMockClock(ctrl), testSignerKey)

	txHash, err := client.SubmitDonate(context.Background(), 1, amount)
	require.NoError(t, err)
	assert.NotEqual(t, common.Hash{}, txHash)
}

func TestSubmitDonate_ConcurrentSubmittersShareChainID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// The chain id is resolved once and cached for every submitter
	ethClient := mocks.NewMockEthClient(ctrl)
	ethClient.EXPECT().NetworkID(gomock.Any()).Return(big.NewInt(31337), nil).Times(1)
	ethClient.EXPECT().PendingNonceAt(gomock.Any(), gomock.Any()).Return(uint64(7), nil).Times(2)
	ethClient.EXPECT().SuggestGasPrice(gomock.Any()).Return(big.NewInt(1000000000), nil).Times(2)
	ethClient.EXPECT().EstimateGas(gomock.Any(), gomock.Any()).Return(uint64(100000), nil).Times(2)
	ethClient.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	client := newTestClient(t, ethClient, mocks.NewMockClock(ctrl), testSignerKey)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = client.SubmitDonate(context.Background(), 1, big.NewInt(1))
		}()
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
}

func TestSubmitDonate_NoSignerKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := newTestClient(t, mocks.NewMockEthClient(ctrl), mocks.NewMockClock(ctrl), "")

	_, err := client.SubmitDonate(context.Background(), 1, big.NewInt(1))
	assert.Error(t, err)
}

func TestAwaitCommit_Reverted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txHash := common.HexToHash("0xdeadbeef")

	ethClient := mocks.NewMockEthClient(ctrl)
	ethClient.EXPECT().
		TransactionReceipt(gomock.Any(), txHash).
		Return(&types.Receipt{Status: types.ReceiptStatusFailed}, nil)

	client := newTestClient(t, ethClient, mocks.NewMockClock(ctrl), "")

	err := client.AwaitCommit(context.Background(), txHash)
	assert.ErrorIs(t, err, domain.ErrTransactionReverted)
}

func TestAwaitCommit_RetriesUntilMined(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txHash := common.HexToHash("0xdeadbeef")

	ethClient := mocks.NewMockEthClient(ctrl)
	gomock.InOrder(
		ethClient.EXPECT().TransactionReceipt(gomock.Any(), txHash).Return(nil, goethereum.NotFound),
		ethClient.EXPECT().TransactionReceipt(gomock.Any(), txHash).Return(&types.Receipt{Status: types.ReceiptStatusSuccessful}, nil),
	)

	client := newTestClient(t, ethClient, mocks.NewMockClock(ctrl), "")

	err := client.AwaitCommit(context.Background(), txHash)
	assert.NoError(t, err)
}

func TestAwaitCommit_CanceledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txHash := common.HexToHash("0xdeadbeef")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ethClient := mocks.NewMockEthClient(ctrl)
	ethClient.EXPECT().TransactionReceipt(gomock.Any(), txHash).Return(nil, goethereum.NotFound).AnyTimes()

	client := newTestClient(t, ethClient, mocks.NewMockClock(ctrl), "")

	err := client.AwaitCommit(ctx, txHash)
	assert.Error(t, err)
}
