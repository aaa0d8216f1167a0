package projector_test

import (
	"context"
	"errors"
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainraise/crowdfund-server/internal/domain"
	"github.com/chainraise/crowdfund-server/internal/logger"
	"github.com/chainraise/crowdfund-server/internal/mocks"
	"github.com/chainraise/crowdfund-server/internal/projector"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

func testCampaign(id uint64) *domain.Campaign {
	return &domain.Campaign{
		ID:             id,
		CreatorAddress: "0x1111111111111111111111111111111111111111",
		Title:          "Campaign",
		Description:    "Description",
		GoalWei:        big.NewInt(1000),
		RaisedWei:      big.NewInt(10),
		Deadline:       time.Unix(1900000000, 0),
	}
}

func TestSnapshot_EnumeratesFromOne(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mocks.NewMockCrowdfundClient(ctrl)
	ledger.EXPECT().CampaignCount(gomock.Any()).Return(uint64(3), nil)
	for id := uint64(1); id <= 3; id++ {
		ledger.EXPECT().CampaignAt(gomock.Any(), id).Return(testCampaign(id), nil)
	}

	snapshot, err := projector.New(ledger).Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot, 3)
	assert.Equal(t, uint64(1), snapshot[0].ID)
	assert.Equal(t, uint64(2), snapshot[1].ID)
	assert.Equal(t, uint64(3), snapshot[2].ID)
}

func TestSnapshot_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mocks.NewMockCrowdfundClient(ctrl)
	ledger.EXPECT().CampaignCount(gomock.Any()).Return(uint64(0), nil)

	snapshot, err := projector.New(ledger).Snapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snapshot)
}

func TestSnapshot_SkipsUnreadableCampaign(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mocks.NewMockCrowdfundClient(ctrl)
	ledger.EXPECT().CampaignCount(gomock.Any()).Return(uint64(3), nil)
	ledger.EXPECT().CampaignAt(gomock.Any(), uint64(1)).Return(testCampaign(1), nil)
	ledger.EXPECT().CampaignAt(gomock.Any(), uint64(2)).Return(nil, errors.New("decode failure"))
	ledger.EXPECT().CampaignAt(gomock.Any(), uint64(3)).Return(testCampaign(3), nil)

	snapshot, err := projector.New(ledger).Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot, 2)
	assert.Equal(t, uint64(1), snapshot[0].ID)
	assert.Equal(t, uint64(3), snapshot[1].ID)
}

func TestSnapshot_AllReadsFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mocks.NewMockCrowdfundClient(ctrl)
	ledger.EXPECT().CampaignCount(gomock.Any()).Return(uint64(2), nil)
	ledger.EXPECT().CampaignAt(gomock.Any(), gomock.Any()).Return(nil, errors.New("rpc timeout")).Times(2)

	_, err := projector.New(ledger).Snapshot(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLedgerUnavailable)
}

func TestSnapshot_CountFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mocks.NewMockCrowdfundClient(ctrl)
	ledger.EXPECT().CampaignCount(gomock.Any()).Return(uint64(0), domain.ErrLedgerUnavailable)

	_, err := projector.New(ledger).Snapshot(context.Background())
	assert.ErrorIs(t, err, domain.ErrLedgerUnavailable)
}

func TestSnapshot_CanceledContextAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())

	ledger := mocks.NewMockCrowdfundClient(ctrl)
	ledger.EXPECT().CampaignCount(gomock.Any()).Return(uint64(5), nil)
	ledger.EXPECT().CampaignAt(gomock.Any(), uint64(1)).DoAndReturn(
		func(ctx context.Context, id uint64) (*domain.Campaign, error) {
			cancel()
			return nil, ctx.Err()
		})

	_, err := projector.New(ledger).Snapshot(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
