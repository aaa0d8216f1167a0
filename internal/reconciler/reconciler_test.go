package reconciler_test

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
	"github.com/chainraise/crowdfund-server/internal/reconciler"
	"github.com/chainraise/crowdfund-server/internal/store/schema"
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

// testReconcilerMocks contains all the mocks needed for testing the reconciler
type testReconcilerMocks struct {
	ctrl       *gomock.Controller
	projector  *mocks.MockProjector
	store      *mocks.MockStore
	reconciler reconciler.Reconciler
}

// setupTestReconciler creates all the mocks and reconciler for testing
func setupTestReconciler(t *testing.T) *testReconcilerMocks {
	ctrl := gomock.NewController(t)

	tm := &testReconcilerMocks{
		ctrl:      ctrl,
		projector: mocks.NewMockProjector(ctrl),
		store:     mocks.NewMockStore(ctrl),
	}

	tm.reconciler = reconciler.New(reconciler.Config{
		WorkerPoolSize: 2,
		BatchTimeout:   time.Minute,
	}, tm.projector, tm.store)

	return tm
}

func tearDownTestReconciler(mocks *testReconcilerMocks) {
	mocks.ctrl.Finish()
}

func campaign(id uint64) domain.Campaign {
	return domain.Campaign{
		ID:             id,
		CreatorAddress: "0x1111111111111111111111111111111111111111",
		Title:          "Campaign",
		Description:    "Description",
		GoalWei:        big.NewInt(1000),
		RaisedWei:      big.NewInt(10),
		Deadline:       time.Unix(1900000000, 0),
	}
}

func record(campaignID uint64, owner string) schema.OwnershipRecord {
	return schema.OwnershipRecord{
		CampaignID:      campaignID,
		OwnerUserID:     owner,
		CachedGoalWei:   "1000",
		CachedRaisedWei: "10",
		TransactionRef:  "0xabc",
	}
}

func TestReconcile_IndexStoreUnavailable(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tearDownTestReconciler(tm)

	tm.store.EXPECT().IsAvailable(gomock.Any()).Return(false)

	_, err := tm.reconciler.Reconcile(context.Background(), reconciler.Options{})
	assert.ErrorIs(t, err, domain.ErrIndexStoreUnavailable)
}

func TestReconcile_CreatesMissingRecordsWithOwnerHint(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tearDownTestReconciler(tm)

	tm.store.EXPECT().IsAvailable(gomock.Any()).Return(true)
	tm.projector.EXPECT().Snapshot(gomock.Any()).Return(domain.Snapshot{campaign(1), campaign(2)}, nil)
	tm.store.EXPECT().ListAll(gomock.Any()).Return([]schema.OwnershipRecord{record(1, "user-1")}, nil)

	tm.store.EXPECT().
		CreateOwnershipIfAbsent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, rec *schema.OwnershipRecord) (bool, error) {
			assert.Equal(t, uint64(2), rec.CampaignID)
			assert.Equal(t, "user-1", rec.OwnerUserID)
			assert.Equal(t, domain.TransactionRefBackfilled, rec.TransactionRef)
			assert.Equal(t, "1000", rec.CachedGoalWei)
			return true, nil
		})

	report, err := tm.reconciler.Reconcile(context.Background(), reconciler.Options{OwnerHint: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, 2, report.SnapshotSize)
	assert.Equal(t, 1, report.IndexSize)
	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 0, report.Deleted)
	assert.Empty(t, report.Failures)
}

func TestReconcile_PassiveRunNeverAssignsOwnership(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tearDownTestReconciler(tm)

	tm.store.EXPECT().IsAvailable(gomock.Any()).Return(true)
	tm.projector.EXPECT().Snapshot(gomock.Any()).Return(domain.Snapshot{campaign(1), campaign(2)}, nil)
	// Record 3 is orphaned: its campaign no longer exists on the ledger
	tm.store.EXPECT().ListAll(gomock.Any()).Return([]schema.OwnershipRecord{
		record(1, "user-1"),
		record(3, "user-2"),
	}, nil)

	tm.store.EXPECT().DeleteByCampaignIDs(gomock.Any(), []uint64{3}).Return(int64(1), nil)

	report, err := tm.reconciler.Reconcile(context.Background(), reconciler.Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Created)
	assert.Equal(t, 1, report.Deleted)
	assert.Equal(t, []uint64{2}, report.Unindexed)
}

func TestReconcile_Idempotent(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tearDownTestReconciler(tm)

	tm.store.EXPECT().IsAvailable(gomock.Any()).Return(true).Times(2)
	tm.projector.EXPECT().Snapshot(gomock.Any()).Return(domain.Snapshot{campaign(1)}, nil).Times(2)
	tm.store.EXPECT().ListAll(gomock.Any()).Return([]schema.OwnershipRecord{record(1, "user-1")}, nil).Times(2)

	// A converged index needs no mutations, however often reconciliation runs
	for range 2 {
		report, err := tm.reconciler.Reconcile(context.Background(), reconciler.Options{OwnerHint: "user-1"})
		require.NoError(t, err)
		assert.Equal(t, 0, report.Created)
		assert.Equal(t, 0, report.Deleted)
		assert.Empty(t, report.Unindexed)
		assert.Empty(t, report.Failures)
	}
}

func TestReconcile_PartialFailureIsolation(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tearDownTestReconciler(tm)

	tm.store.EXPECT().IsAvailable(gomock.Any()).Return(true)
	tm.projector.EXPECT().Snapshot(gomock.Any()).Return(domain.Snapshot{campaign(1), campaign(2), campaign(3)}, nil)
	tm.store.EXPECT().ListAll(gomock.Any()).Return(nil, nil)

	tm.store.EXPECT().
		CreateOwnershipIfAbsent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, rec *schema.OwnershipRecord) (bool, error) {
			if rec.CampaignID == 2 {
				return false, errors.New("deadlock detected")
			}
			return true, nil
		}).
		Times(3)

	report, err := tm.reconciler.Reconcile(context.Background(), reconciler.Options{OwnerHint: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Created)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, uint64(2), report.Failures[0].CampaignID)
	assert.Equal(t, "create", report.Failures[0].Op)
}

func TestReconcile_ConcurrentInsertNotDoubleCounted(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tearDownTestReconciler(tm)

	tm.store.EXPECT().IsAvailable(gomock.Any()).Return(true)
	tm.projector.EXPECT().Snapshot(gomock.Any()).Return(domain.Snapshot{campaign(1)}, nil)
	tm.store.EXPECT().ListAll(gomock.Any()).Return(nil, nil)

	// Another run inserted the record between diff and apply
	tm.store.EXPECT().CreateOwnershipIfAbsent(gomock.Any(), gomock.Any()).Return(false, nil)

	report, err := tm.reconciler.Reconcile(context.Background(), reconciler.Options{OwnerHint: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Created)
	assert.Empty(t, report.Failures)
}

func TestReconcile_ReattributesOnRequest(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tearDownTestReconciler(tm)

	tm.store.EXPECT().IsAvailable(gomock.Any()).Return(true)
	tm.projector.EXPECT().Snapshot(gomock.Any()).Return(domain.Snapshot{campaign(1)}, nil)
	tm.store.EXPECT().ListAll(gomock.Any()).Return([]schema.OwnershipRecord{record(1, "user-1")}, nil)

	tm.store.EXPECT().
		UpsertOwnership(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, rec *schema.OwnershipRecord) error {
			assert.Equal(t, uint64(1), rec.CampaignID)
			assert.Equal(t, "user-2", rec.OwnerUserID)
			// Reattribution keeps the original transaction reference
			assert.Equal(t, "0xabc", rec.TransactionRef)
			return nil
		})

	report, err := tm.reconciler.Reconcile(context.Background(), reconciler.Options{
		OwnerHint:   "user-2",
		Reattribute: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Reattributed)
}

func TestReconcile_BatchDeadlineReportsUnexecutedWork(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	projectorMock := mocks.NewMockProjector(ctrl)
	storeMock := mocks.NewMockStore(ctrl)

	// A single worker and a short deadline: the first create blocks until the
	// deadline fires, the second never leaves the queue
	rec := reconciler.New(reconciler.Config{
		WorkerPoolSize: 1,
		BatchTimeout:   50 * time.Millisecond,
	}, projectorMock, storeMock)

	storeMock.EXPECT().IsAvailable(gomock.Any()).Return(true)
	projectorMock.EXPECT().Snapshot(gomock.Any()).Return(domain.Snapshot{campaign(1), campaign(2)}, nil)
	storeMock.EXPECT().ListAll(gomock.Any()).Return(nil, nil)

	storeMock.EXPECT().
		CreateOwnershipIfAbsent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, r *schema.OwnershipRecord) (bool, error) {
			<-ctx.Done()
			return false, ctx.Err()
		}).
		AnyTimes()

	report, err := rec.Reconcile(context.Background(), reconciler.Options{OwnerHint: "user-1"})
	require.NoError(t, err)

	// Every diffed record is accounted for, executed or not
	assert.Equal(t, 0, report.Created)
	require.Len(t, report.Failures, 2)
	failedIDs := map[uint64]bool{}
	for _, f := range report.Failures {
		failedIDs[f.CampaignID] = true
	}
	assert.True(t, failedIDs[1])
	assert.True(t, failedIDs[2])
}

func TestReconcile_SnapshotFailureAborts(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tearDownTestReconciler(tm)

	tm.store.EXPECT().IsAvailable(gomock.Any()).Return(true)
	tm.projector.EXPECT().Snapshot(gomock.Any()).Return(nil, domain.ErrLedgerUnavailable)

	_, err := tm.reconciler.Reconcile(context.Background(), reconciler.Options{})
	assert.ErrorIs(t, err, domain.ErrLedgerUnavailable)
}
