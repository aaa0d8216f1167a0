package reconciler

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/chainraise/crowdfund-server/internal/domain"
	"github.com/chainraise/crowdfund-server/internal/logger"
	"github.com/chainraise/crowdfund-server/internal/projector"
	"github.com/chainraise/crowdfund-server/internal/store"
	"github.com/chainraise/crowdfund-server/internal/store/schema"
)

const (
	DEFAULT_WORKER_POOL_SIZE = 8
	DEFAULT_BATCH_TIMEOUT    = 2 * time.Minute
)

// Options controls a single reconciliation run.
type Options struct {
	// OwnerHint is the local user to attribute unindexed ledger campaigns
	// to. Empty means a passive run: orphaned records are still deleted, but
	// unindexed campaigns are only reported, never assigned to anyone.
	OwnerHint string
	// Reattribute additionally rewrites existing records for live campaigns
	// to OwnerHint. Only honored when OwnerHint is set; never a side effect
	// of a passive run.
	Reattribute bool
}

// Failure records a single per-record operation that failed within a batch.
type Failure struct {
	CampaignID uint64 `json:"campaign_id"`
	Op         string `json:"op"` // "create", "delete" or "reattribute"
	Err        string `json:"error"`
}

// workItem identifies one submitted operation so items the pool never ran
// can be reported instead of silently dropped
type workItem struct {
	id uint64
	op string
}

// Report summarizes what a reconciliation run did. Per-record failures are
// reported here rather than failing the run; the run itself only errors when
// no snapshot could be obtained or the index store is down.
type Report struct {
	SnapshotSize int       `json:"snapshot_size"`
	IndexSize    int       `json:"index_size"`
	Created      int       `json:"created"`
	Reattributed int       `json:"reattributed"`
	Deleted      int       `json:"deleted"`
	Unindexed    []uint64  `json:"unindexed,omitempty"`
	Failures     []Failure `json:"failures,omitempty"`
}

// Reconciler repairs the ownership index against a fresh ledger snapshot.
//
// Runs are idempotent and safe to invoke concurrently: correctness relies on
// the store's conditional insert and per-id delete being atomic per record,
// not on any run-wide lock, and no lock is held across ledger calls.
//
//go:generate mockgen -source=reconciler.go -destination=../mocks/reconciler.go -package=mocks -mock_names=Reconciler=MockReconciler
type Reconciler interface {
	// Reconcile diffs the current ledger snapshot against the ownership
	// index and applies the minimal set of creations and deletions
	Reconcile(ctx context.Context, opts Options) (*Report, error)
}

// Config holds reconciler configuration
type Config struct {
	WorkerPoolSize int
	BatchTimeout   time.Duration
}

type reconciler struct {
	config    Config
	projector projector.Projector
	store     store.Store
}

// New creates a new ownership reconciler
func New(cfg Config, proj projector.Projector, st store.Store) Reconciler {
	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = DEFAULT_WORKER_POOL_SIZE
	}
	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = DEFAULT_BATCH_TIMEOUT
	}
	return &reconciler{config: cfg, projector: proj, store: st}
}

func (r *reconciler) Reconcile(ctx context.Context, opts Options) (*Report, error) {
	if !r.store.IsAvailable(ctx) {
		return nil, domain.ErrIndexStoreUnavailable
	}

	snapshot, err := r.projector.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	records, err := r.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	presentIDs := snapshot.IDs()
	indexedIDs := make(map[uint64]struct{}, len(records))
	for _, rec := range records {
		indexedIDs[rec.CampaignID] = struct{}{}
	}

	var toCreate, toDelete []uint64
	for id := range presentIDs {
		if _, ok := indexedIDs[id]; !ok {
			toCreate = append(toCreate, id)
		}
	}
	for id := range indexedIDs {
		if _, ok := presentIDs[id]; !ok {
			toDelete = append(toDelete, id)
		}
	}
	sort.Slice(toCreate, func(i, j int) bool { return toCreate[i] < toCreate[j] })
	sort.Slice(toDelete, func(i, j int) bool { return toDelete[i] < toDelete[j] })

	var toReattribute []schema.OwnershipRecord
	if opts.OwnerHint != "" && opts.Reattribute {
		for _, rec := range records {
			if _, ok := presentIDs[rec.CampaignID]; ok && rec.OwnerUserID != opts.OwnerHint {
				toReattribute = append(toReattribute, rec)
			}
		}
	}

	report := &Report{
		SnapshotSize: len(snapshot),
		IndexSize:    len(records),
	}

	// Without an owner hint there is nobody to attribute new records to;
	// unknown ownership must never be assigned to an arbitrary user
	if opts.OwnerHint == "" {
		report.Unindexed = toCreate
		toCreate = nil
	}

	// One deadline bounds the whole apply batch; each record is its own
	// work item so one failure never blocks the others
	applyCtx, cancel := context.WithTimeout(ctx, r.config.BatchTimeout)
	defer cancel()

	pool := pond.NewPool(r.config.WorkerPoolSize, pond.WithContext(applyCtx))

	var created, reattributed, deleted atomic.Int64
	var mu sync.Mutex
	pending := make(map[workItem]struct{})
	addFailure := func(id uint64, op string, err error) {
		mu.Lock()
		report.Failures = append(report.Failures, Failure{CampaignID: id, Op: op, Err: err.Error()})
		mu.Unlock()
	}
	enqueue := func(it workItem) {
		mu.Lock()
		pending[it] = struct{}{}
		mu.Unlock()
	}
	markRan := func(it workItem) {
		mu.Lock()
		delete(pending, it)
		mu.Unlock()
	}

	for _, id := range toCreate {
		campaign := snapshot.ByID(id)
		item := workItem{id: id, op: "create"}
		enqueue(item)
		pool.Submit(func() {
			defer markRan(item)
			record := &schema.OwnershipRecord{
				CampaignID:        campaign.ID,
				OwnerUserID:       opts.OwnerHint,
				CachedTitle:       campaign.Title,
				CachedDescription: campaign.Description,
				CachedGoalWei:     campaign.GoalWei.String(),
				CachedRaisedWei:   campaign.RaisedWei.String(),
				TransactionRef:    domain.TransactionRefBackfilled,
			}
			inserted, err := r.store.CreateOwnershipIfAbsent(applyCtx, record)
			if err != nil {
				addFailure(campaign.ID, "create", err)
				return
			}
			// Not inserted means a concurrent run got there first; the
			// invariant (one record per campaign) holds either way
			if inserted {
				created.Add(1)
			}
		})
	}

	for _, rec := range toReattribute {
		item := workItem{id: rec.CampaignID, op: "reattribute"}
		enqueue(item)
		pool.Submit(func() {
			defer markRan(item)
			campaign := snapshot.ByID(rec.CampaignID)
			record := &schema.OwnershipRecord{
				CampaignID:        rec.CampaignID,
				OwnerUserID:       opts.OwnerHint,
				CachedTitle:       campaign.Title,
				CachedDescription: campaign.Description,
				CachedGoalWei:     campaign.GoalWei.String(),
				CachedRaisedWei:   campaign.RaisedWei.String(),
				TransactionRef:    rec.TransactionRef,
			}
			if err := r.store.UpsertOwnership(applyCtx, record); err != nil {
				addFailure(rec.CampaignID, "reattribute", err)
				return
			}
			reattributed.Add(1)
		})
	}

	for _, id := range toDelete {
		item := workItem{id: id, op: "delete"}
		enqueue(item)
		pool.Submit(func() {
			defer markRan(item)
			n, err := r.store.DeleteByCampaignIDs(applyCtx, []uint64{id})
			if err != nil {
				addFailure(id, "delete", err)
				return
			}
			deleted.Add(n)
		})
	}

	pool.StopAndWait()

	// Items still pending were discarded by the pool when the batch deadline
	// fired; report them rather than under-counting
	for it := range pending {
		report.Failures = append(report.Failures, Failure{
			CampaignID: it.id,
			Op:         it.op,
			Err:        "not executed before batch deadline",
		})
	}

	report.Created = int(created.Load())
	report.Reattributed = int(reattributed.Load())
	report.Deleted = int(deleted.Load())

	logger.InfoCtx(ctx, "Reconciliation run finished",
		zap.Int("snapshot_size", report.SnapshotSize),
		zap.Int("index_size", report.IndexSize),
		zap.Int("created", report.Created),
		zap.Int("reattributed", report.Reattributed),
		zap.Int("deleted", report.Deleted),
		zap.Int("unindexed", len(report.Unindexed)),
		zap.Int("failures", len(report.Failures)),
	)

	return report, nil
}
