// Package app contains the application services: the sync coordinator that
// owns all record persistence, the connectivity monitor, and the per-feature
// services the CLI drives.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/core/record"
	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/ports/primary"
	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/ports/secondary"
)

// DefaultRemoteTimeout bounds every remote gateway call so a hung network
// call cannot stall a reconcile pass. A timeout counts as a failed request.
const DefaultRemoteTimeout = 15 * time.Second

// DefaultFetchLimit caps how many records a remote load pulls per collection.
const DefaultFetchLimit = 200

// IdentityFunc returns the current user id, or empty when no session exists.
type IdentityFunc func() string

// SyncCoordinatorConfig tunes the coordinator. Zero values use defaults.
type SyncCoordinatorConfig struct {
	RemoteTimeout time.Duration
	FetchLimit    int
}

// SyncCoordinator is the single persistence authority feature modules call.
// Writes land in the local store unconditionally; remote writes are
// best-effort and never fail the triggering operation. Reads prefer the
// remote store when it is reachable and mirror the result locally.
//
// Operations on the same collection are serialized; different collections
// proceed independently.
type SyncCoordinator struct {
	store    secondary.RecordStore
	remote   secondary.RemoteGateway
	identity IdentityFunc
	timeout  time.Duration
	limit    int
	log      zerolog.Logger

	mu          sync.Mutex
	collections map[string]*collectionState
	order       []string
}

// collectionState holds per-collection serialization and reconcile flags.
type collectionState struct {
	name string

	// opMu serializes local read-modify-write cycles for this collection.
	// It is never held across a remote call.
	opMu sync.Mutex

	// flightMu guards the reconcile coalescing flags.
	flightMu    sync.Mutex
	reconciling bool
	rerun       bool

	seed []map[string]any
}

// NewSyncCoordinator creates the coordinator with injected stores.
func NewSyncCoordinator(store secondary.RecordStore, remote secondary.RemoteGateway, identity IdentityFunc, cfg SyncCoordinatorConfig, log zerolog.Logger) *SyncCoordinator {
	if cfg.RemoteTimeout <= 0 {
		cfg.RemoteTimeout = DefaultRemoteTimeout
	}
	if cfg.FetchLimit <= 0 {
		cfg.FetchLimit = DefaultFetchLimit
	}
	return &SyncCoordinator{
		store:       store,
		remote:      remote,
		identity:    identity,
		timeout:     cfg.RemoteTimeout,
		limit:       cfg.FetchLimit,
		log:         log.With().Str("component", "sync").Logger(),
		collections: make(map[string]*collectionState),
	}
}

// RegisterCollection declares a collection and its first-run demo seed.
func (c *SyncCoordinator) RegisterCollection(collection string, seed []map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.collections[collection]
	if !ok {
		st = &collectionState{name: collection}
		c.collections[collection] = st
		c.order = append(c.order, collection)
	}
	st.seed = seed
}

// Collections returns the registered collection names in registration order.
func (c *SyncCoordinator) Collections() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Load returns the collection, remote-preferred with local fallback.
func (c *SyncCoordinator) Load(ctx context.Context, collection string) ([]*record.Record, error) {
	st := c.state(collection)
	st.opMu.Lock()
	defer st.opMu.Unlock()

	if c.remote.Available(ctx) {
		recs, err := c.fetchRemote(ctx, collection)
		if err == nil {
			if err := c.store.SaveAll(ctx, collection, recs); err != nil {
				return nil, persistErr("mirror remote "+collection, err)
			}
			return cloneAll(recs), nil
		}
		c.log.Warn().Err(err).Str("collection", collection).
			Msg("remote load failed, falling back to local store")
	}

	recs, err := c.store.Load(ctx, collection)
	if err != nil {
		return nil, persistErr("load "+collection, err)
	}

	if len(recs) == 0 && len(st.seed) > 0 {
		demo := c.buildSeed(st)
		if err := c.store.SaveAll(ctx, collection, demo); err != nil {
			return nil, persistErr("seed "+collection, err)
		}
		c.log.Info().Str("collection", collection).Int("records", len(demo)).
			Msg("pristine store, loaded demo seed")
		return cloneAll(demo), nil
	}

	// Records written before the envelope existed get it synthesized here.
	changed := false
	for _, r := range recs {
		if r.Normalize(c.userID()) {
			changed = true
		}
	}
	if changed {
		if err := c.store.SaveAll(ctx, collection, recs); err != nil {
			c.log.Warn().Err(err).Str("collection", collection).
				Msg("could not persist normalized legacy records")
		}
	}
	return cloneAll(recs), nil
}

// Create stamps the envelope, writes locally, then best-effort remotely.
func (c *SyncCoordinator) Create(ctx context.Context, collection string, payload map[string]any) (*record.Record, error) {
	st := c.state(collection)

	st.opMu.Lock()
	existing, err := c.store.Load(ctx, collection)
	if err != nil {
		st.opMu.Unlock()
		return nil, persistErr("load "+collection, err)
	}
	now := time.Now()
	id := record.NewID(now)
	if hasID(existing, id) {
		id = record.RederiveID(now)
		c.log.Debug().Str("collection", collection).Str("id", id).
			Msg("record id collision, re-derived")
	}
	ts := record.FormatTime(now)
	rec := &record.Record{
		ID:        id,
		UserID:    c.userID(),
		Source:    record.SourceLocal,
		CreatedAt: ts,
		UpdatedAt: ts,
		Payload:   record.CopyPayload(payload),
	}
	if rec.Payload == nil {
		rec.Payload = map[string]any{}
	}
	if err := c.store.Upsert(ctx, collection, rec); err != nil {
		st.opMu.Unlock()
		return nil, persistErr("create "+collection+"/"+id, err)
	}
	st.opMu.Unlock()

	if stamped := c.pushOne(ctx, st, rec.Clone()); stamped != nil {
		return stamped, nil
	}
	return rec.Clone(), nil
}

// Update shallow-merges patch into the payload and re-queues the record for
// sync by clearing SyncedAt.
func (c *SyncCoordinator) Update(ctx context.Context, collection, id string, patch map[string]any) (*record.Record, error) {
	st := c.state(collection)

	st.opMu.Lock()
	recs, err := c.store.Load(ctx, collection)
	if err != nil {
		st.opMu.Unlock()
		return nil, persistErr("load "+collection, err)
	}
	target := findID(recs, id)
	if target == nil {
		st.opMu.Unlock()
		return nil, fmt.Errorf("update %s/%s: %w", collection, id, record.ErrNotFound)
	}
	if target.Payload == nil {
		target.Payload = map[string]any{}
	}
	for k, v := range patch {
		target.Payload[k] = v
	}
	target.UpdatedAt = record.Now()
	target.SyncedAt = ""
	target.Source = record.SourceLocal
	if err := c.store.Upsert(ctx, collection, target); err != nil {
		st.opMu.Unlock()
		return nil, persistErr("update "+collection+"/"+id, err)
	}
	snap := target.Clone()
	st.opMu.Unlock()

	if stamped := c.pushOne(ctx, st, snap.Clone()); stamped != nil {
		return stamped, nil
	}
	return snap, nil
}

// Delete removes locally first so the caller sees the deletion immediately,
// then attempts a best-effort remote delete.
func (c *SyncCoordinator) Delete(ctx context.Context, collection, id string) error {
	st := c.state(collection)

	st.opMu.Lock()
	recs, err := c.store.Load(ctx, collection)
	if err != nil {
		st.opMu.Unlock()
		return persistErr("load "+collection, err)
	}
	if findID(recs, id) == nil {
		st.opMu.Unlock()
		return fmt.Errorf("delete %s/%s: %w", collection, id, record.ErrNotFound)
	}
	if err := c.store.Remove(ctx, collection, id); err != nil {
		st.opMu.Unlock()
		return persistErr("delete "+collection+"/"+id, err)
	}
	st.opMu.Unlock()

	if c.remote.Available(ctx) {
		rctx, cancel := context.WithTimeout(ctx, c.timeout)
		err := c.remote.Delete(rctx, collection, id)
		cancel()
		if err != nil {
			// Accepted gap: without the remote delete landing, the item can
			// resurface on a fetch from another device.
			c.log.Warn().Err(err).Str("collection", collection).Str("id", id).
				Msg("remote delete failed, local deletion stands")
		}
	}
	return nil
}

// Reconcile pushes every pending record to the remote store. At most one
// pass runs per collection; a request arriving mid-flight coalesces into a
// single follow-up pass.
func (c *SyncCoordinator) Reconcile(ctx context.Context, collection string) (primary.ReconcileResult, error) {
	st := c.state(collection)
	res := primary.ReconcileResult{Collection: collection}

	st.flightMu.Lock()
	if st.reconciling {
		st.rerun = true
		st.flightMu.Unlock()
		return res, nil
	}
	st.reconciling = true
	st.flightMu.Unlock()

	for {
		pass, err := c.reconcilePass(ctx, st)
		res.Pushed += pass.Pushed
		res.Skipped += pass.Skipped
		res.Failed += pass.Failed

		st.flightMu.Lock()
		if err == nil && st.rerun {
			st.rerun = false
			st.flightMu.Unlock()
			continue
		}
		st.reconciling = false
		st.rerun = false
		st.flightMu.Unlock()
		return res, err
	}
}

// ReconcileAll reconciles every registered collection sequentially. Invoked
// on each offline-to-online transition.
func (c *SyncCoordinator) ReconcileAll(ctx context.Context) {
	for _, collection := range c.Collections() {
		res, err := c.Reconcile(ctx, collection)
		if err != nil {
			c.log.Error().Err(err).Str("collection", collection).Msg("reconcile failed")
			continue
		}
		if res.Pushed > 0 || res.Failed > 0 || res.Skipped > 0 {
			c.log.Info().Str("collection", collection).
				Int("pushed", res.Pushed).Int("skipped", res.Skipped).Int("failed", res.Failed).
				Msg("reconcile pass complete")
		}
	}
}

func (c *SyncCoordinator) reconcilePass(ctx context.Context, st *collectionState) (primary.ReconcileResult, error) {
	res := primary.ReconcileResult{Collection: st.name}

	st.opMu.Lock()
	recs, err := c.store.Load(ctx, st.name)
	st.opMu.Unlock()
	if err != nil {
		return res, persistErr("load "+st.name, err)
	}

	// Snapshot pending records with their UpdatedAt at scan time. Demo seed
	// records never leave the device.
	var pending []*record.Record
	for _, r := range recs {
		if r.Source == record.SourceDemo {
			continue
		}
		if r.NeedsSync() {
			pending = append(pending, r.Clone())
		}
	}

	for i, snap := range pending {
		if !c.remote.Available(ctx) {
			res.Failed += len(pending) - i
			break
		}
		rctx, cancel := context.WithTimeout(ctx, c.timeout)
		err := c.remote.Upsert(rctx, st.name, snap)
		cancel()
		if err != nil {
			res.Failed++
			c.log.Warn().Err(err).Str("collection", st.name).Str("id", snap.ID).
				Msg("reconcile push failed, record left for next pass")
			continue
		}
		if c.stampSynced(ctx, st, snap.ID, snap.UpdatedAt) != nil {
			res.Pushed++
		} else {
			res.Skipped++
		}
	}
	return res, nil
}

// pushOne attempts one best-effort remote write for a freshly written record
// and returns the re-stamped record on success, nil otherwise.
func (c *SyncCoordinator) pushOne(ctx context.Context, st *collectionState, snap *record.Record) *record.Record {
	if !c.remote.Available(ctx) {
		return nil
	}
	rctx, cancel := context.WithTimeout(ctx, c.timeout)
	err := c.remote.Upsert(rctx, st.name, snap)
	cancel()
	if err != nil {
		c.log.Warn().Err(err).Str("collection", st.name).Str("id", snap.ID).
			Msg("remote write failed, record left for reconcile")
		return nil
	}
	return c.stampSynced(ctx, st, snap.ID, snap.UpdatedAt)
}

// stampSynced marks a record as confirmed remote, unless it was mutated
// after the pushed snapshot was taken; a newer local version must stay stale
// so the next pass re-pushes it.
func (c *SyncCoordinator) stampSynced(ctx context.Context, st *collectionState, id, snapshotUpdatedAt string) *record.Record {
	st.opMu.Lock()
	defer st.opMu.Unlock()

	recs, err := c.store.Load(ctx, st.name)
	if err != nil {
		c.log.Error().Err(err).Str("collection", st.name).Msg("could not reload for sync stamp")
		return nil
	}
	cur := findID(recs, id)
	if cur == nil {
		// Deleted while the push was in flight; the remote delete path owns it.
		return nil
	}
	if cur.UpdatedAt != snapshotUpdatedAt {
		return nil
	}
	cur.SyncedAt = record.Now()
	if err := c.store.Upsert(ctx, st.name, cur); err != nil {
		c.log.Error().Err(err).Str("collection", st.name).Str("id", id).
			Msg("could not persist sync stamp")
		return nil
	}
	return cur.Clone()
}

func (c *SyncCoordinator) fetchRemote(ctx context.Context, collection string) ([]*record.Record, error) {
	rctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	recs, err := c.remote.FetchRecent(rctx, collection, c.userID(), c.limit)
	if err != nil {
		return nil, err
	}
	for _, r := range recs {
		r.Source = record.SourceRemote
		r.Normalize(c.userID())
	}
	return recs, nil
}

func (c *SyncCoordinator) buildSeed(st *collectionState) []*record.Record {
	ts := record.Now()
	demo := make([]*record.Record, 0, len(st.seed))
	for i, payload := range st.seed {
		demo = append(demo, &record.Record{
			ID:        fmt.Sprintf("demo-%s-%03d", st.name, i+1),
			UserID:    c.userID(),
			Source:    record.SourceDemo,
			CreatedAt: ts,
			UpdatedAt: ts,
			Payload:   record.CopyPayload(payload),
		})
	}
	return demo
}

func (c *SyncCoordinator) state(collection string) *collectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.collections[collection]
	if !ok {
		st = &collectionState{name: collection}
		c.collections[collection] = st
		c.order = append(c.order, collection)
	}
	return st
}

func (c *SyncCoordinator) userID() string {
	if c.identity != nil {
		if id := c.identity(); id != "" {
			return id
		}
	}
	return record.AnonymousUser
}

func persistErr(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, record.ErrPersistenceFailed)
}

func hasID(recs []*record.Record, id string) bool {
	return findID(recs, id) != nil
}

func findID(recs []*record.Record, id string) *record.Record {
	for _, r := range recs {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func cloneAll(recs []*record.Record) []*record.Record {
	out := make([]*record.Record, len(recs))
	for i, r := range recs {
		out[i] = r.Clone()
	}
	return out
}
