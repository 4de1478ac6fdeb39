// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/MKhiriev/go-eas-sync/internal/config"
	"github.com/MKhiriev/go-eas-sync/internal/logger"
	"github.com/MKhiriev/go-eas-sync/internal/store"
	"github.com/MKhiriev/go-eas-sync/models"
)

var tracer = otel.Tracer("github.com/MKhiriev/go-eas-sync/internal/service")

// SyncEngine runs the Sync command: it imports device changes, optionally
// waits for backend changes, then exports them collection by collection.
type SyncEngine struct {
	states  *StateManager
	devices DeviceService
	clock   clockwork.Clock
	cfg     config.Sync
	ping    config.Ping
	ignored map[models.ContentClass]bool
	sampler MemorySampler
	logger  *logger.Logger
}

func NewSyncEngine(states *StateManager, devices DeviceService, clock clockwork.Clock, cfg config.Sync, ping config.Ping, log *logger.Logger) *SyncEngine {
	return &SyncEngine{
		states:  states,
		devices: devices,
		clock:   clock,
		cfg:     cfg,
		ping:    ping,
		ignored: ignoredClasses(cfg.IgnoredClasses),
		sampler: HeapSampler,
		logger:  log,
	}
}

// SetMemorySampler replaces the heap sampler consulted by the budgets.
func (e *SyncEngine) SetMemorySampler(s MemorySampler) {
	e.sampler = s
}

func ignoredClasses(classes []string) map[models.ContentClass]bool {
	out := make(map[models.ContentClass]bool, len(classes))
	for _, c := range classes {
		out[models.ContentClass(c)] = true
	}
	return out
}

// syncCycle is the work done for one collection of one Sync request.
type syncCycle struct {
	request  models.SyncCollectionRequest
	params   *models.SyncParameters
	status   int
	syncKey  string
	skip     bool
	initial  bool
	counter  int64
	state    []byte
	actions  *models.ActionData
	results  []models.CommandResult
	changes  []models.Change
	more     bool
	stale    bool
	tracked  bool
}

func (cy *syncCycle) active() bool {
	return cy.status == models.SyncStatusSuccess && !cy.skip && !cy.stale
}

func (cy *syncCycle) response() models.SyncCollectionResponse {
	return models.SyncCollectionResponse{
		SyncKey:       cy.syncKey,
		CollectionID:  cy.request.CollectionID,
		Class:         cy.request.Class,
		Status:        cy.status,
		Responses:     cy.results,
		Changes:       cy.changes,
		MoreAvailable: cy.more,
	}
}

// Sync runs one Sync request and writes its response to w. Statuses that
// concern the whole request are written with w.WriteStatus; all others
// end up in the collection they belong to. A returned error is fatal; if w
// already started, the caller must still Close it.
func (e *SyncEngine) Sync(ctx context.Context, req *Request, sreq *models.SyncRequest, w SyncResponseWriter) error {
	ctx, span := tracer.Start(ctx, "Sync", trace.WithAttributes(
		attribute.Int("eas.collections", len(sreq.Collections)),
		attribute.Bool("eas.empty", sreq.Empty),
	))
	defer span.End()
	log := logger.FromContext(ctx)

	lifetime, limit, status := e.lifetime(sreq)
	if status != 0 {
		return w.WriteStatus(status, limit)
	}
	if n := e.cfg.MaxCollections; n > 0 && len(sreq.Collections) > n {
		return w.WriteStatus(models.SyncStatusTooManyCollections, n)
	}

	requests, err := e.resolveRequests(ctx, req, sreq)
	if st, ok := StatusOf(err); ok {
		log.Info().Err(err).Msg("sync request incomplete")
		return w.WriteStatus(st.Code, 0)
	}
	if err != nil {
		return err
	}

	coll := NewSyncCollections(e.states, req, e.clock, CollectionsOptions{
		StatTTL:           e.cfg.FolderStatTTL,
		DefaultWindowSize: e.cfg.DefaultWindowSize,
		MaxWindowSize:     e.cfg.MaxWindowSize,
		GlobalWindowSize:  e.cfg.GlobalWindowSize,
	})
	coll.SetGlobalWindowSize(sreq.WindowSize)
	coll.SetLifetime(lifetime)

	cycles := make([]*syncCycle, 0, len(requests))
	for _, cr := range requests {
		cy, err := e.prepare(ctx, req, coll, cr)
		if err != nil {
			return err
		}
		cycles = append(cycles, cy)
	}

	budget := NewBudget(e.clock, e.cfg.TimeBudget, e.cfg.MemoryLimit, e.sampler)
	for _, cy := range cycles {
		if !cy.active() || cy.initial || !cy.request.HasCommands() {
			continue
		}
		if err = e.importChanges(ctx, req, cy, budget); err != nil {
			return err
		}
	}

	if lifetime > 0 && e.idle(ctx, coll, cycles) {
		if err = e.wait(ctx, coll, cycles, lifetime); err != nil {
			return err
		}
	}

	for _, cy := range cycles {
		if cy.active() {
			if err = e.exportChanges(ctx, req, coll, cy, budget); err != nil {
				return err
			}
			if err = e.issueSyncKey(ctx, req, cy); err != nil {
				return err
			}
		}
		// a key reaches the device only after it is stored
		if cy.params != nil {
			if err = coll.SaveCollection(ctx, cy.params.FolderID); err != nil {
				return fmt.Errorf("error saving collection %s: %w", cy.params.FolderID, err)
			}
		}
		if err = w.WriteCollection(cy.response()); err != nil {
			return fmt.Errorf("error writing collection %s: %w", cy.request.CollectionID, err)
		}
	}

	req.Device.LastSyncCollections = trackedIDs(cycles)
	if err = e.devices.Save(ctx, req.Device); err != nil {
		return fmt.Errorf("error saving device: %w", err)
	}
	return w.Close()
}

// lifetime validates Wait (minutes) or HeartbeatInterval (seconds) against
// the heartbeat bounds. A non-zero status carries the violated limit in
// the unit the device used.
func (e *SyncEngine) lifetime(sreq *models.SyncRequest) (time.Duration, int, int) {
	var (
		d    time.Duration
		unit time.Duration
	)
	switch {
	case sreq.HasWait:
		d, unit = time.Duration(sreq.Wait)*time.Minute, time.Minute
	case sreq.HasHeartbeat:
		d, unit = time.Duration(sreq.HeartbeatInterval)*time.Second, time.Second
	default:
		return 0, 0, 0
	}
	if e.ping.MinLifetime > 0 && d < e.ping.MinLifetime {
		limit := int((e.ping.MinLifetime + unit - 1) / unit)
		return 0, limit, models.SyncStatusInvalidInterval
	}
	if e.ping.MaxLifetime > 0 && d > e.ping.MaxLifetime {
		return 0, int(e.ping.MaxLifetime / unit), models.SyncStatusInvalidInterval
	}
	return d, 0, 0
}

// resolveRequests expands an empty or partial request with the
// collections of the previous Sync.
func (e *SyncEngine) resolveRequests(ctx context.Context, req *Request, sreq *models.SyncRequest) ([]models.SyncCollectionRequest, error) {
	if !sreq.Empty && !sreq.Partial {
		return sreq.Collections, nil
	}
	last := req.Device.LastSyncCollections
	if len(last) == 0 {
		if sreq.Empty {
			return nil, globalStatus(models.SyncStatusIncompleteRequest, errors.New("no previous sync to repeat"))
		}
		return sreq.Collections, nil
	}

	sent := make(map[string]bool, len(sreq.Collections))
	for _, cr := range sreq.Collections {
		sent[cr.CollectionID] = true
	}
	out := append([]models.SyncCollectionRequest(nil), sreq.Collections...)
	for _, id := range last {
		if sent[id] {
			continue
		}
		p, err := e.states.Parameters(ctx, req.DeviceKey(), id)
		if errors.Is(err, store.ErrStateNotFound) || errors.Is(err, ErrInvalidState) {
			return nil, globalStatus(models.SyncStatusIncompleteRequest, err)
		}
		if err != nil {
			return nil, err
		}
		if p.HasNewSyncKey() {
			return nil, globalStatus(models.SyncStatusIncompleteRequest,
				fmt.Errorf("collection %s has an unconfirmed synckey", id))
		}
		out = append(out, models.SyncCollectionRequest{
			SyncKey:      p.SyncKey,
			CollectionID: id,
			WindowSize:   p.WindowSize,
		})
	}
	return out, nil
}

// prepare resolves the folder of cr, loads its parameters and applies the
// synckey the device sent.
func (e *SyncEngine) prepare(ctx context.Context, req *Request, coll *SyncCollections, cr models.SyncCollectionRequest) (*syncCycle, error) {
	log := logger.FromContext(ctx).With().Str("folder_id", cr.CollectionID).Logger()
	cy := &syncCycle{
		request: cr,
		status:  models.SyncStatusSuccess,
		syncKey: cr.SyncKey,
		actions: models.NewActionData(),
	}

	folder, ok := req.Device.Folders[cr.CollectionID]
	if !ok {
		log.Info().Msg("sync of a folder unknown to the hierarchy")
		cy.status = models.SyncStatusHierarchyChanged
		cy.skip = true
		return cy, nil
	}
	cy.tracked = true

	class := cr.Class
	if class == "" {
		class = folder.Type.Class()
	}
	if e.ignored[class] {
		cy.skip = true
		if cr.SyncKey == models.SyncKeyInitial {
			cy.syncKey = models.SyncKeyFromCounter(1)
		}
		return cy, nil
	}

	p, err := coll.LoadCollection(ctx, cr.CollectionID, false, true)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrStateNotFound):
		p = models.NewSyncParameters(folder.ID, folder.BackendID, class)
		if err = coll.AddCollection(p); err != nil {
			return nil, err
		}
	case errors.Is(err, ErrInvalidState), errors.Is(err, ErrWrongHierarchy):
		log.Warn().Err(err).Msg("collection state unusable, starting over")
		p = models.NewSyncParameters(folder.ID, folder.BackendID, class)
		if err = coll.AddCollection(p); err != nil {
			return nil, err
		}
		if err = e.states.ResetStates(ctx, req.DeviceKey(), folder.ID); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	cy.params = p
	p.ContentClass = class
	applyOptions(p, cr)

	getChanges := cr.GetChanges == nil || *cr.GetChanges
	coll.SetRequest(cr.CollectionID, CollectionRequest{GetChanges: getChanges, WindowSize: cr.WindowSize})

	switch {
	case cr.SyncKey == models.SyncKeyInitial:
		p.Reset()
		if err = e.states.ResetStates(ctx, req.DeviceKey(), p.FolderID); err != nil {
			return nil, err
		}
		cy.initial = true
		return cy, nil

	case p.HasNewSyncKey() && cr.SyncKey == p.NewSyncKey:
		p.ConfirmNewSyncKey()
		_, cy.counter, _ = models.ParseSyncKey(p.SyncKey)
		if err = e.states.CleanStates(ctx, req.DeviceKey(), p.FolderID, cy.counter); err != nil {
			return nil, err
		}

	case p.HasSyncKey() && cr.SyncKey == p.SyncKey:
		_, cy.counter, _ = models.ParseSyncKey(p.SyncKey)
		if p.HasNewSyncKey() {
			log.Info().Str("sync_key", p.SyncKey).Str("unconfirmed", p.NewSyncKey).
				Msg("device repeated its synckey, discarding the unconfirmed one")
			p.NewSyncKey = ""
			p.InvalidateFolderStat()
			cy.actions.FailState, err = e.states.FailState(ctx, req.DeviceKey(), p.FolderID, cy.counter)
			if err != nil {
				return nil, err
			}
		}

	default:
		log.Warn().Str("sent", cr.SyncKey).Str("sync_key", p.SyncKey).Str("new_sync_key", p.NewSyncKey).
			Msg("invalid synckey")
		return cy, e.invalidate(ctx, req, cy)
	}

	cy.state, err = e.states.SyncState(ctx, req.DeviceKey(), p.FolderID, cy.counter)
	if errors.Is(err, store.ErrStateNotFound) {
		log.Warn().Str("sync_key", p.SyncKey).Msg("state of synckey is missing")
		return cy, e.invalidate(ctx, req, cy)
	}
	if err != nil {
		return nil, err
	}
	return cy, nil
}

// invalidate answers the collection with InvalidSyncKey and resets it so
// that the device resynchronizes it from key 0.
func (e *SyncEngine) invalidate(ctx context.Context, req *Request, cy *syncCycle) error {
	cy.status = models.SyncStatusInvalidSyncKey
	cy.syncKey = models.SyncKeyInitial
	cy.results, cy.changes, cy.more = nil, nil, false
	cy.params.Reset()
	return e.states.ResetStates(ctx, req.DeviceKey(), cy.params.FolderID)
}

func applyOptions(p *models.SyncParameters, cr models.SyncCollectionRequest) {
	if cr.WindowSize > 0 {
		p.WindowSize = cr.WindowSize
	}
	if cr.DeletesAsMoves != nil {
		p.DeletesAsMoves = *cr.DeletesAsMoves
	}
	opts := cr.Options
	if opts == nil {
		return
	}
	if opts.HasFilterType {
		if p.FilterType != opts.FilterType {
			p.InvalidateFolderStat()
		}
		p.FilterType = opts.FilterType
	}
	if opts.HasConflict {
		p.Conflict = opts.Conflict
	}
	p.MIMESupport = opts.MIMESupport
	if opts.MIMETruncation > 0 {
		p.TruncationSize = opts.MIMETruncation
	}
	if len(opts.BodyPreferences) > 0 {
		p.BodyPreferences = opts.BodyPreferences
	}
}

// idle reports whether the request has nothing to answer yet, which is
// when a Sync with a lifetime starts waiting.
func (e *SyncEngine) idle(ctx context.Context, coll *SyncCollections, cycles []*syncCycle) bool {
	for _, cy := range cycles {
		if cy.status != models.SyncStatusSuccess {
			return false
		}
		if cy.skip {
			continue
		}
		if cy.initial || len(cy.results) > 0 || cy.actions.HasChanges() {
			return false
		}
		if !coll.Request(cy.params.FolderID).GetChanges {
			continue
		}
		n, err := coll.CountChanges(ctx, cy.params.FolderID)
		if err != nil || n > 0 {
			return false
		}
	}
	return coll.Len() > 0
}

// wait blocks until a collection changes or the lifetime ends. Collections
// saved meanwhile by another request are answered with InvalidSyncKey and
// left as that request saved them.
func (e *SyncEngine) wait(ctx context.Context, coll *SyncCollections, cycles []*syncCycle, lifetime time.Duration) error {
	log := logger.FromContext(ctx)
	if err := coll.Watch(ctx); err != nil {
		return err
	}

	changed, err := coll.CheckForChanges(ctx, lifetime, e.ping.PollInterval, true)
	switch {
	case errors.Is(err, ErrStaleCollections):
		stale, err := coll.StaleCollections(ctx)
		if err != nil {
			return err
		}
		for _, cy := range cycles {
			for _, id := range stale {
				if cy.params != nil && cy.params.FolderID == id {
					cy.stale = true
					cy.status = models.SyncStatusInvalidSyncKey
					cy.syncKey = models.SyncKeyInitial
				}
			}
		}
		return nil
	case errors.Is(err, ErrObsoleteConnection):
		log.Info().Msg("change notifications ended, answering now")
		return nil
	case err != nil:
		return err
	}
	log.Debug().Bool("changed", changed).Msg("sync wait finished")
	return nil
}

func trackedIDs(cycles []*syncCycle) []string {
	ids := make([]string, 0, len(cycles))
	for _, cy := range cycles {
		if cy.tracked {
			ids = append(ids, cy.request.CollectionID)
		}
	}
	return ids
}
