// Package game drives one player's exploration session: movement and zoom,
// the treasure lifecycle, score accrual, and durable progress. The engine
// is presentation-free; front ends feed it intents and rasterize the frames
// it composes.
package game

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/hoomehr/perxplor/internal/core"
	"github.com/hoomehr/perxplor/internal/terrain"
	"github.com/hoomehr/perxplor/internal/treasure"
)

// Options configure a session engine.
type Options struct {
	Identity string
	Catalog  *treasure.Catalog
	Store    Store       // nil runs the session without persistence
	Logger   *log.Logger // nil discards engine logging
	Policy   CollectPolicy
	Seed     int64 // world seed for the terrain generator

	// InspectZoom is the widest level at which clicking a treasure tile
	// opens its detail view. GlyphZoom is the widest level at which
	// treasure glyphs render. StartZoom is where a session begins.
	// Nil picks ZoomLocal; a set value is honored as given, ZoomWorld
	// included, which is why these are pointers rather than levels.
	InspectZoom *core.ZoomLevel
	GlyphZoom   *core.ZoomLevel
	StartZoom   *core.ZoomLevel
}

// Engine runs one player's session. Calls are not safe for concurrent use;
// the platform's event loop serializes them, which is exactly how Bubble
// Tea drives its model.
type Engine struct {
	identity    string
	catalog     *treasure.Catalog
	terrain     *terrain.Generator
	logger      *log.Logger
	policy      CollectPolicy
	inspectZoom core.ZoomLevel
	glyphZoom   core.ZoomLevel

	pos    core.Coord
	zoom   core.ZoomLevel
	score  int
	states map[string]State

	wb      *writeback
	pending []Event
}

// New loads the identity's saved progress and opens a session at the spawn
// tile. The first occupancy check runs before New returns, so a treasure
// sitting on spawn resolves immediately; its events wait for the first
// Drain.
func New(opts Options) (*Engine, error) {
	if opts.Identity == "" {
		return nil, fmt.Errorf("game: identity must not be empty")
	}
	if opts.Catalog == nil {
		return nil, fmt.Errorf("game: catalog must not be nil")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	e := &Engine{
		identity:    opts.Identity,
		catalog:     opts.Catalog,
		terrain:     terrain.New(opts.Seed),
		logger:      logger,
		policy:      opts.Policy,
		inspectZoom: zoomOrDefault(opts.InspectZoom),
		glyphZoom:   zoomOrDefault(opts.GlyphZoom),
		pos:         core.Spawn(),
		zoom:        zoomOrDefault(opts.StartZoom),
		states:      make(map[string]State),
	}

	if opts.Store != nil {
		e.restore(opts.Store)
		e.wb = newWriteback(opts.Identity, opts.Store, logger)
	}

	// A fresh login can land directly on a treasure.
	e.checkOccupancy()

	return e, nil
}

func zoomOrDefault(z *core.ZoomLevel) core.ZoomLevel {
	if z == nil {
		return core.ZoomLocal
	}
	return *z
}

// restore loads saved progress. A store read failure starts the session
// fresh instead of blocking the login; the failure is logged.
func (e *Engine) restore(store Store) {
	snap, err := store.Load(e.identity)
	if err != nil {
		e.logger.Error("cannot load saved progress, starting fresh",
			"identity", e.identity, "err", err)
		return
	}
	if snap == nil {
		return
	}
	e.score = snap.Score
	for _, id := range snap.Opened {
		e.states[id] = Opened
	}
	for _, id := range snap.Collected {
		e.states[id] = Collected
	}
	// Ids from an older catalog stay in the map so saves keep carrying
	// them; they just never render.
	for id := range e.states {
		if _, ok := e.catalog.ByID(id); !ok {
			e.logger.Warn("saved progress references a treasure missing from the catalog",
				"treasure", id)
		}
	}
}

// Identity returns the opaque player identity the session runs under.
func (e *Engine) Identity() string { return e.identity }

// Pos returns the player's tile.
func (e *Engine) Pos() core.Coord { return e.pos }

// Zoom returns the current zoom level.
func (e *Engine) Zoom() core.ZoomLevel { return e.zoom }

// Score returns the accrued score. It never decreases.
func (e *Engine) Score() int { return e.score }

// Policy returns the session's collect policy.
func (e *Engine) Policy() CollectPolicy { return e.policy }

// StateOf returns a treasure's lifecycle state for this player.
func (e *Engine) StateOf(id string) State { return e.states[id] }

// CollectedCount returns how many treasures the player has collected.
func (e *Engine) CollectedCount() int {
	n := 0
	for _, st := range e.states {
		if st == Collected {
			n++
		}
	}
	return n
}

// CatalogSize returns how many treasures the world holds.
func (e *Engine) CatalogSize() int { return e.catalog.Len() }

// FamilyAt exposes the terrain family under a tile, for status displays.
func (e *Engine) FamilyAt(c core.Coord) terrain.Family {
	return e.terrain.FamilyAt(c.X, c.Y)
}

// Snapshot builds the durable view of the session as it stands.
func (e *Engine) Snapshot() SessionSnapshot {
	return snapshot(e.score, e.states)
}

// Viewport computes the visible window for the current position and zoom.
func (e *Engine) Viewport() core.Viewport {
	return core.ComputeViewport(e.pos, e.zoom)
}

// Move applies one movement intent. Pressing into a grid edge is absorbed.
func (e *Engine) Move(d core.Delta) []Event {
	if d.IsZero() {
		return e.drain()
	}
	next := core.ApplyMove(e.pos, d)
	if next != e.pos {
		e.pos = next
		e.checkOccupancy()
	}
	return e.drain()
}

// MoveKey maps a raw key press to a movement intent and applies it.
// Keys that carry no movement are ignored.
func (e *Engine) MoveKey(key string) []Event {
	d, ok := core.KeyToDelta(key)
	if !ok {
		return nil
	}
	return e.Move(d)
}

// Click handles a pointer press at an abstract pixel position on the
// rendered viewport. The player takes a single step toward the clicked
// tile, never the whole way there. If the tile holds a treasure and the
// zoom is at or past the inspect threshold, its detail view opens too.
func (e *Engine) Click(px, py int) []Event {
	target := core.PixelToTile(px, py, e.Viewport())
	if e.zoom.AtLeast(e.inspectZoom) {
		if tr, ok := e.catalog.At(target); ok {
			e.open(tr)
		}
	}
	if d := core.StepToward(e.pos, target); !d.IsZero() {
		e.pos = core.ApplyMove(e.pos, d)
		e.checkOccupancy()
	}
	return e.drain()
}

// Inspect opens the detail view of the treasure under the player, if any.
func (e *Engine) Inspect() []Event {
	if tr, ok := e.catalog.At(e.pos); ok {
		e.open(tr)
	}
	return e.drain()
}

// Confirm collects the treasure the player stands on. Under the auto
// policy occupancy already collected it, so this is the confirm policy's
// second half and otherwise a no-op.
func (e *Engine) Confirm() []Event {
	if tr, ok := e.catalog.At(e.pos); ok {
		e.collect(tr)
	}
	return e.drain()
}

// ZoomIn moves one level tighter. Zooming never moves the player and never
// touches treasure state.
func (e *Engine) ZoomIn() { e.zoom = e.zoom.In() }

// ZoomOut moves one level wider.
func (e *Engine) ZoomOut() { e.zoom = e.zoom.Out() }

// Drain hands back events queued outside a mutating call, like the ones
// from the login occupancy check.
func (e *Engine) Drain() []Event { return e.drain() }

// Close flushes pending writes and stops the background writer.
// Safe to call more than once.
func (e *Engine) Close() error {
	if e.wb != nil {
		e.wb.close()
	}
	return nil
}

// CloseWhenDone closes the engine once ctx ends. Serving surfaces tie this
// to the connection's context so a session abandoned without a clean quit
// (dropped connection, idle timeout) still flushes its pending writes and
// stops its background writer instead of leaking it.
func (e *Engine) CloseWhenDone(ctx context.Context) {
	go func() {
		<-ctx.Done()
		e.Close() //nolint:errcheck // Close never fails
	}()
}

// checkOccupancy applies the collect policy to whatever the player is
// standing on.
func (e *Engine) checkOccupancy() {
	tr, ok := e.catalog.At(e.pos)
	if !ok {
		return
	}
	switch e.policy {
	case ConfirmCollect:
		e.open(tr)
	default:
		e.collect(tr)
	}
}

// open moves a treasure to Opened and queues its detail view. Opening never
// grants score. Re-opening shows the card again without touching state, so
// a Collected treasure can still be looked at.
func (e *Engine) open(tr treasure.Treasure) {
	st := e.states[tr.ID]
	if st == Undiscovered {
		st = Opened
		e.states[tr.ID] = st
		e.persist()
	}
	e.pending = append(e.pending, Event{Kind: EventOpened, Treasure: tr, State: st})
}

// collect moves a treasure to Collected exactly once, paying out its
// rarity's reward. Collected is terminal; repeats are no-ops decided by the
// state map, never by score arithmetic.
func (e *Engine) collect(tr treasure.Treasure) {
	if e.states[tr.ID] == Collected {
		return
	}
	if !tr.Rarity.Known() {
		e.logger.Warn("unknown rarity tier, paying the fallback reward",
			"treasure", tr.ID, "rarity", string(tr.Rarity))
	}
	reward := tr.Rarity.Value()
	e.score += reward
	e.states[tr.ID] = Collected
	e.persist()
	e.pending = append(e.pending, Event{
		Kind:     EventCollected,
		Treasure: tr,
		State:    Collected,
		Reward:   reward,
	})
}

// persist queues a full snapshot write. It never blocks and never fails
// the caller; the in-memory session stays authoritative even when the
// store is down.
func (e *Engine) persist() {
	if e.wb == nil {
		return
	}
	e.wb.enqueue(e.Snapshot())
}

func (e *Engine) drain() []Event {
	if len(e.pending) == 0 {
		return nil
	}
	out := e.pending
	e.pending = nil
	return out
}
