package game

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/hoomehr/perxplor/internal/core"
	"github.com/hoomehr/perxplor/internal/treasure"
)

// memStore is an in-memory Store double. failFirst makes the first N saves
// fail, loadErr fails every load.
type memStore struct {
	mu        sync.Mutex
	data      map[string]SessionSnapshot
	saves     []SessionSnapshot
	failFirst int
	attempts  int
	loadErr   error
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]SessionSnapshot)}
}

func (m *memStore) Load(identity string) (*SessionSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	snap, ok := m.data[identity]
	if !ok {
		return nil, nil
	}
	return &snap, nil
}

func (m *memStore) Save(identity string, snap SessionSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts++
	if m.failFirst > 0 {
		m.failFirst--
		return fmt.Errorf("store down")
	}
	m.data[identity] = snap
	m.saves = append(m.saves, snap)
	return nil
}

func (m *memStore) saved(identity string) (SessionSnapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.data[identity]
	return snap, ok
}

func testCatalog(t *testing.T, treasures ...treasure.Treasure) *treasure.Catalog {
	t.Helper()
	c, err := treasure.NewCatalog(treasures)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return c
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, len(events))
	for i, ev := range events {
		out[i] = ev.Kind
	}
	return out
}

func TestNewValidation(t *testing.T) {
	cat := testCatalog(t)

	if _, err := New(Options{Catalog: cat}); err == nil {
		t.Error("expected an error for an empty identity")
	}
	if _, err := New(Options{Identity: "imke"}); err == nil {
		t.Error("expected an error for a nil catalog")
	}
}

func TestLoginCollectsSpawnTreasure(t *testing.T) {
	// A legendary sitting exactly on the spawn tile pays out on the very
	// first occupancy check, before the player does anything at all.
	store := newMemStore()
	e, err := New(Options{
		Identity: "imke",
		Catalog: testCatalog(t, treasure.Treasure{
			ID: "first-flame", Rarity: treasure.Legendary, X: 250, Y: 250,
		}),
		Store: store,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if e.Score() != 1000 {
		t.Errorf("Score() = %d, expected 1000", e.Score())
	}
	if e.CollectedCount() != 1 {
		t.Errorf("CollectedCount() = %d, expected 1", e.CollectedCount())
	}

	events := e.Drain()
	if len(events) != 1 || events[0].Kind != EventCollected || events[0].Reward != 1000 {
		t.Errorf("login events = %+v, expected one collect worth 1000", events)
	}
	if again := e.Drain(); again != nil {
		t.Errorf("second Drain returned %+v, expected nothing", again)
	}

	if err := e.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	snap, ok := store.saved("imke")
	if !ok || snap.Score != 1000 || len(snap.Collected) != 1 {
		t.Errorf("persisted snapshot = %+v, %v", snap, ok)
	}
}

func TestCollectIsIdempotent(t *testing.T) {
	e, err := New(Options{
		Identity: "imke",
		Catalog: testCatalog(t, treasure.Treasure{
			ID: "cache", Rarity: treasure.Rare, X: 250, Y: 250,
		}),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.Drain()

	// Leave the tile and come back; the second occupancy check must not
	// pay again.
	e.Move(core.Delta{DX: 1})
	events := e.Move(core.Delta{DX: -1})

	if e.Score() != 200 {
		t.Errorf("Score() = %d, expected 200 after revisiting", e.Score())
	}
	if len(events) != 0 {
		t.Errorf("revisit produced events %+v, expected none", events)
	}
	if e.StateOf("cache") != Collected {
		t.Errorf("StateOf = %v, expected Collected", e.StateOf("cache"))
	}
}

func TestClickOpensDistantTreasureAndStepsOnce(t *testing.T) {
	// Clicking an uncommon treasure two tiles away at the tightest zoom
	// opens its card and moves the player a single step toward it. No
	// collection, no score.
	e, err := New(Options{
		Identity: "imke",
		Catalog: testCatalog(t, treasure.Treasure{
			ID: "satchel", Rarity: treasure.Uncommon, X: 252, Y: 250,
		}),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.ZoomIn() // Local -> Detail

	v := e.Viewport()
	px, py := v.TileRect(core.Coord{X: 252, Y: 250}).Center()
	events := e.Click(px, py)

	if got := kinds(events); len(got) != 1 || got[0] != EventOpened {
		t.Fatalf("events = %v, expected exactly one open", got)
	}
	if events[0].State != Opened {
		t.Errorf("event state = %v, expected Opened", events[0].State)
	}
	if e.Score() != 0 {
		t.Errorf("Score() = %d, expected 0 after opening", e.Score())
	}
	if e.StateOf("satchel") != Opened {
		t.Errorf("StateOf = %v, expected Opened", e.StateOf("satchel"))
	}
	if got := e.Pos(); got != (core.Coord{X: 251, Y: 250}) {
		t.Errorf("Pos() = %v, expected a single step to (251, 250)", got)
	}
}

func TestClickWideZoomOnlySteps(t *testing.T) {
	// One level wider than the inspect threshold a click still moves the
	// player but opens nothing.
	e, err := New(Options{
		Identity: "imke",
		Catalog: testCatalog(t, treasure.Treasure{
			ID: "satchel", Rarity: treasure.Uncommon, X: 253, Y: 250,
		}),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.ZoomOut() // Local -> Area, wider than the default inspect threshold

	v := e.Viewport()
	px, py := v.TileRect(core.Coord{X: 253, Y: 250}).Center()
	events := e.Click(px, py)

	if len(events) != 0 {
		t.Errorf("events = %+v, expected none at a wide zoom", events)
	}
	if e.StateOf("satchel") != Undiscovered {
		t.Errorf("StateOf = %v, expected Undiscovered", e.StateOf("satchel"))
	}
	if got := e.Pos(); got != (core.Coord{X: 251, Y: 250}) {
		t.Errorf("Pos() = %v, expected (251, 250)", got)
	}
}

func TestClickAdjacentTreasureOpensThenCollects(t *testing.T) {
	e, err := New(Options{
		Identity: "imke",
		Catalog: testCatalog(t, treasure.Treasure{
			ID: "pouch", Rarity: treasure.Common, X: 251, Y: 250,
		}),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.ZoomIn()

	v := e.Viewport()
	px, py := v.TileRect(core.Coord{X: 251, Y: 250}).Center()
	events := e.Click(px, py)

	got := kinds(events)
	if len(got) != 2 || got[0] != EventOpened || got[1] != EventCollected {
		t.Fatalf("events = %v, expected open then collect", got)
	}
	if e.Score() != 10 {
		t.Errorf("Score() = %d, expected 10", e.Score())
	}
}

func TestConfirmPolicy(t *testing.T) {
	e, err := New(Options{
		Identity: "imke",
		Policy:   ConfirmCollect,
		Catalog: testCatalog(t, treasure.Treasure{
			ID: "idol", Rarity: treasure.Epic, X: 250, Y: 251,
		}),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Arriving opens, it does not collect.
	events := e.Move(core.Delta{DY: 1})
	if got := kinds(events); len(got) != 1 || got[0] != EventOpened {
		t.Fatalf("arrival events = %v, expected one open", got)
	}
	if e.Score() != 0 {
		t.Errorf("Score() = %d, expected 0 before confirming", e.Score())
	}

	// Confirming collects once.
	events = e.Confirm()
	if got := kinds(events); len(got) != 1 || got[0] != EventCollected {
		t.Fatalf("confirm events = %v, expected one collect", got)
	}
	if e.Score() != 500 {
		t.Errorf("Score() = %d, expected 500", e.Score())
	}

	// Confirming again changes nothing.
	if events = e.Confirm(); len(events) != 0 {
		t.Errorf("second confirm produced %+v", events)
	}
	if e.Score() != 500 {
		t.Errorf("Score() = %d, expected 500 to stick", e.Score())
	}
}

func TestUnknownRarityPaysFallback(t *testing.T) {
	e, err := New(Options{
		Identity: "imke",
		Catalog: testCatalog(t, treasure.Treasure{
			ID: "oddity", Rarity: treasure.Rarity("Mythic"), X: 251, Y: 250,
		}),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	events := e.Move(core.Delta{DX: 1})
	if len(events) != 1 || events[0].Reward != 10 {
		t.Fatalf("events = %+v, expected a collect worth the fallback 10", events)
	}
	if e.Score() != 10 {
		t.Errorf("Score() = %d, expected 10", e.Score())
	}
}

func TestMoveKey(t *testing.T) {
	e, err := New(Options{Identity: "imke", Catalog: testCatalog(t)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	e.MoveKey("W")
	if got := e.Pos(); got != (core.Coord{X: 250, Y: 249}) {
		t.Errorf("Pos() after W = %v, expected (250, 249)", got)
	}
	e.MoveKey("right")
	if got := e.Pos(); got != (core.Coord{X: 251, Y: 249}) {
		t.Errorf("Pos() after right = %v, expected (251, 249)", got)
	}

	// Keys without a movement meaning do nothing.
	e.MoveKey("q")
	e.MoveKey("enter")
	if got := e.Pos(); got != (core.Coord{X: 251, Y: 249}) {
		t.Errorf("Pos() after non-movement keys = %v, expected (251, 249)", got)
	}
}

func TestZoomNeverTouchesSession(t *testing.T) {
	e, err := New(Options{
		Identity: "imke",
		Catalog: testCatalog(t, treasure.Treasure{
			ID: "cache", Rarity: treasure.Rare, X: 250, Y: 250,
		}),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.Drain()

	pos, score := e.Pos(), e.Score()
	for i := 0; i < 10; i++ {
		e.ZoomIn()
	}
	for i := 0; i < 10; i++ {
		e.ZoomOut()
	}

	if e.Pos() != pos || e.Score() != score {
		t.Error("zooming moved the player or the score")
	}
	if e.Zoom() != core.ZoomWorld {
		t.Errorf("Zoom() = %v, expected to rest at ZoomWorld", e.Zoom())
	}
	if e.StateOf("cache") != Collected {
		t.Error("zooming touched treasure state")
	}
}

func TestStoreLoadFailureStartsFresh(t *testing.T) {
	store := newMemStore()
	store.loadErr = fmt.Errorf("disk on fire")

	e, err := New(Options{
		Identity: "imke",
		Catalog: testCatalog(t, treasure.Treasure{
			ID: "pouch", Rarity: treasure.Common, X: 251, Y: 250,
		}),
		Store: store,
	})
	if err != nil {
		t.Fatalf("a failing load must not block the login: %v", err)
	}
	if e.Score() != 0 {
		t.Errorf("Score() = %d, expected a fresh session", e.Score())
	}

	// Play continues and saves still go through.
	e.Move(core.Delta{DX: 1})
	if err := e.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if snap, ok := store.saved("imke"); !ok || snap.Score != 10 {
		t.Errorf("saved snapshot = %+v, %v", snap, ok)
	}
}

func TestStoreSaveFailureKeepsSessionAndRetries(t *testing.T) {
	store := newMemStore()
	store.failFirst = 2

	e, err := New(Options{
		Identity: "imke",
		Catalog: testCatalog(t, treasure.Treasure{
			ID: "idol", Rarity: treasure.Epic, X: 250, Y: 250,
		}),
		Store: store,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// The in-memory session is authoritative immediately, store or no store.
	if e.Score() != 500 {
		t.Errorf("Score() = %d, expected 500 regardless of the store", e.Score())
	}

	if err := e.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	snap, ok := store.saved("imke")
	if !ok || snap.Score != 500 {
		t.Errorf("retry never landed the snapshot: %+v, %v", snap, ok)
	}
}

func TestProgressRoundTripAcrossLogins(t *testing.T) {
	store := newMemStore()
	cat := []treasure.Treasure{
		{ID: "a", Rarity: treasure.Common, X: 251, Y: 250},
		{ID: "b", Rarity: treasure.Rare, X: 252, Y: 250},
	}

	first, err := New(Options{Identity: "imke", Catalog: testCatalog(t, cat...), Store: store})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	first.Move(core.Delta{DX: 1})
	first.Move(core.Delta{DX: 1})
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := New(Options{Identity: "imke", Catalog: testCatalog(t, cat...), Store: store})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer second.Close()

	if second.Score() != 210 {
		t.Errorf("restored Score() = %d, expected 210", second.Score())
	}
	if second.StateOf("a") != Collected || second.StateOf("b") != Collected {
		t.Error("restored states lost a collected treasure")
	}
	// Position is view state: every login starts back at spawn.
	if second.Pos() != core.Spawn() {
		t.Errorf("Pos() = %v, expected the spawn tile", second.Pos())
	}
}

func TestOpenedStateSurvivesLogin(t *testing.T) {
	store := newMemStore()
	cat := []treasure.Treasure{{ID: "idol", Rarity: treasure.Epic, X: 250, Y: 251}}

	first, err := New(Options{
		Identity: "imke",
		Policy:   ConfirmCollect,
		Catalog:  testCatalog(t, cat...),
		Store:    store,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	first.Move(core.Delta{DY: 1}) // opens, does not collect
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := New(Options{
		Identity: "imke",
		Policy:   ConfirmCollect,
		Catalog:  testCatalog(t, cat...),
		Store:    store,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer second.Close()

	if second.StateOf("idol") != Opened {
		t.Errorf("StateOf = %v, expected Opened to survive the login", second.StateOf("idol"))
	}
	if second.Score() != 0 {
		t.Errorf("Score() = %d, expected 0", second.Score())
	}
}

func TestDifferentIdentitiesDoNotShareProgress(t *testing.T) {
	store := newMemStore()
	cat := []treasure.Treasure{{ID: "a", Rarity: treasure.Rare, X: 250, Y: 250}}

	imke, err := New(Options{Identity: "imke", Catalog: testCatalog(t, cat...), Store: store})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := imke.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	noor, err := New(Options{Identity: "noor", Catalog: testCatalog(t, cat...), Store: store})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer noor.Close()

	// noor lands on the same treasure and collects it independently of imke.
	if noor.Score() != 200 {
		t.Errorf("noor's Score() = %d, expected their own 200", noor.Score())
	}
}

func TestCloseWhenDoneStopsWriter(t *testing.T) {
	// A session abandoned without a clean quit still flushes its pending
	// writes and stops the background writer once its context ends.
	store := newMemStore()
	e, err := New(Options{
		Identity: "imke",
		Catalog: testCatalog(t, treasure.Treasure{
			ID: "pouch", Rarity: treasure.Common, X: 250, Y: 250,
		}),
		Store: store,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	e.CloseWhenDone(ctx)
	cancel()

	select {
	case <-e.wb.done:
	case <-time.After(2 * time.Second):
		t.Fatal("background writer still running after the context ended")
	}
	if snap, ok := store.saved("imke"); !ok || snap.Score != 10 {
		t.Errorf("flushed snapshot = %+v, %v", snap, ok)
	}
}

func TestExplicitWorldZoomIsHonored(t *testing.T) {
	// World is a real choice, not a stand-in for "unset": a session asked
	// to start there starts there, and a world-wide glyph threshold shows
	// treasures from the very first frame.
	world := core.ZoomWorld
	e, err := New(Options{
		Identity: "imke",
		Catalog: testCatalog(t, treasure.Treasure{
			ID: "far-hoard", Rarity: treasure.Rare, X: 10, Y: 10,
		}),
		StartZoom: &world,
		GlyphZoom: &world,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer e.Close()

	if e.Zoom() != core.ZoomWorld {
		t.Fatalf("Zoom() = %v, expected ZoomWorld", e.Zoom())
	}

	frame := e.Frame(0)
	if len(frame.Glyphs) != 1 || frame.Glyphs[0].Tile != (core.Coord{X: 10, Y: 10}) {
		t.Errorf("Frame glyphs = %+v, expected the far treasure at (10, 10)", frame.Glyphs)
	}
}
