package rules

import (
	"fmt"
	"sync"
)

// WatcherScope defines how long a watcher's tracking is meaningful and when
// it resets.
type WatcherScope int

const (
	// WatcherScopeGame tracks across the whole game.
	WatcherScopeGame WatcherScope = iota
	// WatcherScopePlayer tracks facts about a single player.
	WatcherScopePlayer
	// WatcherScopeCard tracks facts about a single card or permanent.
	WatcherScopeCard
)

func (ws WatcherScope) String() string {
	switch ws {
	case WatcherScopeGame:
		return "GAME"
	case WatcherScopePlayer:
		return "PLAYER"
	case WatcherScopeCard:
		return "CARD"
	default:
		return "UNKNOWN"
	}
}

// Watcher observes rules events and accumulates the per-turn facts the
// clause evaluator's evidence gates read. A fact with no installed watcher
// is untracked, which the evaluator reports as Unknown rather than False.
type Watcher interface {
	// Watch is called for every published event; implementations filter by
	// event type.
	Watch(event Event)

	// Reset clears the accumulated state, typically at a turn boundary.
	Reset()

	// ConditionMet reports whether the watcher has seen anything at all
	// since the last reset.
	ConditionMet() bool

	// GetScope returns the scope of this watcher.
	GetScope() WatcherScope

	// GetKey returns the registry key. Game-scoped watchers use their type
	// name; player- and card-scoped watchers prefix it with the player or
	// card ID.
	GetKey() string

	// Copy creates a deep copy of this watcher.
	Copy() Watcher
}

// BaseWatcher carries the bookkeeping shared by all watchers; concrete
// watchers embed it and add their own counts.
type BaseWatcher struct {
	scope        WatcherScope
	controllerID string
	sourceID     string
	condition    bool
	key          string
}

// NewBaseWatcher creates a base watcher with the given scope.
func NewBaseWatcher(scope WatcherScope) *BaseWatcher {
	return &BaseWatcher{scope: scope}
}

// GetScope returns the watcher's scope.
func (bw *BaseWatcher) GetScope() WatcherScope {
	return bw.scope
}

// SetControllerID sets the tracked player for player-scoped watchers.
func (bw *BaseWatcher) SetControllerID(id string) {
	bw.controllerID = id
}

// GetControllerID returns the tracked player ID.
func (bw *BaseWatcher) GetControllerID() string {
	return bw.controllerID
}

// SetSourceID sets the tracked card for card-scoped watchers.
func (bw *BaseWatcher) SetSourceID(id string) {
	bw.sourceID = id
}

// GetSourceID returns the tracked card ID.
func (bw *BaseWatcher) GetSourceID() string {
	return bw.sourceID
}

// ConditionMet reports whether anything has been recorded since the last
// reset.
func (bw *BaseWatcher) ConditionMet() bool {
	return bw.condition
}

// SetCondition sets the condition flag.
func (bw *BaseWatcher) SetCondition(condition bool) {
	bw.condition = condition
}

// Reset clears the condition flag.
func (bw *BaseWatcher) Reset() {
	bw.condition = false
}

// GetKey returns the registry key.
func (bw *BaseWatcher) GetKey() string {
	return bw.key
}

// SetKey sets the registry key. Constructors call this with the concrete
// type name so tracker lookups stay stable across copies.
func (bw *BaseWatcher) SetKey(key string) {
	bw.key = key
}

// WatcherRegistry holds the installed watchers for a game. Which watchers
// are installed determines which clause subjects are tracked at all.
type WatcherRegistry struct {
	mu       sync.RWMutex
	watchers map[string]Watcher
}

// NewWatcherRegistry creates an empty watcher registry.
func NewWatcherRegistry() *WatcherRegistry {
	return &WatcherRegistry{watchers: make(map[string]Watcher)}
}

// AddWatcher installs a watcher, deriving a key from its scope when the
// constructor did not set one. Installing under an existing key replaces
// the previous watcher.
func (wr *WatcherRegistry) AddWatcher(watcher Watcher) {
	if watcher == nil {
		return
	}

	wr.mu.Lock()
	defer wr.mu.Unlock()

	key := watcher.GetKey()
	if key == "" {
		key = scopedKey(watcher)
		if setter, ok := watcher.(interface{ SetKey(string) }); ok {
			setter.SetKey(key)
		}
	}
	wr.watchers[key] = watcher
}

// RemoveWatcher uninstalls a watcher; the fact it tracked becomes untracked
// again.
func (wr *WatcherRegistry) RemoveWatcher(key string) {
	wr.mu.Lock()
	defer wr.mu.Unlock()
	delete(wr.watchers, key)
}

// GetWatcher retrieves a watcher by key, or nil when not installed.
func (wr *WatcherRegistry) GetWatcher(key string) Watcher {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	return wr.watchers[key]
}

// GetAllWatchers returns all installed watchers.
func (wr *WatcherRegistry) GetAllWatchers() []Watcher {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	result := make([]Watcher, 0, len(wr.watchers))
	for _, watcher := range wr.watchers {
		result = append(result, watcher)
	}
	return result
}

// ResetWatchers resets every installed watcher, typically at a turn
// boundary.
func (wr *WatcherRegistry) ResetWatchers() {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	for _, watcher := range wr.watchers {
		watcher.Reset()
	}
}

// NotifyWatchers delivers an event to every installed watcher. The
// signature matches Listener so a registry can subscribe directly to an
// EventBus.
func (wr *WatcherRegistry) NotifyWatchers(event Event) {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	for _, watcher := range wr.watchers {
		watcher.Watch(event)
	}
}

// scopedKey builds a fallback key for watchers whose constructor set none.
func scopedKey(watcher Watcher) string {
	base := fmt.Sprintf("%T", watcher)
	switch watcher.GetScope() {
	case WatcherScopePlayer:
		if getter, ok := watcher.(interface{ GetControllerID() string }); ok {
			if id := getter.GetControllerID(); id != "" {
				return id + "_" + base
			}
		}
	case WatcherScopeCard:
		if getter, ok := watcher.(interface{ GetSourceID() string }); ok {
			if id := getter.GetSourceID(); id != "" {
				return id + "_" + base
			}
		}
	}
	return base
}
