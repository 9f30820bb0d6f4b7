package rules

import "testing"

type recordingWatcher struct {
	*BaseWatcher
	seen int
}

func newRecordingWatcher() *recordingWatcher {
	return &recordingWatcher{BaseWatcher: NewBaseWatcher(WatcherScopeGame)}
}

func (w *recordingWatcher) Watch(event Event) {
	w.seen++
	w.SetCondition(true)
}

func (w *recordingWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.seen = 0
}

func (w *recordingWatcher) Copy() Watcher {
	cpy := newRecordingWatcher()
	cpy.SetKey(w.GetKey())
	cpy.SetCondition(w.ConditionMet())
	cpy.seen = w.seen
	return cpy
}

func TestWatcherRegistryAddAndGet(t *testing.T) {
	registry := NewWatcherRegistry()

	watcher := newRecordingWatcher()
	watcher.SetKey("RecordingWatcher")
	registry.AddWatcher(watcher)

	got, ok := registry.GetWatcher("RecordingWatcher").(*recordingWatcher)
	if !ok || got != watcher {
		t.Fatalf("expected to get back the installed watcher, got %v", got)
	}
	if registry.GetWatcher("Missing") != nil {
		t.Fatal("expected nil for an uninstalled key")
	}
	if len(registry.GetAllWatchers()) != 1 {
		t.Fatalf("expected 1 installed watcher, got %d", len(registry.GetAllWatchers()))
	}
}

func TestWatcherRegistryDerivesKey(t *testing.T) {
	registry := NewWatcherRegistry()

	// No key set by the constructor: the registry derives one and writes it
	// back so later lookups work.
	watcher := newRecordingWatcher()
	registry.AddWatcher(watcher)

	key := watcher.GetKey()
	if key == "" {
		t.Fatal("expected a derived key")
	}
	if registry.GetWatcher(key) == nil {
		t.Fatalf("expected lookup by derived key %q to succeed", key)
	}
}

func TestWatcherRegistryNotifyAndReset(t *testing.T) {
	registry := NewWatcherRegistry()
	watcher := newRecordingWatcher()
	watcher.SetKey("RecordingWatcher")
	registry.AddWatcher(watcher)

	registry.NotifyWatchers(NewEvent(EventDrewCard, "c1", "", "player1"))
	registry.NotifyWatchers(NewEvent(EventDrewCard, "c2", "", "player1"))
	if watcher.seen != 2 {
		t.Fatalf("expected 2 events seen, got %d", watcher.seen)
	}
	if !watcher.ConditionMet() {
		t.Fatal("expected condition met after events")
	}

	registry.ResetWatchers()
	if watcher.seen != 0 || watcher.ConditionMet() {
		t.Fatal("expected watcher cleared after reset")
	}
}

func TestWatcherRegistryRemove(t *testing.T) {
	registry := NewWatcherRegistry()
	watcher := newRecordingWatcher()
	watcher.SetKey("RecordingWatcher")
	registry.AddWatcher(watcher)

	registry.RemoveWatcher("RecordingWatcher")
	if registry.GetWatcher("RecordingWatcher") != nil {
		t.Fatal("expected watcher gone after removal")
	}

	// Removed watchers no longer hear events.
	registry.NotifyWatchers(NewEvent(EventDrewCard, "c1", "", "player1"))
	if watcher.seen != 0 {
		t.Fatalf("expected removed watcher to see nothing, got %d", watcher.seen)
	}
}

func TestWatcherRegistryNilWatcher(t *testing.T) {
	registry := NewWatcherRegistry()
	registry.AddWatcher(nil)
	if len(registry.GetAllWatchers()) != 0 {
		t.Fatal("expected nil watcher to be ignored")
	}
}
