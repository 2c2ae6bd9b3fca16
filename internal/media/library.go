// Package media models the project's media library: imported source items
// and the bins that organize them.
//
// The library always contains one protected system bin, "All Media", which
// lists every item. User bins behave like folders: an item is filed in at
// most one user bin. Like the timeline, the library has no undo awareness;
// mutations go through commands in package edit.
package media

import (
	"slices"

	"github.com/google/uuid"

	"reel/internal/textutil"
)

// AllMediaName is the name of the protected system bin.
const AllMediaName = "All Media"

// Kind is the media type of an item.
type Kind string

const (
	KindVideo Kind = "video"
	KindAudio Kind = "audio"
	KindImage Kind = "image"
)

// Item is an imported source file.
type Item struct {
	ID             string
	Name           string
	Path           string
	Kind           Kind
	DurationFrames int64
	FrameRate      float64
}

// Bin is a named, ordered collection of item ids.
type Bin struct {
	id     string
	name   string
	system bool
	items  []string
}

// NewBin returns a detached user bin.
func NewBin(id, name string) *Bin {
	if id == "" {
		id = uuid.NewString()
	}
	return &Bin{id: id, name: name}
}

func (b *Bin) ID() string        { return b.id }
func (b *Bin) Name() string      { return b.name }
func (b *Bin) System() bool      { return b.system }
func (b *Bin) ItemIDs() []string { return slices.Clone(b.items) }

// EventKind names a library mutation.
type EventKind string

const (
	EventItemAdded   EventKind = "item_added"
	EventItemRemoved EventKind = "item_removed"
	EventBinAdded    EventKind = "bin_added"
	EventBinRemoved  EventKind = "bin_removed"
	EventBinRenamed  EventKind = "bin_renamed"
	EventBinsChanged EventKind = "bin_membership_changed"
)

// Event describes a completed library mutation.
type Event struct {
	Kind   EventKind
	ItemID string
	BinID  string
	Index  int
}

// Library owns items and bins.
type Library struct {
	items     []*Item
	system    *Bin
	bins      []*Bin
	listeners []func(Event)
	held      int
	pending   []Event
}

// NewLibrary returns an empty library with its system bin.
func NewLibrary() *Library {
	return NewLibraryWithSystemID("")
}

// NewLibraryWithSystemID is NewLibrary with a fixed system bin id, used when
// restoring saved projects.
func NewLibraryWithSystemID(id string) *Library {
	system := NewBin(id, AllMediaName)
	system.system = true
	return &Library{system: system}
}

// Subscribe registers fn for change events.
func (l *Library) Subscribe(fn func(Event)) {
	if fn != nil {
		l.listeners = append(l.listeners, fn)
	}
}

func (l *Library) publish(ev Event) {
	if l.held > 0 {
		l.pending = append(l.pending, ev)
		return
	}
	for _, fn := range slices.Clone(l.listeners) {
		fn(ev)
	}
}

// Batch runs fn and delivers the events it raises only after it returns.
func (l *Library) Batch(fn func()) {
	l.held++
	defer func() {
		l.held--
		if l.held > 0 {
			return
		}
		pending := l.pending
		l.pending = nil
		for _, ev := range pending {
			l.publish(ev)
		}
	}()
	fn()
}

// SystemBin returns the protected "All Media" bin.
func (l *Library) SystemBin() *Bin { return l.system }

// Items returns every item in import order.
func (l *Library) Items() []*Item { return slices.Clone(l.items) }

// ItemCount returns the number of imported items.
func (l *Library) ItemCount() int { return len(l.items) }

// Item finds an item by id.
func (l *Library) Item(id string) (*Item, int) {
	for i, item := range l.items {
		if item.ID == id {
			return item, i
		}
	}
	return nil, -1
}

// InsertItem adds item at index i (clamped) and returns the index used.
func (l *Library) InsertItem(i int, item *Item) int {
	if item == nil {
		return -1
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	i = max(0, min(i, len(l.items)))
	l.items = slices.Insert(l.items, i, item)
	l.publish(Event{Kind: EventItemAdded, ItemID: item.ID, Index: i})
	return i
}

// Membership records an item's position inside a user bin.
type Membership struct {
	BinID string
	Index int
}

// RemoveItem deletes the item and unfiles it from its user bin. It returns
// the item, its former index, and its former membership so the removal can
// be reverted with RestoreItem.
func (l *Library) RemoveItem(id string) (*Item, int, *Membership) {
	item, i := l.Item(id)
	if item == nil {
		return nil, -1, nil
	}
	var membership *Membership
	if bin := l.BinOf(id); bin != nil {
		membership = &Membership{BinID: bin.id, Index: slices.Index(bin.items, id)}
		bin.items = slices.Delete(bin.items, membership.Index, membership.Index+1)
	}
	l.items = slices.Delete(l.items, i, i+1)
	l.publish(Event{Kind: EventItemRemoved, ItemID: id, Index: i})
	return item, i, membership
}

// RestoreItem reverts RemoveItem.
func (l *Library) RestoreItem(i int, item *Item, membership *Membership) {
	l.InsertItem(i, item)
	if membership != nil {
		l.AddToBin(membership.BinID, item.ID, membership.Index)
	}
}

// Bins returns the system bin followed by user bins in display order.
func (l *Library) Bins() []*Bin {
	return append([]*Bin{l.system}, l.bins...)
}

// UserBins returns the user bins in display order.
func (l *Library) UserBins() []*Bin { return slices.Clone(l.bins) }

// Bin finds a bin (system or user) by id. The index is the user-bin position,
// -1 for the system bin or when not found.
func (l *Library) Bin(id string) (*Bin, int) {
	if id == l.system.id {
		return l.system, -1
	}
	for i, b := range l.bins {
		if b.id == id {
			return b, i
		}
	}
	return nil, -1
}

// BinByName finds a bin by name, comparing case-insensitively.
func (l *Library) BinByName(name string) *Bin {
	if textutil.SameName(name, l.system.name) {
		return l.system
	}
	for _, b := range l.bins {
		if textutil.SameName(name, b.name) {
			return b
		}
	}
	return nil
}

// BinItems lists the items shown in a bin. The system bin shows every item.
func (l *Library) BinItems(binID string) []*Item {
	bin, _ := l.Bin(binID)
	if bin == nil {
		return nil
	}
	if bin.system {
		return l.Items()
	}
	out := make([]*Item, 0, len(bin.items))
	for _, id := range bin.items {
		if item, _ := l.Item(id); item != nil {
			out = append(out, item)
		}
	}
	return out
}

// BinOf returns the user bin an item is filed in, or nil.
func (l *Library) BinOf(itemID string) *Bin {
	for _, b := range l.bins {
		if slices.Contains(b.items, itemID) {
			return b
		}
	}
	return nil
}

// InsertBin adds a user bin at index i (clamped) and returns the index used.
func (l *Library) InsertBin(i int, bin *Bin) int {
	if bin == nil || bin.system {
		return -1
	}
	i = max(0, min(i, len(l.bins)))
	l.bins = slices.Insert(l.bins, i, bin)
	l.publish(Event{Kind: EventBinAdded, BinID: bin.id, Index: i})
	return i
}

// RemoveBin detaches a user bin and returns it with its former index. The
// bin keeps its membership list, so reinserting it restores its contents.
func (l *Library) RemoveBin(id string) (*Bin, int) {
	bin, i := l.Bin(id)
	if bin == nil || bin.system {
		return nil, -1
	}
	l.bins = slices.Delete(l.bins, i, i+1)
	l.publish(Event{Kind: EventBinRemoved, BinID: id, Index: i})
	return bin, i
}

// RenameBin changes a bin's name and returns the previous one.
func (l *Library) RenameBin(id, name string) (string, bool) {
	bin, _ := l.Bin(id)
	if bin == nil {
		return "", false
	}
	prev := bin.name
	bin.name = name
	l.publish(Event{Kind: EventBinRenamed, BinID: id})
	return prev, true
}

// AddToBin files an item into a user bin at index i (clamped). Adding to the
// system bin is a no-op.
func (l *Library) AddToBin(binID, itemID string, i int) int {
	bin, _ := l.Bin(binID)
	if bin == nil || bin.system {
		return -1
	}
	i = max(0, min(i, len(bin.items)))
	bin.items = slices.Insert(bin.items, i, itemID)
	l.publish(Event{Kind: EventBinsChanged, BinID: binID, ItemID: itemID, Index: i})
	return i
}

// RemoveFromBin unfiles an item from a user bin and returns its former index.
func (l *Library) RemoveFromBin(binID, itemID string) int {
	bin, _ := l.Bin(binID)
	if bin == nil || bin.system {
		return -1
	}
	i := slices.Index(bin.items, itemID)
	if i < 0 {
		return -1
	}
	bin.items = slices.Delete(bin.items, i, i+1)
	l.publish(Event{Kind: EventBinsChanged, BinID: binID, ItemID: itemID, Index: i})
	return i
}
