package media

import (
	"slices"
	"testing"
)

func seedLibrary(t *testing.T) (*Library, *Bin) {
	t.Helper()
	lib := NewLibrary()
	for _, id := range []string{"a", "b", "c"} {
		lib.InsertItem(lib.ItemCount(), &Item{ID: id, Name: id, Kind: KindVideo})
	}
	bin := NewBin("bin-1", "B-Roll")
	lib.InsertBin(0, bin)
	lib.AddToBin(bin.ID(), "a", 0)
	lib.AddToBin(bin.ID(), "c", 1)
	return lib, bin
}

func TestSystemBinListsEverything(t *testing.T) {
	lib, bin := seedLibrary(t)
	if got := len(lib.BinItems(lib.SystemBin().ID())); got != 3 {
		t.Fatalf("system bin shows %d items, want 3", got)
	}
	if got := len(lib.BinItems(bin.ID())); got != 2 {
		t.Fatalf("user bin shows %d items, want 2", got)
	}
	if lib.Bins()[0] != lib.SystemBin() || !lib.SystemBin().System() {
		t.Fatal("system bin should lead the bin list")
	}
	if lib.AddToBin(lib.SystemBin().ID(), "b", 0) != -1 {
		t.Fatal("system bin membership is implicit")
	}
	if removed, _ := lib.RemoveBin(lib.SystemBin().ID()); removed != nil {
		t.Fatal("system bin must not be removable")
	}
}

func TestRemoveItemRestoresMembership(t *testing.T) {
	lib, bin := seedLibrary(t)
	item, index, membership := lib.RemoveItem("c")
	if item == nil || index != 2 || membership == nil || membership.BinID != bin.ID() || membership.Index != 1 {
		t.Fatalf("RemoveItem = %v %d %+v", item, index, membership)
	}
	if slices.Contains(bin.ItemIDs(), "c") {
		t.Fatal("removed item still filed")
	}
	lib.RestoreItem(index, item, membership)
	if got, i := lib.Item("c"); got != item || i != 2 {
		t.Fatalf("item not restored in place: %v %d", got, i)
	}
	if ids := bin.ItemIDs(); !slices.Equal(ids, []string{"a", "c"}) {
		t.Fatalf("membership not restored: %v", ids)
	}
}

func TestBinByNameFoldsCase(t *testing.T) {
	lib, bin := seedLibrary(t)
	if lib.BinByName("b-roll") != bin {
		t.Fatal("expected case-insensitive match")
	}
	if lib.BinByName("all media") != lib.SystemBin() {
		t.Fatal("expected system bin match")
	}
	if lib.BinByName("Music") != nil {
		t.Fatal("unexpected match")
	}
}

func TestBinOfAndEvents(t *testing.T) {
	lib, bin := seedLibrary(t)
	var kinds []EventKind
	lib.Subscribe(func(ev Event) { kinds = append(kinds, ev.Kind) })

	if lib.BinOf("a") != bin || lib.BinOf("b") != nil {
		t.Fatal("BinOf misreports membership")
	}
	if idx := lib.RemoveFromBin(bin.ID(), "a"); idx != 0 {
		t.Fatalf("RemoveFromBin index = %d", idx)
	}
	if prev, ok := lib.RenameBin(bin.ID(), "Cutaways"); !ok || prev != "B-Roll" {
		t.Fatalf("RenameBin = %q %v", prev, ok)
	}
	want := []EventKind{EventBinsChanged, EventBinRenamed}
	if !slices.Equal(kinds, want) {
		t.Fatalf("events = %v, want %v", kinds, want)
	}
}

func TestBatchDeliversAfterFiling(t *testing.T) {
	lib, bin := seedLibrary(t)
	var kinds []EventKind
	var members []int
	lib.Subscribe(func(ev Event) {
		kinds = append(kinds, ev.Kind)
		members = append(members, len(bin.ItemIDs()))
	})

	lib.Batch(func() {
		lib.RemoveFromBin(bin.ID(), "a")
		lib.Batch(func() { lib.AddToBin(bin.ID(), "b", 0) })
		if len(kinds) != 0 {
			t.Fatalf("events delivered inside batch: %v", kinds)
		}
	})
	if len(kinds) != 2 || members[0] != 2 || members[1] != 2 {
		t.Fatalf("events = %v with bin sizes %v", kinds, members)
	}
}
