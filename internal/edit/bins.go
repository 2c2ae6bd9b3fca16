package edit

import (
	"slices"
	"strings"

	"github.com/google/uuid"

	"reel/internal/history"
	"reel/internal/media"
	"reel/internal/textutil"
	"reel/internal/timeline"
)

// ImportItemCommand adds a media item to the library.
type ImportItemCommand struct {
	lib   *media.Library
	item  *media.Item
	index int
}

// ImportItem builds a command that imports item. An empty name is derived
// from the file path and an empty id is generated.
func ImportItem(lib *media.Library, item media.Item) (*ImportItemCommand, error) {
	const op = "import media"
	if lib == nil {
		return nil, history.Invalid(history.ErrNotFound, op, "no media library")
	}
	item.Path = strings.TrimSpace(item.Path)
	if item.Path == "" {
		return nil, history.Invalid(history.ErrInvalidName, op, "media path must not be empty")
	}
	for _, existing := range lib.Items() {
		if existing.Path == item.Path {
			return nil, history.Invalid(history.ErrDuplicateName, op, "%s is already imported as %q", item.Path, existing.Name)
		}
	}
	switch item.Kind {
	case media.KindVideo, media.KindAudio, media.KindImage:
	case "":
		item.Kind = media.KindVideo
	default:
		return nil, history.Invalid(history.ErrUnsupported, op, "unknown media kind %q", item.Kind)
	}
	if item.DurationFrames < 0 {
		return nil, history.Invalid(history.ErrInvalidRange, op, "duration %d is negative", item.DurationFrames)
	}
	if !finite(item.FrameRate) || item.FrameRate < 0 {
		return nil, history.Invalid(history.ErrInvalidRange, op, "frame rate %v is invalid", item.FrameRate)
	}
	if item.Name == "" {
		item.Name = textutil.DisplayNameFromPath(item.Path)
	}
	name, err := cleanName(op, "media", item.Name)
	if err != nil {
		return nil, err
	}
	item.Name = name
	if item.ID == "" {
		item.ID = uuid.NewString()
	} else if existing, _ := lib.Item(item.ID); existing != nil {
		return nil, history.Invalid(history.ErrDuplicateName, op, "media id %s already in use", item.ID)
	}
	return &ImportItemCommand{lib: lib, item: &item, index: lib.ItemCount()}, nil
}

func (c *ImportItemCommand) Do()                 { c.lib.InsertItem(c.index, c.item) }
func (c *ImportItemCommand) Undo()               { c.lib.RemoveItem(c.item.ID) }
func (c *ImportItemCommand) Description() string { return "Import Media" }
func (c *ImportItemCommand) Item() *media.Item   { return c.item }

type removeItem struct {
	lib        *media.Library
	id         string
	item       *media.Item
	index      int
	membership *media.Membership
}

// RemoveItem builds a command that deletes a media item. Items still used by
// clips on tl are protected. Undo restores the item's bin membership.
func RemoveItem(lib *media.Library, tl *timeline.Timeline, id string) (history.Command, error) {
	const op = "remove media"
	if lib == nil {
		return nil, history.Invalid(history.ErrNotFound, op, "no media library")
	}
	item, _ := lib.Item(id)
	if item == nil {
		return nil, history.Invalid(history.ErrNotFound, op, "media item %s not found", id)
	}
	if n := clipsUsing(tl, id); n > 0 {
		return nil, history.Invalid(history.ErrProtected, op, "%q is used by %d clip(s)", item.Name, n)
	}
	return &removeItem{lib: lib, id: id}, nil
}

func clipsUsing(tl *timeline.Timeline, mediaID string) int {
	if tl == nil {
		return 0
	}
	n := 0
	for _, track := range tl.Tracks() {
		for _, clip := range track.Clips() {
			if clip.MediaID() == mediaID {
				n++
			}
		}
	}
	return n
}

func (c *removeItem) Do()                 { c.item, c.index, c.membership = c.lib.RemoveItem(c.id) }
func (c *removeItem) Undo()               { c.lib.RestoreItem(c.index, c.item, c.membership) }
func (c *removeItem) Description() string { return "Remove Media" }

// CreateBinCommand adds a user bin after the existing ones.
type CreateBinCommand struct {
	lib   *media.Library
	bin   *media.Bin
	index int
}

// CreateBin builds a command that creates a bin called name. Bin names are
// unique under case folding, including the system bin's name.
func CreateBin(lib *media.Library, name string) (*CreateBinCommand, error) {
	const op = "create bin"
	if lib == nil {
		return nil, history.Invalid(history.ErrNotFound, op, "no media library")
	}
	name, err := cleanName(op, "bin", name)
	if err != nil {
		return nil, err
	}
	if existing := lib.BinByName(name); existing != nil {
		return nil, history.Invalid(history.ErrDuplicateName, op, "a bin named %q already exists", existing.Name())
	}
	return &CreateBinCommand{lib: lib, bin: media.NewBin("", name), index: len(lib.UserBins())}, nil
}

func (c *CreateBinCommand) Do()                 { c.lib.InsertBin(c.index, c.bin) }
func (c *CreateBinCommand) Undo()               { c.lib.RemoveBin(c.bin.ID()) }
func (c *CreateBinCommand) Description() string { return "Create Bin" }
func (c *CreateBinCommand) Bin() *media.Bin     { return c.bin }

func userBin(op string, lib *media.Library, id string) (*media.Bin, error) {
	if lib == nil {
		return nil, history.Invalid(history.ErrNotFound, op, "no media library")
	}
	bin, _ := lib.Bin(id)
	if bin == nil {
		return nil, history.Invalid(history.ErrNotFound, op, "bin %s not found", id)
	}
	if bin.System() {
		return nil, history.Invalid(history.ErrProtected, op, "%q cannot be changed", bin.Name())
	}
	return bin, nil
}

type renameBin struct {
	lib      *media.Library
	id       string
	name     string
	previous string
}

// RenameBin builds a command that renames a user bin.
func RenameBin(lib *media.Library, id, name string) (history.Command, error) {
	const op = "rename bin"
	bin, err := userBin(op, lib, id)
	if err != nil {
		return nil, err
	}
	name, err = cleanName(op, "bin", name)
	if err != nil {
		return nil, err
	}
	if name == bin.Name() {
		return nil, history.Invalid(history.ErrSameLocation, op, "bin is already named %q", name)
	}
	if existing := lib.BinByName(name); existing != nil && existing != bin {
		return nil, history.Invalid(history.ErrDuplicateName, op, "a bin named %q already exists", existing.Name())
	}
	return &renameBin{lib: lib, id: id, name: name}, nil
}

func (c *renameBin) Do()                 { c.previous, _ = c.lib.RenameBin(c.id, c.name) }
func (c *renameBin) Undo()               { c.lib.RenameBin(c.id, c.previous) }
func (c *renameBin) Description() string { return "Rename Bin" }

type removeBin struct {
	lib   *media.Library
	bin   *media.Bin
	index int
}

func (c *removeBin) Do()                 { _, c.index = c.lib.RemoveBin(c.bin.ID()) }
func (c *removeBin) Undo()               { c.lib.InsertBin(c.index, c.bin) }
func (c *removeBin) Description() string { return "Delete Bin" }

type unfileItem struct {
	lib         *media.Library
	binID, item string
	index       int
}

func (c *unfileItem) Do()                 { c.index = c.lib.RemoveFromBin(c.binID, c.item) }
func (c *unfileItem) Undo()               { c.lib.AddToBin(c.binID, c.item, c.index) }
func (c *unfileItem) Description() string { return "Remove From Bin" }

// DeleteBin builds a compound command that empties a user bin and removes
// it. Its items stay in the library. Undo refiles them in their old order.
func DeleteBin(lib *media.Library, id string) (history.Command, error) {
	bin, err := userBin("delete bin", lib, id)
	if err != nil {
		return nil, err
	}
	ids := bin.ItemIDs()
	cmds := make([]history.Command, 0, len(ids)+1)
	for _, itemID := range slices.Backward(ids) {
		cmds = append(cmds, &unfileItem{lib: lib, binID: id, item: itemID})
	}
	cmds = append(cmds, &removeBin{lib: lib, bin: bin})
	return &libraryBatched{Command: history.Group("Delete Bin", cmds...), lib: lib}, nil
}

type moveItemToBin struct {
	lib       *media.Library
	item      string
	target    string
	from      string
	fromIndex int
}

// MoveItemToBin builds a command that files an item into a user bin. Moving
// to the system bin unfiles the item.
func MoveItemToBin(lib *media.Library, itemID, binID string) (history.Command, error) {
	const op = "move to bin"
	if lib == nil {
		return nil, history.Invalid(history.ErrNotFound, op, "no media library")
	}
	item, _ := lib.Item(itemID)
	if item == nil {
		return nil, history.Invalid(history.ErrNotFound, op, "media item %s not found", itemID)
	}
	target, _ := lib.Bin(binID)
	if target == nil {
		return nil, history.Invalid(history.ErrNotFound, op, "bin %s not found", binID)
	}
	current := lib.BinOf(itemID)
	if current == target || (current == nil && target.System()) {
		return nil, history.Invalid(history.ErrSameLocation, op, "%q is already in %q", item.Name, target.Name())
	}
	targetID := target.ID()
	if target.System() {
		targetID = ""
	}
	return &moveItemToBin{lib: lib, item: itemID, target: targetID}, nil
}

func (c *moveItemToBin) Do() {
	c.lib.Batch(func() {
		c.from, c.fromIndex = "", -1
		if bin := c.lib.BinOf(c.item); bin != nil {
			c.from = bin.ID()
			c.fromIndex = c.lib.RemoveFromBin(c.from, c.item)
		}
		if bin, _ := c.lib.Bin(c.target); bin != nil {
			c.lib.AddToBin(c.target, c.item, len(bin.ItemIDs()))
		}
	})
}

func (c *moveItemToBin) Undo() {
	c.lib.Batch(func() {
		if c.target != "" {
			c.lib.RemoveFromBin(c.target, c.item)
		}
		if c.from != "" {
			c.lib.AddToBin(c.from, c.item, c.fromIndex)
		}
	})
}

func (c *moveItemToBin) Description() string { return "Move to Bin" }
