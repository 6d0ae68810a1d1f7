package whitelist

// Entry is a populated whitelist slot.
type Entry struct {
	Slot int
	UID  UID
}

// Whitelist is the immutable in-memory copy of the store.
// It is safe for concurrent use since it is never modified after Load.
type Whitelist struct {
	slots     [MaxUsers]UID
	populated [MaxUsers]bool
	count     int
}

// Load reads all MaxUsers slots from store.
func Load(store Store) *Whitelist {
	w := &Whitelist{}
	for slot := 0; slot < MaxUsers; slot++ {
		var u UID
		for i := 0; i < UIDSize; i++ {
			u[i] = store.ByteAt(slot*UIDSize + i)
		}
		w.slots[slot] = u
		if !u.IsEmpty() {
			w.populated[slot] = true
			w.count++
		}
	}
	return w
}

// Empty returns a whitelist with no populated slots. It recognizes nothing.
func Empty() *Whitelist {
	return &Whitelist{}
}

// Lookup returns the first populated slot holding uid.
func (w *Whitelist) Lookup(uid UID) (slot int, ok bool) {
	if w == nil {
		return -1, false
	}
	for slot := 0; slot < MaxUsers; slot++ {
		if w.populated[slot] && w.slots[slot] == uid {
			return slot, true
		}
	}
	return -1, false
}

// Contains reports whether uid is whitelisted.
func (w *Whitelist) Contains(uid UID) bool {
	_, ok := w.Lookup(uid)
	return ok
}

// Len returns the number of populated slots.
func (w *Whitelist) Len() int {
	if w == nil {
		return 0
	}
	return w.count
}

// Entries returns the populated slots in slot order.
func (w *Whitelist) Entries() []Entry {
	if w == nil {
		return nil
	}
	entries := make([]Entry, 0, w.count)
	for slot := 0; slot < MaxUsers; slot++ {
		if w.populated[slot] {
			entries = append(entries, Entry{Slot: slot, UID: w.slots[slot]})
		}
	}
	return entries
}
