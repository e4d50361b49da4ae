package placeholder

import (
	"sort"

	"github.com/vietanhdev/kirapilot-dnd/pkg/board"
	"github.com/vietanhdev/kirapilot-dnd/pkg/cache"
)

// Reader extracts bounds snapshots from an element tree.
//
// Reads go through a short-TTL store so repeated queries within the same
// burst of pointer events reuse one snapshot. The store is advisory: a
// cleared or expired entry just means one extra geometry read.
type Reader struct {
	store cache.Store[Bounds]
}

// NewReader creates a reader backed by the given store.
// A nil store enables the default in-memory TTL cache.
func NewReader(store cache.Store[Bounds]) *Reader {
	if store == nil {
		store = cache.NewMemory[Bounds]("bounds")
	}
	return &Reader{store: store}
}

// ResolveID determines an element's draggable identifier. It checks, in
// order: the data-task-id attribute on the element itself, the element's own
// id, then the first descendant carrying data-task-id. Returns "" when
// nothing resolves; callers propagate the empty id rather than failing.
func ResolveID(el board.Element) string {
	if el == nil {
		return ""
	}
	if v, ok := el.Attr(board.AttrTaskID); ok && v != "" {
		return v
	}
	if id := el.ID(); id != "" {
		return id
	}
	for _, tagged := range board.Tasks(el) {
		if v, ok := tagged.Attr(board.AttrTaskID); ok && v != "" {
			return v
		}
	}
	return ""
}

// ElementBounds reads the element's live rectangle and resolved id.
func (r *Reader) ElementBounds(el board.Element) Bounds {
	return Bounds{ID: ResolveID(el), Rect: el.Rect()}
}

// CachedElementBounds returns the element's bounds, preferring a fresh
// cache entry and writing back on a miss.
func (r *Reader) CachedElementBounds(el board.Element) Bounds {
	id := ResolveID(el)
	if id != "" {
		if b, ok := r.store.Get(id); ok {
			return b
		}
	}
	b := Bounds{ID: id, Rect: el.Rect()}
	if id != "" {
		r.store.Set(id, b)
	}
	return b
}

// ColumnTaskBounds returns the bounds of every task under container, sorted
// ascending by top edge. The task with excludeID (the item being dragged)
// is omitted. All downstream consumers rely on the sort order.
func (r *Reader) ColumnTaskBounds(container board.Element, excludeID string) []Bounds {
	tasks := board.Tasks(container)
	out := make([]Bounds, 0, len(tasks))
	for _, el := range tasks {
		b := r.CachedElementBounds(el)
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rect.Top < out[j].Rect.Top
	})
	return out
}

// Invalidate drops the cached bounds for one task, forcing the next read
// to hit live geometry.
func (r *Reader) Invalidate(taskID string) { r.store.Delete(taskID) }

// Clear drops every cached snapshot. Safe at any time.
func (r *Reader) Clear() { r.store.Clear() }
