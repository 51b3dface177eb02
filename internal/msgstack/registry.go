package msgstack

// ContextRegistry maps producer description strings to integer context ids.
// Ids start at 1 and are stable for the lifetime of the registry; there is
// no way to remove an entry.
type ContextRegistry struct {
	ids  map[string]uint32
	next uint32
}

// NewContextRegistry creates an empty registry.
func NewContextRegistry() *ContextRegistry {
	return &ContextRegistry{
		ids:  make(map[string]uint32),
		next: 1,
	}
}

// ContextID returns the context id for description, allocating the next
// unused id on first sight. Repeated calls with the same description return
// the same id.
func (r *ContextRegistry) ContextID(description string) uint32 {
	if id, ok := r.ids[description]; ok {
		return id
	}

	id := r.next
	r.next++
	r.ids[description] = id
	return id
}

// Len returns the number of registered descriptions.
func (r *ContextRegistry) Len() int {
	return len(r.ids)
}
