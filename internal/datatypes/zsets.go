package datatypes

// ZSets is a mapping from key to a sorted set, mirroring the
// per-key-map shape of List and Set (spec §3.4).
type ZSets struct {
	sets map[string]*SortedSet
}

// NewZSets creates an empty ZSets container.
func NewZSets() *ZSets {
	return &ZSets{sets: make(map[string]*SortedSet)}
}

// Keys returns every container key currently holding a non-empty
// sorted set, in unspecified order. Used by the memtable/engine layer
// to snapshot resident sorted sets for flushing.
func (z *ZSets) Keys() []string {
	keys := make([]string, 0, len(z.sets))
	for k, s := range z.sets {
		if s.Len() > 0 {
			keys = append(keys, k)
		}
	}
	return keys
}

// Get returns the sorted set for key, or nil if it has never been
// written.
func (z *ZSets) Get(key string) *SortedSet {
	return z.sets[key]
}

// GetOrCreate returns the sorted set for key, creating it if absent.
func (z *ZSets) GetOrCreate(key string) *SortedSet {
	s, ok := z.sets[key]
	if !ok {
		s = NewSortedSet()
		z.sets[key] = s
	}
	return s
}

// DeleteIfEmpty removes key's sorted set once it has become empty.
func (z *ZSets) DeleteIfEmpty(key string) {
	if s, ok := z.sets[key]; ok && s.Len() == 0 {
		delete(z.sets, key)
	}
}
