package datatypes

// Set is a mapping from key to a deduplicated collection of members,
// each carrying an opaque payload (spec §4.4.2). Adapted from the
// teacher's internal/store/set.go, which already matches the spec's
// missing-key-as-empty convention in Union/Diff/Inter; the payload
// slot is new, letting the index (§4.5) store the encoded Record
// behind each member so it can be reconstructed without external
// state.
type Set struct {
	sets map[string]map[string][]byte
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{sets: make(map[string]map[string][]byte)}
}

// Keys returns every container key currently holding a non-empty set,
// in unspecified order. Used by the memtable/engine layer to snapshot
// resident sets for flushing.
func (s *Set) Keys() []string {
	keys := make([]string, 0, len(s.sets))
	for k := range s.sets {
		keys = append(keys, k)
	}
	return keys
}

// SAdd adds member (with its payload) under key. Returns the number
// of members newly added (spec §9 Open Question #4: newly-added
// count, not members-processed count).
func (s *Set) SAdd(key string, members [][2][]byte) int {
	m := s.sets[key]
	if m == nil {
		m = make(map[string][]byte)
		s.sets[key] = m
	}
	added := 0
	for _, pair := range members {
		member, payload := string(pair[0]), pair[1]
		if _, exists := m[member]; !exists {
			added++
		}
		m[member] = payload
	}
	return added
}

// SRem removes members from key. Returns the number actually removed.
func (s *Set) SRem(key string, members [][]byte) int {
	m, ok := s.sets[key]
	if !ok {
		return 0
	}
	removed := 0
	for _, member := range members {
		k := string(member)
		if _, exists := m[k]; exists {
			delete(m, k)
			removed++
		}
	}
	if len(m) == 0 {
		delete(s.sets, key)
	}
	return removed
}

// SCard returns the cardinality of key's set, 0 if absent.
func (s *Set) SCard(key string) int {
	return len(s.sets[key])
}

// SIsMember reports whether member is in key's set.
func (s *Set) SIsMember(key string, member []byte) bool {
	m, ok := s.sets[key]
	if !ok {
		return false
	}
	_, exists := m[string(member)]
	return exists
}

// SMembers returns the payload of every member of key's set, in
// unspecified order.
func (s *Set) SMembers(key string) [][]byte {
	m, ok := s.sets[key]
	if !ok {
		return nil
	}
	result := make([][]byte, 0, len(m))
	for _, payload := range m {
		result = append(result, payload)
	}
	return result
}

// SUnion returns the payloads of the union of key's set with the
// named other keys. A missing key is treated as empty.
func (s *Set) SUnion(key string, others ...string) [][]byte {
	seen := make(map[string][]byte)
	for member, payload := range s.sets[key] {
		seen[member] = payload
	}
	for _, other := range others {
		for member, payload := range s.sets[other] {
			seen[member] = payload
		}
	}
	return valuesOf(seen)
}

// SInter returns the payloads of the intersection of key's set with
// the named other keys. A missing key (including the primary key)
// yields an empty intersection.
func (s *Set) SInter(key string, others ...string) [][]byte {
	base, ok := s.sets[key]
	if !ok {
		return nil
	}
	result := make([][]byte, 0)
	for member, payload := range base {
		inAll := true
		for _, other := range others {
			if _, exists := s.sets[other][member]; !exists {
				inAll = false
				break
			}
		}
		if inAll {
			result = append(result, payload)
		}
	}
	return result
}

// SDiff returns the payloads of members of key's set that are not
// present in any of the named other keys. A missing other key is
// treated as empty.
func (s *Set) SDiff(key string, others ...string) [][]byte {
	base := s.sets[key]
	result := make([][]byte, 0)
	for member, payload := range base {
		inOther := false
		for _, other := range others {
			if _, exists := s.sets[other][member]; exists {
				inOther = true
				break
			}
		}
		if !inOther {
			result = append(result, payload)
		}
	}
	return result
}

func valuesOf(m map[string][]byte) [][]byte {
	result := make([][]byte, 0, len(m))
	for _, v := range m {
		result = append(result, v)
	}
	return result
}
