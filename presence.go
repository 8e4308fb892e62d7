package pbjson

import (
	"strings"
	"sync"
)

// Presence is the bit flag collected by WithMeta APIs.
type Presence uint8

const (
	PresenceSeen     Presence = 1 << iota // Field key appeared in the input.
	PresenceWasNull                       // Field value was null; the default was kept.
	PresenceWireName                      // Key used the wire (snake_case) spelling.
)

func (p Presence) String() string {
	var parts []string
	if p&PresenceSeen != 0 {
		parts = append(parts, "seen")
	}
	if p&PresenceWasNull != 0 {
		parts = append(parts, "null")
	}
	if p&PresenceWireName != 0 {
		parts = append(parts, "wire-name")
	}
	if len(parts) == 0 {
		return "absent"
	}
	return strings.Join(parts, "|")
}

// PresenceMap maps canonical JSON Pointers (JSON names, map keys in canonical
// form) to Presence flags. The root object is always recorded at "/".
type PresenceMap map[string]Presence

// Seen reports whether the key at pointer appeared in the input.
func (pm PresenceMap) Seen(pointer string) bool { return pm[pointer]&PresenceSeen != 0 }

// WasNull reports whether the key at pointer carried a JSON null.
func (pm PresenceMap) WasNull(pointer string) bool { return pm[pointer]&PresenceWasNull != 0 }

// Decoded carries the decoded value along with presence metadata.
type Decoded[T any] struct {
	Value    T
	Presence PresenceMap
}

type presenceCollector struct {
	pm PresenceMap
}

func newPresenceCollector() *presenceCollector {
	return &presenceCollector{pm: PresenceMap{"/": PresenceSeen}}
}

func (c *presenceCollector) observe(pointer string, null, wireName bool) {
	p := PresenceSeen
	if null {
		p |= PresenceWasNull
	}
	if wireName {
		p |= PresenceWireName
	}
	c.pm[pointer] |= p
}

var (
	_internMu   sync.RWMutex
	_internPool = map[string]string{}
)

func internString(s string) string {
	_internMu.RLock()
	if v, ok := _internPool[s]; ok {
		_internMu.RUnlock()
		return v
	}
	_internMu.RUnlock()

	_internMu.Lock()
	if v, ok := _internPool[s]; ok {
		_internMu.Unlock()
		return v
	}
	_internPool[s] = s
	_internMu.Unlock()
	return s
}

func applyPresenceOptions(pm PresenceMap, popt PresenceOpt, ropt PathRenderOpt) PresenceMap {
	if pm == nil || !popt.Collect {
		return nil
	}
	if len(popt.Include) == 0 && len(popt.Exclude) == 0 && !ropt.Intern {
		return pm
	}
	keep := func(path string) bool {
		if len(popt.Include) > 0 && !hasAnyPrefix(path, popt.Include) {
			return false
		}
		return !hasAnyPrefix(path, popt.Exclude)
	}
	filtered := make(PresenceMap, len(pm))
	for k, v := range pm {
		if !keep(k) {
			continue
		}
		if ropt.Intern {
			k = internString(k)
		}
		filtered[k] = v
	}
	return filtered
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
