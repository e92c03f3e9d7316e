package badger

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/poiesic/eventide/core"
)

// Key prefixes for different data types
const (
	eventRecordPrefix   = "evtrec"
	eventDayPrefix      = "evtrecd"
	eventLocationPrefix = "evtrecl"
)

// makeEventKey generates a key for an event document by ID.
func makeEventKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", eventRecordPrefix, id))
}

// normalizeIndexTerm lowercases and trims an index term so lookups are
// case-insensitive.
func normalizeIndexTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// makeEventDayKey generates a composite key for the day index.
// Format: prefix:day:id
func makeEventDayKey(day string, id core.ID) []byte {
	return makeTermKey(eventDayPrefix, day, id)
}

// makePartialEventDayKey generates a partial key for day lookups.
func makePartialEventDayKey(day string) []byte {
	return makePartialTermKey(eventDayPrefix, day)
}

// makeEventLocationKey generates a composite key for the location index.
// Format: prefix:location:id
func makeEventLocationKey(location string, id core.ID) []byte {
	return makeTermKey(eventLocationPrefix, location, id)
}

// makePartialEventLocationKey generates a partial key for location lookups.
func makePartialEventLocationKey(location string) []byte {
	return makePartialTermKey(eventLocationPrefix, location)
}

func makeTermKey(prefix, term string, id core.ID) []byte {
	partial := makePartialTermKey(prefix, term)
	buf := make([]byte, len(partial)+8)
	offset := copy(buf, partial)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

func makePartialTermKey(prefix, term string) []byte {
	return []byte(prefix + ":" + normalizeIndexTerm(term) + ":")
}
