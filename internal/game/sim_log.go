package game

import (
	"fmt"
	"strings"
	"time"
)

// SimLogEntry is one recorded session event.
type SimLogEntry struct {
	At       time.Duration // session clock
	Actor    string        // "player", "entity", "weapon", or "--" for global events
	Category string        // phase, move, pursuit, weapon, effect, audio, input
	Key      string        // specific event name within the category
	Value    string        // human-readable detail
	NumVal   float64       // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[  3.250s] entity  pursuit  caught          distance=1.19
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[%8.3fs] %-7s %-8s %-16s %s",
		e.At.Seconds(), e.Actor, e.Category, e.Key, e.Value)
}

// SimLog collects structured events during a session. It is unbounded and
// machine-readable; the on-screen feed keeps only a tail of it.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-frame position and
// distance entries are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(at time.Duration, actor, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		At:       at,
		Actor:    actor,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(at time.Duration, actor, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(at, actor, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Len returns the number of entries.
func (sl *SimLog) Len() int {
	return len(sl.entries)
}

// Since returns entries recorded after the first n, for incremental readers.
func (sl *SimLog) Since(n int) []SimLogEntry {
	if n >= len(sl.entries) {
		return nil
	}
	if n < 0 {
		n = 0
	}
	return sl.entries[n:]
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterActor returns entries for a specific actor.
func (sl *SimLog) FilterActor(actor string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Actor == actor {
			out = append(out, e)
		}
	}
	return out
}

// FilterRange returns entries within [from, to] inclusive.
func (sl *SimLog) FilterRange(from, to time.Duration) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.At >= from && e.At <= to {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a time range.
func (sl *SimLog) FormatRange(from, to time.Duration) string {
	var sb strings.Builder
	for _, e := range sl.FilterRange(from, to) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of a session snapshot.
func (sl *SimLog) Summary(snap Snapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at %.2fs ---\n", snap.Clock.Seconds())
	fmt.Fprintf(&sb, "Phase: %s\n", snap.Phase)
	fmt.Fprintf(&sb, "Player: (%.2f, %.2f, %.2f)\n",
		snap.Camera.Position[0], snap.Camera.Position[1], snap.Camera.Position[2])
	if snap.EntitySpawned {
		fmt.Fprintf(&sb, "Entity: (%.2f, %.2f, %.2f) distance=%.2f\n",
			snap.EntityPos[0], snap.EntityPos[1], snap.EntityPos[2], snap.EntityDistance)
	} else {
		sb.WriteString("Entity: not spawned\n")
	}
	fmt.Fprintf(&sb, "Shots: %d  hits: %d  effects: %d\n", snap.Shots, snap.Hits, len(snap.Effects))
	fmt.Fprintf(&sb, "Audio: %s\n", snap.Audio)
	return sb.String()
}
