// Package main implements the dissect CLI/TUI: it decodes packets read from
// a file and browses the resulting frames.
package main

import (
	"sort"
	"sync"
	"time"
)

// DecodeStats tracks observed decode outcomes with thread-safe access,
// windowed by a sliding duration: counts outside the configured duration
// age out on Prune.
type DecodeStats struct {
	mu     sync.RWMutex
	protos map[string]*protoStats // key: top-level chain head, e.g. "ARP", "IPv4"
	window time.Duration
}

// protoStats holds per-protocol counters.
type protoStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	OK        []time.Time // successful top-level decodes
	Errors    []time.Time // top-level DecodeError or a degraded __error__ frame
}

// ProtoSummary is a snapshot of one protocol's stats for display.
type ProtoSummary struct {
	Name      string
	FirstSeen time.Time
	LastSeen  time.Time
	OK        int
	Errors    int
	Total     int
}

// NewDecodeStats creates a tracker with the given sliding window duration.
func NewDecodeStats(window time.Duration) *DecodeStats {
	return &DecodeStats{
		protos: make(map[string]*protoStats),
		window: window,
	}
}

// RecordOK records a successful top-level decode for the given chain head.
func (s *DecodeStats) RecordOK(head string) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.getOrCreate(head, now)
	p.LastSeen = now
	p.OK = append(p.OK, now)
}

// RecordError records a decode that failed or degraded, for the given chain
// head (the start descriptor's name when the decode failed outright).
func (s *DecodeStats) RecordError(head string) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.getOrCreate(head, now)
	p.LastSeen = now
	p.Errors = append(p.Errors, now)
}

func (s *DecodeStats) getOrCreate(head string, now time.Time) *protoStats {
	p, ok := s.protos[head]
	if !ok {
		p = &protoStats{FirstSeen: now}
		s.protos[head] = p
	}
	return p
}

// Summaries returns per-protocol counts within the window, sorted by total
// descending (chattiest first).
func (s *DecodeStats) Summaries() []ProtoSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := time.Now().Add(-s.window)
	out := make([]ProtoSummary, 0, len(s.protos))
	for name, p := range s.protos {
		sum := ProtoSummary{Name: name, FirstSeen: p.FirstSeen, LastSeen: p.LastSeen}
		for _, ts := range p.OK {
			if ts.After(cutoff) {
				sum.OK++
			}
		}
		for _, ts := range p.Errors {
			if ts.After(cutoff) {
				sum.Errors++
			}
		}
		sum.Total = sum.OK + sum.Errors
		out = append(out, sum)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Prune drops timestamps older than the window, removing protocols with no
// activity left in it. The CLI's one-shot decode loop in main.go never
// calls this: a file is decoded once and browsed statically, so its
// timestamps never age past the window during a run. It exists for a
// caller that keeps a DecodeStats alive across a longer-lived decode loop.
func (s *DecodeStats) Prune() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-s.window)
	for name, p := range s.protos {
		p.OK = pruneBefore(p.OK, cutoff)
		p.Errors = pruneBefore(p.Errors, cutoff)
		if len(p.OK) == 0 && len(p.Errors) == 0 {
			delete(s.protos, name)
		}
	}
}

func pruneBefore(timestamps []time.Time, cutoff time.Time) []time.Time {
	kept := make([]time.Time, 0, len(timestamps))
	for _, ts := range timestamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	return kept
}

// Window returns the configured sliding window duration.
func (s *DecodeStats) Window() time.Duration { return s.window }
