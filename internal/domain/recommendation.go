package domain

import (
	"slices"
	"time"
)

// RecommendationCache holds one day's home recommendations.
type RecommendationCache struct {
	Date           string    `json:"date"`
	PrefsSignature string    `json:"prefsSignature"`
	Books          []Book    `json:"books"`
	BatchID        string    `json:"batchId,omitempty"`
	GeneratedAt    time.Time `json:"generatedAt"`
}

// Fresh reports whether the cache can be served for date and signature.
func (c RecommendationCache) Fresh(date, signature string) bool {
	return c.Date == date && c.PrefsSignature == signature && len(c.Books) > 0
}

// RefreshBudget tracks manual refreshes used today.
type RefreshBudget struct {
	Date           string `json:"date"`
	Used           int    `json:"used"`
	PrefsSignature string `json:"prefsSignature"`
}

// Current reports whether the budget belongs to date and signature.
func (b RefreshBudget) Current(date, signature string) bool {
	return b.Date == date && b.PrefsSignature == signature
}

// RecentWindow is a FIFO of recently shown book ids, oldest first.
type RecentWindow []string

// Push appends ids as newest, moving re-shown ids to the end and evicting
// the oldest entries beyond size. A non-positive size empties the window.
func (w RecentWindow) Push(ids []string, size int) RecentWindow {
	if size <= 0 {
		return RecentWindow{}
	}
	incoming := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		incoming[id] = struct{}{}
	}

	out := make(RecentWindow, 0, len(w)+len(ids))
	for _, id := range w {
		if _, again := incoming[id]; !again {
			out = append(out, id)
		}
	}
	for _, id := range ids {
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}

	if len(out) > size {
		out = out[len(out)-size:]
	}
	return out
}

// Set returns the window as a lookup set.
func (w RecentWindow) Set() map[string]struct{} {
	set := make(map[string]struct{}, len(w))
	for _, id := range w {
		set[id] = struct{}{}
	}
	return set
}
