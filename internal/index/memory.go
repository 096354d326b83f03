package index

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/MrSnakeDoc/hfqr/internal/domain"
)

type profileEntry struct {
	profile   *domain.Profile
	expiresAt time.Time
}

// MemoryIndex keeps resolved profiles, lookup counters and QR themes in memory.
// It is the first cache tier and the only one when Redis is disabled.
type MemoryIndex struct {
	mu              sync.RWMutex
	profiles        map[string]profileEntry  // username (lowercase) -> entry
	lookups         map[string]int64         // username (lowercase) -> lookups
	themes          []*domain.Theme          // in file order, first one is the default
	themeByID       map[string]*domain.Theme // ID -> Theme
	lastThemeReload time.Time                // Timestamp of last themes reload
	now             func() time.Time
}

// NewMemoryIndex creates a new memory index seeded with the builtin themes
func NewMemoryIndex() *MemoryIndex {
	idx := &MemoryIndex{
		profiles: make(map[string]profileEntry),
		lookups:  make(map[string]int64),
		now:      time.Now,
	}
	idx.setThemes(domain.BuiltinThemes())
	return idx
}

func key(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// ─────────────────────────────────────────────────────────────────
// Profile methods
// ─────────────────────────────────────────────────────────────────

// PutProfile caches a profile until ResolvedAt+ttl. Fallbacks are ignored.
func (idx *MemoryIndex) PutProfile(profile *domain.Profile, ttl time.Duration) {
	if profile == nil || profile.Fallback || ttl <= 0 {
		return
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.putLocked(profile, ttl)
}

// UpdateProfiles merges profiles loaded from the shared cache
func (idx *MemoryIndex) UpdateProfiles(profiles []*domain.Profile, ttl time.Duration) int {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	added := 0
	for _, p := range profiles {
		if p == nil || p.Fallback {
			continue
		}
		if idx.putLocked(p, ttl) {
			added++
		}
	}
	return added
}

func (idx *MemoryIndex) putLocked(profile *domain.Profile, ttl time.Duration) bool {
	base := profile.ResolvedAt
	if base.IsZero() {
		base = idx.now()
	}
	expiresAt := base.Add(ttl)
	if !expiresAt.After(idx.now()) {
		return false
	}
	idx.profiles[key(profile.Username)] = profileEntry{profile: profile, expiresAt: expiresAt}
	return true
}

// GetProfile retrieves a live profile by username
func (idx *MemoryIndex) GetProfile(username string) (*domain.Profile, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	entry, ok := idx.profiles[key(username)]
	if !ok || !entry.expiresAt.After(idx.now()) {
		return nil, false
	}
	return entry.profile, true
}

// DeleteProfile removes a profile from the index
func (idx *MemoryIndex) DeleteProfile(username string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	delete(idx.profiles, key(username))
}

// FlushProfiles drops every cached profile and returns how many were dropped
func (idx *MemoryIndex) FlushProfiles() int {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	n := len(idx.profiles)
	idx.profiles = make(map[string]profileEntry)
	return n
}

// EvictExpired removes expired profiles and returns how many were removed
func (idx *MemoryIndex) EvictExpired() int {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	now := idx.now()
	evicted := 0
	for k, entry := range idx.profiles {
		if !entry.expiresAt.After(now) {
			delete(idx.profiles, k)
			evicted++
		}
	}
	return evicted
}

// ProfileCount returns the number of entries, expired or not
func (idx *MemoryIndex) ProfileCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.profiles)
}

// IncrementLookups bumps the local lookup counter of a username
func (idx *MemoryIndex) IncrementLookups(username string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.lookups[key(username)]++
}

// LookupCount is one row of the local lookup leaderboard.
type LookupCount struct {
	Username string `json:"username"`
	Count    int64  `json:"count"`
}

// TopLookups returns the n most looked-up usernames, highest first.
// Ties are ordered by username.
func (idx *MemoryIndex) TopLookups(n int) []LookupCount {
	idx.mu.RLock()
	rows := make([]LookupCount, 0, len(idx.lookups))
	for u, c := range idx.lookups {
		rows = append(rows, LookupCount{Username: u, Count: c})
	}
	idx.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Username < rows[j].Username
	})

	if n < 0 {
		n = 0
	}
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

// ─────────────────────────────────────────────────────────────────
// Theme methods
// ─────────────────────────────────────────────────────────────────

// UpdateThemes replaces all themes in the index. An empty list is ignored
// so a broken reload never leaves the service without themes.
func (idx *MemoryIndex) UpdateThemes(themes []*domain.Theme) bool {
	if len(themes) == 0 {
		return false
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.setThemes(themes)
	idx.lastThemeReload = idx.now()
	return true
}

func (idx *MemoryIndex) setThemes(themes []*domain.Theme) {
	idx.themes = make([]*domain.Theme, len(themes))
	copy(idx.themes, themes)
	idx.themeByID = make(map[string]*domain.Theme, len(themes))
	for _, theme := range themes {
		idx.themeByID[theme.ID] = theme
	}
}

// GetTheme retrieves a theme by ID
func (idx *MemoryIndex) GetTheme(id string) (*domain.Theme, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	theme, ok := idx.themeByID[id]
	return theme, ok
}

// ThemeOrDefault returns the theme with this ID, or the first theme
func (idx *MemoryIndex) ThemeOrDefault(id string) *domain.Theme {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if theme, ok := idx.themeByID[id]; ok {
		return theme
	}
	return idx.themes[0]
}

// GetAllThemes returns all themes in order
func (idx *MemoryIndex) GetAllThemes() []*domain.Theme {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	themes := make([]*domain.Theme, len(idx.themes))
	copy(themes, idx.themes)
	return themes
}

// ThemeCount returns the number of themes in the index
func (idx *MemoryIndex) ThemeCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.themes)
}

// GetLastThemeReload returns the timestamp of the last themes reload,
// zero while the builtin presets are in use
func (idx *MemoryIndex) GetLastThemeReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastThemeReload
}
