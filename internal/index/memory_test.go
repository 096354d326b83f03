package index

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/MrSnakeDoc/hfqr/internal/domain"
)

func newTestIndex(now time.Time) (*MemoryIndex, *time.Time) {
	clock := now
	idx := NewMemoryIndex()
	idx.now = func() time.Time { return clock }
	return idx, &clock
}

func resolved(username string, at time.Time) *domain.Profile {
	return &domain.Profile{
		Username:   username,
		ProfileURL: domain.ProfileURLFor(username),
		Type:       domain.ProfileType,
		FullName:   username,
		AvatarURL:  domain.DefaultAvatarURL,
		ResolvedAt: at,
	}
}

func TestNewMemoryIndex(t *testing.T) {
	index := NewMemoryIndex()
	if index == nil {
		t.Fatal("NewMemoryIndex() returned nil")
	}
	if index.ProfileCount() != 0 {
		t.Errorf("NewMemoryIndex() should start with no profiles, got %v", index.ProfileCount())
	}
	if index.ThemeCount() != len(domain.BuiltinThemes()) {
		t.Errorf("NewMemoryIndex() should start with the builtin themes, got %v", index.ThemeCount())
	}
	if !index.GetLastThemeReload().IsZero() {
		t.Error("GetLastThemeReload() should be zero before any reload")
	}
}

func TestPutAndGetProfile(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	index, clock := newTestIndex(start)

	index.PutProfile(resolved("ReubenCF", start), time.Hour)

	got, ok := index.GetProfile("reubencf")
	if !ok {
		t.Fatal("GetProfile() should find a profile regardless of case")
	}
	if got.Username != "ReubenCF" {
		t.Errorf("GetProfile() username = %v, want ReubenCF", got.Username)
	}

	*clock = start.Add(61 * time.Minute)
	if _, ok := index.GetProfile("reubencf"); ok {
		t.Error("GetProfile() should not return an expired profile")
	}
}

func TestPutProfileIgnoresFallback(t *testing.T) {
	index := NewMemoryIndex()

	index.PutProfile(domain.DefaultProfile("ghost"), time.Hour)
	index.PutProfile(nil, time.Hour)
	index.PutProfile(resolved("alice", time.Now()), 0)

	if index.ProfileCount() != 0 {
		t.Errorf("ProfileCount() = %v, want 0", index.ProfileCount())
	}
}

func TestUpdateProfilesSkipsExpired(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	index, _ := newTestIndex(start)

	added := index.UpdateProfiles([]*domain.Profile{
		resolved("fresh", start.Add(-time.Minute)),
		resolved("stale", start.Add(-2*time.Hour)),
		domain.DefaultProfile("fallback"),
	}, time.Hour)

	if added != 1 {
		t.Errorf("UpdateProfiles() added %v, want 1", added)
	}
	if _, ok := index.GetProfile("fresh"); !ok {
		t.Error("fresh profile should be loaded")
	}
}

func TestEvictExpired(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	index, clock := newTestIndex(start)

	index.PutProfile(resolved("short", start), time.Minute)
	index.PutProfile(resolved("long", start), time.Hour)

	*clock = start.Add(5 * time.Minute)
	if evicted := index.EvictExpired(); evicted != 1 {
		t.Errorf("EvictExpired() = %v, want 1", evicted)
	}
	if index.ProfileCount() != 1 {
		t.Errorf("ProfileCount() = %v, want 1", index.ProfileCount())
	}
}

func TestDeleteAndFlushProfiles(t *testing.T) {
	index := NewMemoryIndex()
	now := time.Now()

	index.PutProfile(resolved("alice", now), time.Hour)
	index.PutProfile(resolved("bob", now), time.Hour)

	index.DeleteProfile("ALICE")
	if _, ok := index.GetProfile("alice"); ok {
		t.Error("DeleteProfile() should remove the profile")
	}

	if n := index.FlushProfiles(); n != 1 {
		t.Errorf("FlushProfiles() = %v, want 1", n)
	}
	if index.ProfileCount() != 0 {
		t.Error("FlushProfiles() should empty the index")
	}
}

func TestTopLookups(t *testing.T) {
	index := NewMemoryIndex()

	for _, u := range []string{"bob", "alice", "Alice", "carol", "bob", "alice"} {
		index.IncrementLookups(u)
	}

	top := index.TopLookups(2)
	if len(top) != 2 {
		t.Fatalf("TopLookups(2) returned %v rows", len(top))
	}
	if top[0].Username != "alice" || top[0].Count != 3 {
		t.Errorf("top[0] = %+v, want alice with 3", top[0])
	}
	if top[1].Username != "bob" || top[1].Count != 2 {
		t.Errorf("top[1] = %+v, want bob with 2", top[1])
	}

	if got := index.TopLookups(-1); len(got) != 0 {
		t.Errorf("TopLookups(-1) = %v, want empty", got)
	}
}

func TestUpdateThemes(t *testing.T) {
	index := NewMemoryIndex()

	custom := []*domain.Theme{
		{ID: "mono", Name: "Mono", GradientFrom: "#000", GradientTo: "#333", Foreground: "#000", Background: "#fff"},
		{ID: "ocean", Name: "Ocean", GradientFrom: "#0ea5e9", GradientTo: "#1e3a8a", Foreground: "#1e3a8a", Background: "#fff"},
	}

	if !index.UpdateThemes(custom) {
		t.Fatal("UpdateThemes() should accept a non-empty list")
	}
	if index.ThemeCount() != 2 {
		t.Errorf("ThemeCount() = %v, want 2", index.ThemeCount())
	}
	if index.GetLastThemeReload().IsZero() {
		t.Error("GetLastThemeReload() should be set after a reload")
	}

	if theme, ok := index.GetTheme("ocean"); !ok || theme.Name != "Ocean" {
		t.Errorf("GetTheme(ocean) = %v, %v", theme, ok)
	}
	if _, ok := index.GetTheme("sunflower"); ok {
		t.Error("builtin themes should be replaced")
	}
	if theme := index.ThemeOrDefault("missing"); theme.ID != "mono" {
		t.Errorf("ThemeOrDefault(missing) = %v, want first theme mono", theme.ID)
	}

	if index.UpdateThemes(nil) {
		t.Error("UpdateThemes(nil) should be rejected")
	}
	if index.ThemeCount() != 2 {
		t.Error("a rejected update should keep the previous themes")
	}
}

func TestGetAllThemesReturnsCopy(t *testing.T) {
	index := NewMemoryIndex()

	themes := index.GetAllThemes()
	themes[0] = nil

	if index.GetAllThemes()[0] == nil {
		t.Error("GetAllThemes() should return a copy of the slice")
	}
}

func TestConcurrentAccess(t *testing.T) {
	index := NewMemoryIndex()
	now := time.Now()

	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			index.PutProfile(resolved(fmt.Sprintf("user%d", i%10), now), time.Hour)
			_, _ = index.GetProfile("user1")
			_ = index.ThemeOrDefault("indigo")
		}(i)
	}

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			index.IncrementLookups("user1")
		}()
	}

	wg.Wait()

	if index.ProfileCount() != 10 {
		t.Errorf("ProfileCount() = %v, want 10", index.ProfileCount())
	}
	top := index.TopLookups(1)
	if len(top) != 1 || top[0].Count != 100 {
		t.Errorf("concurrent IncrementLookups() = %+v, want 100", top)
	}
}
