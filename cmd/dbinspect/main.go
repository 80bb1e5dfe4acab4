// Command dbinspect prints what a Badger preference store holds.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"

	"github.com/lectoraapp/lectora/internal/domain"
	"github.com/lectoraapp/lectora/internal/logger"
	"github.com/lectoraapp/lectora/internal/store"
)

func main() {
	defaultPath := os.Getenv("DATA_PATH")
	if defaultPath == "" {
		defaultPath = os.ExpandEnv("$HOME/.lectora")
	}
	dataPath := flag.String("data-path", defaultPath, "Directory holding the badger store")
	flag.Parse()

	kv, err := store.OpenBadger(filepath.Join(*dataPath, "badger"), logger.Discard())
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer kv.Close()

	ctx := context.Background()
	prefs := store.NewPrefs(kv, logger.Discard())

	keys, err := kv.Keys(ctx)
	if err != nil {
		log.Fatalf("Failed to list keys: %v", err)
	}
	slices.Sort(keys)

	fmt.Println("=== Preference Store ===")
	for _, k := range keys {
		raw, err := kv.Get(ctx, k)
		if err != nil {
			fmt.Printf("  %-28s <error: %v>\n", k, err)
			continue
		}
		fmt.Printf("  %-28s %6d bytes\n", k, len(raw))
	}
	fmt.Println()

	if p, ok := store.Lookup[domain.UserPrefs](ctx, prefs, store.KeyUserPrefs); ok {
		fmt.Printf("Prefs: level=%s goal=%dmin genres=%v mode=%s\n",
			p.Level, p.DailyMinutesGoal, p.Genres, p.LanguageMode)
		fmt.Printf("  signature: %s\n", p.Signature())
	} else {
		fmt.Println("Prefs: not onboarded")
	}

	rn := store.Load(ctx, prefs, store.KeyReadingNow, domain.ReadingNowList{})
	toRead := store.Load(ctx, prefs, store.KeyToRead, []domain.Book{})
	finished := store.Load(ctx, prefs, store.KeyFinished, []domain.Book{})
	progress := store.Load(ctx, prefs, store.KeyProgressPages, domain.ProgressMap{})
	legacy := store.Load(ctx, prefs, store.KeyProgressLegacy, domain.LegacyProgressMap{})

	fmt.Printf("Library: reading-now=%d to-read=%d finished=%d\n", len(rn.Books), len(toRead), len(finished))
	if rn.Migrated {
		fmt.Println("  reading-now still uses the single-book format")
	}
	fmt.Printf("  progress entries: %d (legacy percent entries: %d)\n", len(progress), len(legacy))
	for _, b := range rn.Books {
		fmt.Printf("  [reading] %s  %d/%d pages\n", b.Title, progress[b.ID], b.PageCount)
	}

	streak := store.Load(ctx, prefs, store.KeyStreak, domain.StreakState{})
	fmt.Printf("Streak: %d days, last read %q\n", streak.StreakCount, streak.LastRead())

	cache := store.Load(ctx, prefs, store.KeyRecommendations, domain.RecommendationCache{})
	budget := store.Load(ctx, prefs, store.KeyRecommendRefreshes, domain.RefreshBudget{})
	recent := store.Load(ctx, prefs, store.KeyRecentRecommended, domain.RecentWindow{})
	fmt.Printf("Recommendations: date=%s batch=%s books=%d refreshes=%d recent=%d\n",
		cache.Date, cache.BatchID, len(cache.Books), budget.Used, len(recent))
}
