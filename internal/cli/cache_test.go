package cli

import (
	"context"
	"os"
	"testing"

	"github.com/matzehuels/gitgraph/pkg/cache"
)

func TestClearCache(t *testing.T) {
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, key := range []string{"layout:a", "artifact:a:svg", "artifact:a:png"} {
		if err := fc.Set(ctx, key, []byte("x"), 0); err != nil {
			t.Fatalf("Set(%s) error = %v", key, err)
		}
	}

	n, err := clearCache(dir)
	if err != nil {
		t.Fatalf("clearCache() error = %v", err)
	}
	if n != 3 {
		t.Errorf("clearCache() = %d, want 3", n)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir still holds %d entries", len(entries))
	}
	if _, ok, _ := fc.Get(ctx, "layout:a"); ok {
		t.Error("Get() hit after clear")
	}
}
