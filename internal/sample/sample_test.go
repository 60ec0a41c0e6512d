// ABOUTME: Tests for the random entry sampler
// ABOUTME: Uses seeded randomness to assert bounds and no-duplicate selection

package sample

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/KS1019/my-discord-bot/internal/parse"
)

func makeEntries(n int) []parse.Entry {
	entries := make([]parse.Entry, n)
	for i := range entries {
		entries[i] = parse.Entry{Link: fmt.Sprintf("https://example.com/post/%d", i)}
	}
	return entries
}

func TestPickEmptyInput(t *testing.T) {
	s := New(rand.New(rand.NewSource(1)))
	if got := s.Pick(nil, 5); len(got) != 0 {
		t.Errorf("expected empty result, got %d entries", len(got))
	}
}

func TestPickBoundsAndUniqueness(t *testing.T) {
	entries := makeEntries(10)
	for seed := int64(0); seed < 50; seed++ {
		s := New(rand.New(rand.NewSource(seed)))
		picked := s.Pick(entries, 5)

		if len(picked) < 1 || len(picked) > 5 {
			t.Fatalf("seed %d: picked %d entries, want 1..5", seed, len(picked))
		}

		seen := make(map[string]bool)
		for _, e := range picked {
			if seen[e.Link] {
				t.Fatalf("seed %d: duplicate selection %s", seed, e.Link)
			}
			seen[e.Link] = true
		}
	}
}

func TestPickClampsToAvailable(t *testing.T) {
	entries := makeEntries(2)
	for seed := int64(0); seed < 20; seed++ {
		s := New(rand.New(rand.NewSource(seed)))
		if got := s.Pick(entries, 10); len(got) > 2 {
			t.Fatalf("seed %d: picked %d entries from 2 available", seed, len(got))
		}
	}
}

func TestPickSingleEntryAlwaysSelected(t *testing.T) {
	entries := makeEntries(1)
	s := New(rand.New(rand.NewSource(7)))
	picked := s.Pick(entries, 5)
	if len(picked) != 1 || picked[0].Link != entries[0].Link {
		t.Errorf("single entry should always be picked, got %v", picked)
	}
}

func TestPickDeterministicWithSeed(t *testing.T) {
	entries := makeEntries(10)
	a := New(rand.New(rand.NewSource(42))).Pick(entries, 5)
	b := New(rand.New(rand.NewSource(42))).Pick(entries, 5)

	if len(a) != len(b) {
		t.Fatalf("same seed produced different counts: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Link != b[i].Link {
			t.Errorf("same seed diverged at %d: %s vs %s", i, a[i].Link, b[i].Link)
		}
	}
}
