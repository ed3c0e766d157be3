package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSnapshotNullability(t *testing.T) {
	t.Parallel()

	// Unset optional strings marshal to null; name and username stay ""
	data, err := json.Marshal(&Snapshot{Username: "octocat"})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	s := string(data)

	for _, want := range []string{
		`"name":""`,
		`"username":"octocat"`,
		`"bio":null`,
		`"company":null`,
		`"email":null`,
		`"twitterUsername":null`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("snapshot JSON missing %s:\n%s", want, s)
		}
	}

	bio := "hello"
	data, err = json.Marshal(&Snapshot{Bio: &bio})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"bio":"hello"`) {
		t.Errorf("set pointer field not marshaled: %s", data)
	}
}

func TestWriteSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "stats.json")
	color := "#00ADD8"
	snap := &Snapshot{
		Username:  "octocat",
		FetchedAt: 1718000000000,
		TopLanguages: []LanguageAggregate{
			{LanguageName: "Go", Color: &color, TotalBytes: 9000, Percentage: 90},
		},
		ContributionStats: ContributionStats{
			LongestStreak:    12,
			MonthlyBreakdown: []MonthlyContribution{{Month: "2024-01", Contributions: 15}},
		},
	}

	if err := WriteSnapshot(path, snap); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	// No temp file may be left behind
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}

	got, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if got.Username != snap.Username || got.FetchedAt != snap.FetchedAt {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if len(got.TopLanguages) != 1 || *got.TopLanguages[0].Color != color {
		t.Errorf("languages mismatch: %+v", got.TopLanguages)
	}
	if got.ContributionStats.LongestStreak != 12 {
		t.Errorf("contributionStats mismatch: %+v", got.ContributionStats)
	}
}

func TestWriteSnapshotReplacesExisting(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "stats.json")
	if err := WriteSnapshot(path, &Snapshot{Username: "first"}); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if err := WriteSnapshot(path, &Snapshot{Username: "second"}); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	got, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if got.Username != "second" {
		t.Fatalf("username = %q, want second", got.Username)
	}
}

func TestReadSnapshotMissing(t *testing.T) {
	t.Parallel()

	if _, err := ReadSnapshot(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
