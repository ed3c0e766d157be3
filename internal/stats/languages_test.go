package stats

import (
	"math"
	"testing"

	"github.com/LukeHagar/stats-action/internal/output"
)

func strPtr(s string) *string { return &s }

func TestAggregateLanguagesEmpty(t *testing.T) {
	t.Parallel()

	languages, total := AggregateLanguages(nil)
	if len(languages) != 0 {
		t.Fatalf("expected no languages, got %#v", languages)
	}
	if total != 0 {
		t.Fatalf("expected zero total, got %d", total)
	}
}

func TestAggregateLanguagesTotals(t *testing.T) {
	t.Parallel()

	repos := []output.RepoInfo{
		{Languages: []output.LanguageEdge{
			{Name: "Go", Size: 6000, Color: strPtr("#00ADD8")},
			{Name: "Shell", Size: 1000, Color: strPtr("#89e051")},
		}},
		{Languages: []output.LanguageEdge{
			{Name: "Go", Size: 3000, Color: strPtr("#ffffff")}, // later color must not win
		}},
	}

	languages, total := AggregateLanguages(repos)
	if total != 10000 {
		t.Fatalf("total = %d, want 10000", total)
	}

	var sumBytes int64
	var sumPct float64
	for _, lang := range languages {
		sumBytes += lang.TotalBytes
		sumPct += lang.Percentage
	}
	if sumBytes != total {
		t.Errorf("sum of totalBytes = %d, want %d", sumBytes, total)
	}
	if math.Abs(sumPct-100) > 0.05 {
		t.Errorf("sum of percentages = %v, want ~100", sumPct)
	}

	if languages[0].LanguageName != "Go" || languages[0].TotalBytes != 9000 {
		t.Errorf("top language = %+v, want Go with 9000 bytes", languages[0])
	}
	if languages[0].Percentage != 90 {
		t.Errorf("Go percentage = %v, want 90", languages[0].Percentage)
	}
	if languages[0].Color == nil || *languages[0].Color != "#00ADD8" {
		t.Errorf("first-seen color must win, got %v", languages[0].Color)
	}
}

func TestAggregateLanguagesTieOrder(t *testing.T) {
	t.Parallel()

	// Equal byte counts must keep first-insertion order
	repos := []output.RepoInfo{
		{Languages: []output.LanguageEdge{
			{Name: "Rust", Size: 500},
			{Name: "Zig", Size: 500},
		}},
	}

	languages, _ := AggregateLanguages(repos)
	if languages[0].LanguageName != "Rust" || languages[1].LanguageName != "Zig" {
		t.Fatalf("tie order broken: %q then %q", languages[0].LanguageName, languages[1].LanguageName)
	}
}

func TestAggregateLanguagesZeroBytes(t *testing.T) {
	t.Parallel()

	repos := []output.RepoInfo{
		{Languages: []output.LanguageEdge{{Name: "Markdown", Size: 0}}},
	}

	languages, total := AggregateLanguages(repos)
	if total != 0 {
		t.Fatalf("total = %d, want 0", total)
	}
	if languages[0].Percentage != 0 {
		t.Errorf("zero total must yield zero percentage, got %v", languages[0].Percentage)
	}
}

func TestAggregateTopics(t *testing.T) {
	t.Parallel()

	repos := []output.RepoInfo{
		{Topics: []string{"cli", "golang"}},
		{Topics: []string{"golang", "stats"}},
		{Topics: []string{"golang", "cli"}},
	}

	top, all := AggregateTopics(repos, 2)

	if len(top) != 2 {
		t.Fatalf("top topics = %d entries, want 2", len(top))
	}
	if top[0].Topic != "golang" || top[0].Count != 3 {
		t.Errorf("top[0] = %+v, want golang x3", top[0])
	}
	if top[1].Topic != "cli" || top[1].Count != 2 {
		t.Errorf("top[1] = %+v, want cli x2", top[1])
	}

	wantAll := []string{"cli", "golang", "stats"}
	if len(all) != len(wantAll) {
		t.Fatalf("all topics = %v, want %v", all, wantAll)
	}
	for i := range wantAll {
		if all[i] != wantAll[i] {
			t.Errorf("all[%d] = %q, want %q", i, all[i], wantAll[i])
		}
	}
}

func TestAggregateTopicsTieOrder(t *testing.T) {
	t.Parallel()

	repos := []output.RepoInfo{
		{Topics: []string{"beta", "alpha"}},
	}

	// Both counts are 1; first-insertion order wins over alphabetical
	top, _ := AggregateTopics(repos, DefaultTopTopics)
	if top[0].Topic != "beta" || top[1].Topic != "alpha" {
		t.Fatalf("tie order broken: %q then %q", top[0].Topic, top[1].Topic)
	}
}
