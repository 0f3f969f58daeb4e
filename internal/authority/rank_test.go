package authority

import "testing"

func TestRankOrdersByTotalDescending(t *testing.T) {
	// Totals come out as 40, 95, 70; the weak top-popularity candidate
	// triggers the popularity override so only name evidence counts.
	candidates := []*Triple{
		{Candidate: Candidate{AuthorityID: "a"}, Evidence: Evidence{SortName: signalOf(20), LibraryPopularity: 1}},
		{Candidate: Candidate{AuthorityID: "b"}, Evidence: Evidence{SortName: signalOf(47.5), LibraryPopularity: 2}},
		{Candidate: Candidate{AuthorityID: "c"}, Evidence: Evidence{SortName: signalOf(35), LibraryPopularity: 3}},
	}
	ranked := Rank(candidates, nil, false)
	got := []string{
		ranked[0].Candidate.AuthorityID,
		ranked[1].Candidate.AuthorityID,
		ranked[2].Candidate.AuthorityID,
	}
	want := []string{"b", "c", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rank order = %v, want %v", got, want)
		}
	}
}

func TestRankStableOnEqualTotals(t *testing.T) {
	candidates := []*Triple{
		{Candidate: Candidate{AuthorityID: "first"}, Evidence: Evidence{Unimarc: signalOf(90)}},
		{Candidate: Candidate{AuthorityID: "second"}, Evidence: Evidence{Unimarc: signalOf(90)}},
	}
	ranked := Rank(candidates, nil, false)
	if ranked[0].Candidate.AuthorityID != "first" || ranked[1].Candidate.AuthorityID != "second" {
		t.Fatalf("equal totals must preserve input order, got %s then %s",
			ranked[0].Candidate.AuthorityID, ranked[1].Candidate.AuthorityID)
	}
}

func TestRankIgnoresPopularityWhenTopNameEvidenceWeak(t *testing.T) {
	// The most popular candidate is a bad name match; the override keeps
	// the deep-ranked strong match from being buried by its position.
	candidates := []*Triple{
		{Candidate: Candidate{AuthorityID: "popular"}, Evidence: Evidence{SortName: signalOf(40), LibraryPopularity: 1}},
		{Candidate: Candidate{AuthorityID: "buried"}, Evidence: Evidence{SortName: signalOf(95), LibraryPopularity: 20}},
	}
	ranked := Rank(candidates, nil, false)
	if ranked[0].Candidate.AuthorityID != "buried" {
		t.Fatalf("expected strong name match first, got %q", ranked[0].Candidate.AuthorityID)
	}
	// 2*95 plus the authority-id bonus; no popularity penalty.
	if !almostEqual(ranked[0].Evidence.Total, 190.2) {
		t.Fatalf("popularity penalty applied despite override: total = %v", ranked[0].Evidence.Total)
	}
}

func TestRankAppliesPopularityWhenTopNameEvidenceStrong(t *testing.T) {
	candidates := []*Triple{
		{Candidate: Candidate{AuthorityID: "popular"}, Evidence: Evidence{SortName: signalOf(92), LibraryPopularity: 1}},
		{Candidate: Candidate{AuthorityID: "slightly-better-name"}, Evidence: Evidence{SortName: signalOf(94), LibraryPopularity: 5}},
	}
	ranked := Rank(candidates, nil, false)
	// 2*92-10 = 174 beats 2*94-50 = 138.
	if ranked[0].Candidate.AuthorityID != "popular" {
		t.Fatalf("expected popularity to decide, got %q first", ranked[0].Candidate.AuthorityID)
	}
}

func TestRankIgnoresPopularityWhenTopHasNoNameSignals(t *testing.T) {
	candidates := []*Triple{
		{Candidate: Candidate{AuthorityID: "popular"}, Evidence: Evidence{Unimarc: signalOf(90), LibraryPopularity: 1}},
		{Candidate: Candidate{AuthorityID: "named"}, Evidence: Evidence{SortName: signalOf(95), LibraryPopularity: 2}},
	}
	ranked := Rank(candidates, nil, false)
	if ranked[0].Candidate.AuthorityID != "named" {
		t.Fatalf("expected name-evidenced candidate first, got %q", ranked[0].Candidate.AuthorityID)
	}
	if !almostEqual(ranked[0].Evidence.Total, 190.2) {
		t.Fatalf("unexpected total %v", ranked[0].Evidence.Total)
	}
}

func TestRankEmpty(t *testing.T) {
	if got := Rank(nil, nil, false); len(got) != 0 {
		t.Fatalf("Rank(nil) = %v, want empty", got)
	}
}

func TestSelectBestThreshold(t *testing.T) {
	below := []*Triple{
		{Evidence: Evidence{SortName: signalOf(34.95)}},
	}
	if got := SelectBest(below, nil, false); got != nil {
		t.Fatalf("SelectBest(total=69.9) = %+v, want nil", got)
	}

	exactly := []*Triple{
		{Evidence: Evidence{SortName: signalOf(35)}},
	}
	got := SelectBest(exactly, nil, false)
	if got == nil {
		t.Fatal("SelectBest(total=70) = nil, want candidate")
	}
	if got.Evidence.Total != 70 {
		t.Fatalf("selected total = %v, want 70", got.Evidence.Total)
	}
}

func TestSelectBestEmpty(t *testing.T) {
	if got := SelectBest(nil, nil, false); got != nil {
		t.Fatalf("SelectBest(nil) = %+v, want nil", got)
	}
}
