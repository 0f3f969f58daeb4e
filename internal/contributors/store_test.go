package contributors

import (
	"context"
	"path/filepath"
	"testing"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenPath(filepath.Join(t.TempDir(), "contributors.db"))
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAddAndGetByID(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	added, err := store.Add(ctx, &Contributor{
		SortName:    "Austen, Jane",
		DisplayName: "Jane Austen",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if added.ID == 0 {
		t.Fatal("Add returned zero id")
	}
	if added.CreatedAt.IsZero() || added.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not set: %+v", added)
	}

	got, err := store.GetByID(ctx, added.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.SortName != "Austen, Jane" || got.DisplayName != "Jane Austen" {
		t.Fatalf("round trip = %+v", got)
	}
	if got.Resolved() || got.Superseded() {
		t.Fatalf("fresh contributor flags = %+v", got)
	}
}

func TestAddRequiresAName(t *testing.T) {
	store := newStore(t)
	if _, err := store.Add(context.Background(), &Contributor{}); err == nil {
		t.Fatal("expected error for nameless contributor")
	}
}

func TestGetByIDMissing(t *testing.T) {
	store := newStore(t)
	got, err := store.GetByID(context.Background(), 9999)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Fatalf("GetByID(missing) = %+v, want nil", got)
	}
}

func TestUpdatePersistsResolution(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	added, err := store.Add(ctx, &Contributor{SortName: "Austen, Jane"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	added.DisplayName = "Jane Austen"
	added.FamilyName = "Austen"
	added.WikipediaName = "Jane_Austen"
	added.AuthorityID = "102333412"
	if err := store.Update(ctx, added); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := store.GetByID(ctx, added.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.Resolved() || got.AuthorityID != "102333412" {
		t.Fatalf("resolution not persisted: %+v", got)
	}
	if got.WikipediaName != "Jane_Austen" || got.FamilyName != "Austen" {
		t.Fatalf("name fields not persisted: %+v", got)
	}
}

func TestGetByAuthorityID(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	first, err := store.Add(ctx, &Contributor{SortName: "Austen, Jane", AuthorityID: "102333412"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	second, err := store.Add(ctx, &Contributor{SortName: "Austen, J.", AuthorityID: "102333412"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	// Excluding the second record finds the first, and vice versa.
	got, err := store.GetByAuthorityID(ctx, "102333412", second.ID)
	if err != nil {
		t.Fatalf("GetByAuthorityID: %v", err)
	}
	if got == nil || got.ID != first.ID {
		t.Fatalf("GetByAuthorityID = %+v, want id %d", got, first.ID)
	}

	got, err = store.GetByAuthorityID(ctx, "102333412", first.ID)
	if err != nil {
		t.Fatalf("GetByAuthorityID: %v", err)
	}
	if got == nil || got.ID != second.ID {
		t.Fatalf("GetByAuthorityID = %+v, want id %d", got, second.ID)
	}

	// No other record carries this identity.
	got, err = store.GetByAuthorityID(ctx, "7399731", first.ID)
	if err != nil {
		t.Fatalf("GetByAuthorityID: %v", err)
	}
	if got != nil {
		t.Fatalf("GetByAuthorityID(unclaimed) = %+v, want nil", got)
	}
}

func TestGetByAuthorityIDSkipsSuperseded(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	dup, err := store.Add(ctx, &Contributor{SortName: "Austen, J.", AuthorityID: "102333412"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	canonical, err := store.Add(ctx, &Contributor{SortName: "Austen, Jane", AuthorityID: "102333412"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.MergeInto(ctx, dup.ID, canonical.ID); err != nil {
		t.Fatalf("MergeInto: %v", err)
	}

	got, err := store.GetByAuthorityID(ctx, "102333412", 0)
	if err != nil {
		t.Fatalf("GetByAuthorityID: %v", err)
	}
	if got == nil || got.ID != canonical.ID {
		t.Fatalf("GetByAuthorityID = %+v, want surviving record %d", got, canonical.ID)
	}
}

func TestMergeIntoReassignsContributions(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	dup, err := store.Add(ctx, &Contributor{SortName: "Austen, J."})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	canonical, err := store.Add(ctx, &Contributor{SortName: "Austen, Jane"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := store.AddContribution(ctx, dup.ID, "Emma", "author"); err != nil {
		t.Fatalf("AddContribution: %v", err)
	}
	if _, err := store.AddContribution(ctx, canonical.ID, "Persuasion", "author"); err != nil {
		t.Fatalf("AddContribution: %v", err)
	}

	if err := store.MergeInto(ctx, dup.ID, canonical.ID); err != nil {
		t.Fatalf("MergeInto: %v", err)
	}

	merged, err := store.GetByID(ctx, dup.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !merged.Superseded() || merged.SupersededBy != canonical.ID {
		t.Fatalf("duplicate not marked superseded: %+v", merged)
	}

	titles, err := store.KnownTitles(ctx, canonical.ID)
	if err != nil {
		t.Fatalf("KnownTitles: %v", err)
	}
	if len(titles) != 2 {
		t.Fatalf("titles after merge = %v, want both works", titles)
	}

	orphaned, err := store.KnownTitles(ctx, dup.ID)
	if err != nil {
		t.Fatalf("KnownTitles: %v", err)
	}
	if len(orphaned) != 0 {
		t.Fatalf("superseded record kept titles: %v", orphaned)
	}
}

func TestMergeIntoSelfRejected(t *testing.T) {
	store := newStore(t)
	if err := store.MergeInto(context.Background(), 7, 7); err == nil {
		t.Fatal("expected error merging a record into itself")
	}
}

func TestKnownTitlesDistinct(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	added, err := store.Add(ctx, &Contributor{SortName: "Austen, Jane"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	for _, role := range []string{"author", "introduction"} {
		if _, err := store.AddContribution(ctx, added.ID, "Emma", role); err != nil {
			t.Fatalf("AddContribution: %v", err)
		}
	}

	titles, err := store.KnownTitles(ctx, added.ID)
	if err != nil {
		t.Fatalf("KnownTitles: %v", err)
	}
	if len(titles) != 1 || titles[0] != "Emma" {
		t.Fatalf("titles = %v, want just Emma", titles)
	}
}

func TestListUnresolved(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	pending, err := store.Add(ctx, &Contributor{SortName: "Doe, Jane"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := store.Add(ctx, &Contributor{SortName: "Austen, Jane", AuthorityID: "102333412"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	superseded, err := store.Add(ctx, &Contributor{SortName: "Doe, J."})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.MergeInto(ctx, superseded.ID, pending.ID); err != nil {
		t.Fatalf("MergeInto: %v", err)
	}

	unresolved, err := store.ListUnresolved(ctx)
	if err != nil {
		t.Fatalf("ListUnresolved: %v", err)
	}
	if len(unresolved) != 1 || unresolved[0].ID != pending.ID {
		t.Fatalf("unresolved = %+v, want only id %d", unresolved, pending.ID)
	}

	live, merged, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if live != 2 || merged != 1 {
		t.Fatalf("Count = (%d, %d), want (2, 1)", live, merged)
	}
}

func TestSchemaVersionMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contributors.db")

	store, err := OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	if _, err := store.db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	store.Close()

	if _, err := OpenPath(path); err == nil {
		t.Fatal("expected schema mismatch error")
	}
}
