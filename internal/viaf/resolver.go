package viaf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"authorlink/internal/authority"
	"authorlink/internal/contributors"
	"authorlink/internal/logging"
)

// Store is the slice of the contributor database the resolver needs.
type Store interface {
	GetByAuthorityID(ctx context.Context, authorityID string, excludeID int64) (*contributors.Contributor, error)
	Update(ctx context.Context, contributor *contributors.Contributor) error
	MergeInto(ctx context.Context, fromID, toID int64) error
	KnownTitles(ctx context.Context, contributorID int64) ([]string, error)
}

// Lookup is the authority-service surface the resolver needs.
type Lookup interface {
	LookupByID(ctx context.Context, authorityID, knownSortName, knownDisplayName string) (*authority.Triple, error)
	LookupByName(ctx context.Context, sortName, displayName string, knownTitles []string) (*authority.Triple, error)
}

// Resolver matches contributor records to authority identities and
// writes the results back to the database.
type Resolver struct {
	store  Store
	lookup Lookup
	logger *slog.Logger
}

// NewResolver constructs a resolver.
func NewResolver(store Store, lookup Lookup, logger *slog.Logger) *Resolver {
	return &Resolver{
		store:  store,
		lookup: lookup,
		logger: logging.NewComponentLogger(logger, "resolver"),
	}
}

// ResolveContributor finds the authority identity for one contributor
// and applies it. A contributor that already carries an authority
// identifier is refreshed by direct lookup; otherwise its name and
// known titles drive a search.
//
// Returns the accepted candidate triple, or nil when no candidate was
// confident enough. A nil result is not an error.
//
// When the accepted identity is already claimed by another live record,
// the two records are merged only if their display names agree exactly.
// Otherwise the resolution is applied to this contributor alone, even
// though that may leave a duplicate, because merging two records that
// disagree on the display name risks fusing different people.
func (r *Resolver) ResolveContributor(ctx context.Context, contributor *contributors.Contributor) (*authority.Triple, error) {
	if contributor == nil {
		return nil, errors.New("contributor is nil")
	}

	var (
		triple *authority.Triple
		err    error
	)
	if contributor.AuthorityID != "" {
		triple, err = r.lookup.LookupByID(ctx, contributor.AuthorityID, contributor.SortName, contributor.DisplayName)
	} else {
		var knownTitles []string
		knownTitles, err = r.store.KnownTitles(ctx, contributor.ID)
		if err != nil {
			return nil, fmt.Errorf("load known titles: %w", err)
		}
		triple, err = r.lookup.LookupByName(ctx, contributor.SortName, contributor.DisplayName, knownTitles)
	}
	if err != nil {
		return nil, err
	}
	if triple == nil {
		r.logger.Debug("no confident match for contributor",
			logging.Int64("contributor_id", contributor.ID),
			logging.String("sort_name", contributor.SortName))
		return nil, nil
	}

	candidate := triple.Candidate
	if candidate.AuthorityID == "" {
		// A match without an authority identifier cannot be verified or
		// deduplicated later, so it is reported but never applied.
		r.logger.Info("accepted candidate has no authority id, not applying",
			logging.Int64("contributor_id", contributor.ID),
			logging.String("display_name", candidate.DisplayName))
		return triple, nil
	}

	duplicate, err := r.store.GetByAuthorityID(ctx, candidate.AuthorityID, contributor.ID)
	if err != nil {
		return nil, fmt.Errorf("check for duplicate contributor: %w", err)
	}
	if duplicate != nil {
		if duplicate.DisplayName == candidate.DisplayName {
			applyCandidate(duplicate, candidate)
			if err := r.store.Update(ctx, duplicate); err != nil {
				return nil, fmt.Errorf("update surviving contributor: %w", err)
			}
			if err := r.store.MergeInto(ctx, contributor.ID, duplicate.ID); err != nil {
				return nil, fmt.Errorf("merge contributors: %w", err)
			}
			contributor.SupersededBy = duplicate.ID
			r.logger.Info("merged contributor into existing record",
				logging.Int64("contributor_id", contributor.ID),
				logging.Int64("merged_into", duplicate.ID),
				logging.String("authority_id", candidate.AuthorityID))
			return triple, nil
		}
		r.logger.Warn("avoiding possible spurious contributor merge",
			logging.Int64("contributor_id", contributor.ID),
			logging.Int64("existing_id", duplicate.ID),
			logging.String("authority_id", candidate.AuthorityID),
			logging.String("candidate_display_name", candidate.DisplayName),
			logging.String("existing_display_name", duplicate.DisplayName))
	}

	applyCandidate(contributor, candidate)
	if err := r.store.Update(ctx, contributor); err != nil {
		return nil, fmt.Errorf("update contributor: %w", err)
	}
	r.logger.Info("resolved contributor",
		logging.Int64("contributor_id", contributor.ID),
		logging.String("authority_id", candidate.AuthorityID),
		logging.String("display_name", contributor.DisplayName))
	return triple, nil
}

// applyCandidate copies the candidate's non-empty fields onto the
// contributor record.
func applyCandidate(contributor *contributors.Contributor, candidate authority.Candidate) {
	if candidate.SortName != "" {
		contributor.SortName = candidate.SortName
	}
	if candidate.DisplayName != "" {
		contributor.DisplayName = candidate.DisplayName
	}
	if candidate.FamilyName != "" {
		contributor.FamilyName = candidate.FamilyName
	}
	if candidate.WikipediaName != "" {
		contributor.WikipediaName = candidate.WikipediaName
	}
	if candidate.AuthorityID != "" {
		contributor.AuthorityID = candidate.AuthorityID
	}
}
