package contributors

import "time"

// Contributor is one credited person or organization.
type Contributor struct {
	ID            int64
	SortName      string
	DisplayName   string
	FamilyName    string
	WikipediaName string
	AuthorityID   string

	// SupersededBy points at the surviving record after a merge; zero
	// for live records.
	SupersededBy int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Superseded reports whether this record was merged into another.
func (c *Contributor) Superseded() bool {
	return c.SupersededBy != 0
}

// Resolved reports whether the contributor carries an authority
// identifier.
func (c *Contributor) Resolved() bool {
	return c.AuthorityID != ""
}

// Contribution links a contributor to one work they are credited on.
type Contribution struct {
	ID            int64
	ContributorID int64
	Title         string
	Role          string
	CreatedAt     time.Time
}
