package models

import (
	"fmt"
	"sort"
)

// AddAuthor appends an empty author and returns it.
func (a *Abstract) AddAuthor() *Author {
	au := NewAuthor()
	au.Position = len(a.Authors)
	a.Authors = append(a.Authors, au)
	return au
}

// RemoveAuthor removes the author at i. Affiliations and references are not
// touched.
func (a *Abstract) RemoveAuthor(i int) error {
	if i < 0 || i >= len(a.Authors) {
		return fmt.Errorf("author %d: %w", i, ErrIndexOutOfRange)
	}
	a.Authors = append(a.Authors[:i], a.Authors[i+1:]...)
	for n, au := range a.Authors {
		au.Position = n
	}
	return nil
}

// AddAffiliation appends an empty affiliation and returns it.
func (a *Abstract) AddAffiliation() *Affiliation {
	af := NewAffiliation()
	af.Position = len(a.Affiliations)
	a.Affiliations = append(a.Affiliations, af)
	return af
}

// RemoveAffiliation removes the affiliation at i and keeps every author
// reference pointing at the same affiliation as before: references to i are
// dropped and greater ones shift down by one.
func (a *Abstract) RemoveAffiliation(i int) error {
	if i < 0 || i >= len(a.Affiliations) {
		return fmt.Errorf("affiliation %d: %w", i, ErrIndexOutOfRange)
	}
	a.Affiliations = append(a.Affiliations[:i], a.Affiliations[i+1:]...)
	for n, af := range a.Affiliations {
		af.Position = n
	}

	for _, au := range a.Authors {
		kept := make([]int, 0, len(au.Affiliations))
		for _, p := range au.Affiliations {
			switch {
			case p == i:
			case p > i:
				kept = append(kept, p-1)
			default:
				kept = append(kept, p)
			}
		}
		au.Affiliations = kept
	}
	return nil
}

// LinkAuthorToAffiliation adds affiliation position aff to the author at
// index author, keeping the list sorted. It returns false when the author was
// already linked, which leaves the list unchanged.
func (a *Abstract) LinkAuthorToAffiliation(author, aff int) (bool, error) {
	if author < 0 || author >= len(a.Authors) {
		return false, fmt.Errorf("author %d: %w", author, ErrIndexOutOfRange)
	}
	if aff < 0 || aff >= len(a.Affiliations) {
		return false, fmt.Errorf("affiliation %d: %w", aff, ErrIndexOutOfRange)
	}

	au := a.Authors[author]
	if au.HasAffiliation(aff) {
		return false, nil
	}
	au.Affiliations = append(au.Affiliations, aff)
	sort.Ints(au.Affiliations)
	return true, nil
}

// UnlinkAuthorFromAffiliation removes one occurrence of aff from the author.
// It reports whether anything was removed.
func (a *Abstract) UnlinkAuthorFromAffiliation(aff int, author *Author) bool {
	for n, p := range author.Affiliations {
		if p == aff {
			author.Affiliations = append(author.Affiliations[:n], author.Affiliations[n+1:]...)
			return true
		}
	}
	return false
}

// AuthorsForAffiliation returns the authors linked to the affiliation at i,
// in author order.
func (a *Abstract) AuthorsForAffiliation(i int) []*Author {
	var out []*Author
	for _, au := range a.Authors {
		if au.HasAffiliation(i) {
			out = append(out, au)
		}
	}
	return out
}

// AddReference appends an empty reference and returns it.
func (a *Abstract) AddReference() *Reference {
	r := NewReference()
	a.References = append(a.References, r)
	return r
}

// RemoveReference removes the reference at i.
func (a *Abstract) RemoveReference(i int) error {
	if i < 0 || i >= len(a.References) {
		return fmt.Errorf("reference %d: %w", i, ErrIndexOutOfRange)
	}
	a.References = append(a.References[:i], a.References[i+1:]...)
	return nil
}
