// Package validate checks abstract content before it is saved.
//
// Errors block a save. Warnings are reported after a successful save so the
// author can keep working on an incomplete draft.
package validate

import (
	"fmt"
	"unicode/utf8"

	"github.com/gnode/gcaeditor/internal/client/models"
)

const (
	TextCharacterLimit = 2000
	AckCharacterLimit  = 200
)

// Result collects the messages of one validation run.
type Result struct {
	Errors   []string
	Warnings []string
}

func (r Result) HasErrors() bool   { return len(r.Errors) > 0 }
func (r Result) HasWarnings() bool { return len(r.Warnings) > 0 }

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Validator checks an abstract.
type Validator interface {
	Abstract(a *models.Abstract) Result
}

// Rules is the default Validator.
type Rules struct {
	TextLimit int
	AckLimit  int
}

// NewRules returns rules with the default character limits.
func NewRules() *Rules {
	return &Rules{TextLimit: TextCharacterLimit, AckLimit: AckCharacterLimit}
}

func (v *Rules) Abstract(a *models.Abstract) Result {
	var r Result

	if n := utf8.RuneCountInString(models.Deref(a.Text)); n > v.TextLimit {
		r.errorf("the abstract text is too long (%d of %d characters)", n, v.TextLimit)
	}
	if n := utf8.RuneCountInString(models.Deref(a.Acknowledgements)); n > v.AckLimit {
		r.errorf("the acknowledgements are too long (%d of %d characters)", n, v.AckLimit)
	}
	for i, au := range a.Authors {
		for _, p := range au.Affiliations {
			if p < 0 || p >= len(a.Affiliations) {
				r.errorf("author %d refers to a missing affiliation", i+1)
				break
			}
		}
	}

	if models.Deref(a.Title) == "" {
		r.warnf("the abstract has no title")
	}
	if models.Deref(a.Text) == "" {
		r.warnf("the abstract has no text")
	}
	if len(a.Authors) == 0 {
		r.warnf("the abstract has no authors")
	}
	if len(a.Affiliations) == 0 {
		r.warnf("the abstract has no affiliations")
	}
	for i, au := range a.Authors {
		if models.Deref(au.LastName) == "" {
			r.warnf("author %d has no last name", i+1)
		}
		if len(au.Affiliations) == 0 {
			r.warnf("author %d has no affiliation", i+1)
		}
	}

	return r
}
