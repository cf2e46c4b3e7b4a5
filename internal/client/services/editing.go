package services

import (
	"unicode/utf8"

	"github.com/gnode/gcaeditor/internal/client/models"
	"github.com/gnode/gcaeditor/internal/client/validate"
	"github.com/gnode/gcaeditor/internal/workflow"
)

// The editing operations below change the working copy only. EndEdit or
// Save carries the changes over.

func (e *Editor) AddAuthor() (*models.Author, error) {
	if e.edited == nil {
		return nil, ErrNoAbstract
	}
	return e.edited.AddAuthor(), nil
}

func (e *Editor) RemoveAuthor(i int) error {
	if e.edited == nil {
		return ErrNoAbstract
	}
	if err := e.edited.RemoveAuthor(i); err != nil {
		e.SetError("Error", "Unable to remove author: invalid index")
		return err
	}
	return nil
}

func (e *Editor) AddAffiliation() (*models.Affiliation, error) {
	if e.edited == nil {
		return nil, ErrNoAbstract
	}
	return e.edited.AddAffiliation(), nil
}

func (e *Editor) RemoveAffiliation(i int) error {
	if e.edited == nil {
		return ErrNoAbstract
	}
	if err := e.edited.RemoveAffiliation(i); err != nil {
		e.SetError("Error", "Unable to remove affiliation: invalid index")
		return err
	}
	return nil
}

// LinkAuthorToAffiliation links the author at index author to the
// affiliation at index aff. Linking twice leaves a hint and is not an error.
func (e *Editor) LinkAuthorToAffiliation(aff, author int) error {
	if e.edited == nil {
		return ErrNoAbstract
	}
	added, err := e.edited.LinkAuthorToAffiliation(author, aff)
	if err != nil {
		e.SetError("Error", "Unable to add author to affiliation: invalid index")
		return err
	}
	if !added {
		e.SetInfo("Hint", "This author is assigned to this affiliation.")
	}
	return nil
}

// UnlinkAuthorFromAffiliation reports whether the link existed.
func (e *Editor) UnlinkAuthorFromAffiliation(aff, author int) (bool, error) {
	if e.edited == nil {
		return false, ErrNoAbstract
	}
	if author < 0 || author >= len(e.edited.Authors) {
		e.SetError("Error", "Unable to remove author from affiliation: invalid index")
		return false, models.ErrIndexOutOfRange
	}
	return e.edited.UnlinkAuthorFromAffiliation(aff, e.edited.Authors[author]), nil
}

func (e *Editor) AuthorsForAffiliation(aff int) []*models.Author {
	if e.edited == nil {
		return nil
	}
	return e.edited.AuthorsForAffiliation(aff)
}

func (e *Editor) AddReference() (*models.Reference, error) {
	if e.edited == nil {
		return nil, ErrNoAbstract
	}
	return e.edited.AddReference(), nil
}

func (e *Editor) RemoveReference(i int) error {
	if e.edited == nil {
		return ErrNoAbstract
	}
	if err := e.edited.RemoveReference(i); err != nil {
		e.SetError("Error", "Unable to remove reference: invalid index")
		return err
	}
	return nil
}

// TextCharactersLeft is negative when the working copy's text is over the
// limit.
func (e *Editor) TextCharactersLeft() int {
	return e.charactersLeft(func(a *models.Abstract) *string { return a.Text }, e.textLimit())
}

func (e *Editor) AckCharactersLeft() int {
	return e.charactersLeft(func(a *models.Abstract) *string { return a.Acknowledgements }, e.ackLimit())
}

func (e *Editor) charactersLeft(field func(*models.Abstract) *string, limit int) int {
	if e.edited == nil {
		return limit
	}
	return limit - utf8.RuneCountInString(models.Deref(field(e.edited)))
}

// CanSave reports whether the current abstract may be saved as it is.
func (e *Editor) CanSave() bool {
	if e.abstract == nil {
		return false
	}
	return !e.IsSaved() || workflow.IsTransitionLegal(true, e.priorState, e.priorState)
}

func (e *Editor) CanSubmit() bool {
	return e.IsSaved() &&
		e.priorState != workflow.Submitted &&
		workflow.IsTransitionLegal(true, e.priorState, workflow.Submitted)
}

func (e *Editor) CanWithdraw() bool {
	return e.IsSaved() && workflow.IsTransitionLegal(true, e.priorState, workflow.Withdrawn)
}

func (e *Editor) CanReactivate() bool {
	return e.IsSaved() &&
		e.priorState != workflow.InPreparation &&
		workflow.IsTransitionLegal(true, e.priorState, workflow.InPreparation)
}

func (e *Editor) textLimit() int {
	if r, ok := e.validator.(*validate.Rules); ok {
		return r.TextLimit
	}
	return validate.TextCharacterLimit
}

func (e *Editor) ackLimit() int {
	if r, ok := e.validator.(*validate.Rules); ok {
		return r.AckLimit
	}
	return validate.AckCharacterLimit
}
