package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/gnode/gcaeditor/internal/client/client"
	"github.com/gnode/gcaeditor/internal/client/models"
	"github.com/gnode/gcaeditor/internal/client/repositories/drafts"
	"github.com/gnode/gcaeditor/internal/client/validate"
	"github.com/gnode/gcaeditor/internal/logging"
	"github.com/gnode/gcaeditor/internal/metrics"
	"github.com/gnode/gcaeditor/internal/workflow"
)

// Deps are the collaborators of an Editor. Drafts and Metrics are optional.
type Deps struct {
	Client    client.Client
	Validator validate.Validator
	Drafts    drafts.Repository
	Logger    logging.Logger
	Metrics   *metrics.Metrics
}

// Editor is one editing session for a single abstract. Failures are reported
// both as returned errors and as the current Message.
type Editor struct {
	Messenger
	OwnerTracker

	client    client.Client
	validator validate.Validator
	drafts    drafts.Repository
	log       logging.Logger
	metrics   *metrics.Metrics

	conferenceID string
	abstractID   string

	conference *models.Conference
	abstract   *models.Abstract
	edited     *models.Abstract
	priorState workflow.State
	pending    *PendingFigure
}

var (
	_ Messaging     = (*Editor)(nil)
	_ OwnerTracking = (*Editor)(nil)
)

// NewEditor creates a session. A non-empty abstractID edits an existing
// abstract; otherwise a new abstract for conferenceID is prepared.
func NewEditor(deps Deps, conferenceID, abstractID string) *Editor {
	v := deps.Validator
	if v == nil {
		v = validate.NewRules()
	}
	log := deps.Logger
	if log == nil {
		log = logging.Discard()
	}
	return &Editor{
		client:       deps.Client,
		validator:    v,
		drafts:       deps.Drafts,
		log:          log.With("component", "editor"),
		metrics:      deps.Metrics,
		conferenceID: conferenceID,
		abstractID:   abstractID,
	}
}

// Init loads the conference and the abstract. Without an abstract id a new
// abstract is created, restored from the local draft when one exists.
func (e *Editor) Init(ctx context.Context) error {
	var errs []error

	if e.conferenceID != "" {
		errs = append(errs, e.RequestConference(ctx, e.conferenceID))
	}

	if e.abstractID != "" {
		errs = append(errs, e.RequestAbstract(ctx, e.abstractID))
	} else {
		a := e.restoreDraft(ctx)
		if a == nil {
			a = models.NewAbstract()
		}
		e.abstract = a
		e.edited = a
		e.priorState = a.State
	}

	return errors.Join(errs...)
}

// RequestConference loads the conference the abstract belongs to.
func (e *Editor) RequestConference(ctx context.Context, id string) error {
	c, err := e.client.GetConference(ctx, id)
	if err != nil {
		e.log.Error(ctx, "failed to load conference", "conference", id, "error", err)
		e.SetError("Error", "Unable to request the conference: uuid = "+id)
		return fmt.Errorf("request conference: %w", err)
	}
	e.conference = c
	return nil
}

// RequestAbstract loads the abstract and its owners and makes it the current
// one.
func (e *Editor) RequestAbstract(ctx context.Context, id string) error {
	a, err := e.client.GetAbstract(ctx, id)
	if err != nil {
		e.log.Error(ctx, "failed to load abstract", "abstract", id, "error", err)
		e.SetError("Error", "Unable to request the abstract: uuid = "+id)
		return fmt.Errorf("request abstract: %w", err)
	}
	e.adopt(a)
	e.loadOwners(ctx)
	return nil
}

func (e *Editor) adopt(a *models.Abstract) {
	e.abstract = a
	e.edited = a
	e.priorState = a.State
	e.abstractID = a.UUID
}

// LoadOwners refreshes the owner list of a saved abstract.
func (e *Editor) LoadOwners(ctx context.Context) error {
	if !e.IsSaved() {
		return ErrNotSaved
	}
	owners, err := e.client.GetOwners(ctx, e.abstract.UUID)
	if err != nil {
		return fmt.Errorf("load owners: %w", err)
	}
	e.setOwners(owners)
	return nil
}

// loadOwners keeps the current message; an owner failure is only logged.
func (e *Editor) loadOwners(ctx context.Context) {
	if err := e.LoadOwners(ctx); err != nil {
		e.log.Warn(ctx, "owners not loaded", "abstract", e.abstractID, "error", err)
	}
}

func (e *Editor) Conference() *models.Conference { return e.conference }

// Abstract is the last saved (or accepted) version.
func (e *Editor) Abstract() *models.Abstract { return e.abstract }

// Edited is the working copy changed by the editing operations.
func (e *Editor) Edited() *models.Abstract { return e.edited }

// PriorState is the state the abstract had when it was last loaded or saved.
func (e *Editor) PriorState() workflow.State { return e.priorState }

func (e *Editor) IsSaved() bool { return e.abstract != nil && e.abstract.IsSaved() }

func (e *Editor) HasFigures() bool { return e.abstract != nil && e.abstract.HasFigures() }

// IsChangeOk reports whether a may be saved given the prior state. A nil a
// checks the current abstract.
func (e *Editor) IsChangeOk(a *models.Abstract) bool {
	if a == nil {
		a = e.abstract
	}
	if a == nil {
		return false
	}
	return workflow.IsTransitionLegal(e.IsSaved(), e.priorState, a.State)
}

// Save validates a and creates or updates it on the server. A nil a saves
// the current abstract. On success the server copy becomes the current
// abstract and a pending figure is uploaded.
func (e *Editor) Save(ctx context.Context, a *models.Abstract) error {
	if a == nil {
		a = e.abstract
	}
	if a == nil {
		return ErrNoAbstract
	}

	if err := workflow.ValidateTransition(e.IsSaved(), e.priorState, a.State); err != nil {
		e.metrics.ObserveRejection("illegal_state")
		e.SetError("Error", "Unable to save abstract: illegal state")
		return fmt.Errorf("%w: %w", ErrIllegalState, err)
	}

	res := e.validator.Abstract(a)
	if res.HasErrors() {
		e.metrics.ObserveRejection("validation")
		e.SetError("Error", "Unable to save abstract: "+res.Errors[0])
		return fmt.Errorf("%w: %s", ErrValidation, res.Errors[0])
	}

	wasSaved := e.IsSaved()
	var (
		saved *models.Abstract
		err   error
	)
	switch {
	case wasSaved:
		saved, err = e.client.UpdateAbstract(ctx, e.abstract.UUID, a)
	case e.conferenceID != "":
		saved, err = e.client.CreateAbstract(ctx, e.conferenceID, a)
	default:
		e.SetError("Error", "Conference id or abstract id must be defined.")
		return ErrNoTarget
	}
	if err != nil {
		e.log.Error(ctx, "failed to save abstract", "abstract", e.abstractID, "error", err)
		e.SetError("Error", "Unable to save abstract!")
		return fmt.Errorf("save abstract: %w", err)
	}

	e.adopt(saved)
	e.log.Info(ctx, "abstract saved", "abstract", saved.UUID, "state", saved.State)
	if !wasSaved {
		e.dropDraft(ctx)
	}

	if e.pending != nil && !e.HasFigures() {
		if err := e.uploadPending(ctx); err != nil {
			e.SetError("Error", "Unable to save the figure")
			e.loadOwners(ctx)
			return err
		}
		if err := e.reloadAfterFigure(ctx, "Abstract and figure saved."); err != nil {
			return err
		}
		if res.HasWarnings() {
			e.SetInfo("Note", "The abstract and figure was saved but still has issues: "+res.Warnings[0])
		} else {
			e.SetOk("Ok", "Abstract and figure saved.")
		}
		return nil
	}

	if res.HasWarnings() {
		e.SetInfo("Note", "The abstract was saved but still has issues: "+res.Warnings[0])
	} else {
		e.SetOk("Ok", "Abstract saved.")
	}
	e.loadOwners(ctx)
	return nil
}

func (e *Editor) saveInState(ctx context.Context, s workflow.State) error {
	if e.abstract == nil {
		return ErrNoAbstract
	}
	c := e.abstract.Clone()
	c.State = s
	return e.Save(ctx, c)
}

// Submit saves a copy of the current abstract in state Submitted. The current
// abstract is untouched when the save fails.
func (e *Editor) Submit(ctx context.Context) error {
	return e.saveInState(ctx, workflow.Submitted)
}

func (e *Editor) Withdraw(ctx context.Context) error {
	return e.saveInState(ctx, workflow.Withdrawn)
}

func (e *Editor) Reactivate(ctx context.Context) error {
	return e.saveInState(ctx, workflow.InPreparation)
}

// StartEdit makes the working copy an independent clone of the abstract.
func (e *Editor) StartEdit() error {
	if e.abstract == nil {
		return ErrNoAbstract
	}
	e.edited = e.abstract.Clone()
	return nil
}

// EndEdit saves the working copy of a saved abstract. An unsaved one is
// validated, accepted locally and written to the draft store.
func (e *Editor) EndEdit(ctx context.Context) error {
	if e.edited == nil {
		return ErrNoAbstract
	}
	if e.IsSaved() {
		return e.Save(ctx, e.edited)
	}

	res := e.validator.Abstract(e.edited)
	switch {
	case res.HasErrors():
		e.SetWarning("Warning", res.Errors[0])
	case res.HasWarnings():
		e.SetInfo("Note", res.Warnings[0])
	default:
		e.ClearMessage()
	}
	e.abstract = e.edited
	e.saveDraft(ctx)
	return nil
}

// DraftKey is the draft store key of a new abstract.
func (e *Editor) DraftKey() string { return "conference:" + e.conferenceID }

// DraftKeys lists the keys of all stored drafts. Without a draft store the
// list is empty.
func (e *Editor) DraftKeys(ctx context.Context) ([]string, error) {
	if e.drafts == nil {
		return nil, nil
	}
	keys, err := e.drafts.Keys(ctx)
	if err != nil {
		e.log.Warn(ctx, "drafts not listed", "error", err)
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	return keys, nil
}

func (e *Editor) draftsEnabled() bool { return e.drafts != nil && e.conferenceID != "" }

func (e *Editor) saveDraft(ctx context.Context) {
	if !e.draftsEnabled() {
		return
	}
	changed, err := e.drafts.Save(ctx, e.DraftKey(), e.abstract.Record())
	if err != nil {
		e.log.Warn(ctx, "draft not saved", "key", e.DraftKey(), "error", err)
		return
	}
	e.log.Debug(ctx, "draft stored", "key", e.DraftKey(), "changed", changed)
}

func (e *Editor) restoreDraft(ctx context.Context) *models.Abstract {
	if !e.draftsEnabled() {
		return nil
	}
	rec, err := e.drafts.Load(ctx, e.DraftKey())
	if err != nil {
		e.log.Warn(ctx, "draft not loaded", "key", e.DraftKey(), "error", err)
		return nil
	}
	if rec == nil {
		return nil
	}
	a, err := models.DecodeAbstract(rec)
	if err != nil {
		e.log.Warn(ctx, "draft discarded", "key", e.DraftKey(), "error", err)
		return nil
	}
	return a
}

func (e *Editor) dropDraft(ctx context.Context) {
	if !e.draftsEnabled() {
		return
	}
	if err := e.drafts.Delete(ctx, e.DraftKey()); err != nil {
		e.log.Warn(ctx, "draft not deleted", "key", e.DraftKey(), "error", err)
	}
}
