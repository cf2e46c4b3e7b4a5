package services

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/gnode/gcaeditor/internal/filex"
)

// MaxFigureSize is the largest figure file accepted, in bytes.
const MaxFigureSize = 5 * 1024 * 1024

var figureExtensions = []string{"jpeg", "jpg", "gif", "giff", "png"}

// PendingFigure is a figure file picked by the user and not yet uploaded.
type PendingFigure struct {
	Caption string
	File    filex.Info
}

// Pending returns the figure waiting for upload, if any.
func (e *Editor) Pending() *PendingFigure { return e.pending }

// AttachFigure checks the file at path and keeps it as the pending figure.
// It is uploaded by the next successful Save or by UploadFigure.
func (e *Editor) AttachFigure(caption, path string) error {
	info, err := filex.Inspect(path)
	if err != nil {
		e.SetError("Error", "Unable to read the figure file")
		return fmt.Errorf("attach figure: %w", err)
	}
	if !slices.Contains(figureExtensions, info.Ext) {
		e.metrics.ObserveRejection("figure_format")
		e.SetError("Error", "Figure file format not supported (only jpeg, gif or png is allowed).")
		return fmt.Errorf("%w: %s", ErrUnsupportedFigure, info.Name)
	}
	if info.Size > MaxFigureSize {
		e.metrics.ObserveRejection("figure_size")
		e.SetError("Error", "Figure file is too large (limit is 5MB).")
		return fmt.Errorf("%w: %d bytes", ErrFigureTooLarge, info.Size)
	}

	e.pending = &PendingFigure{Caption: caption, File: info}
	return nil
}

// ClearPending forgets the pending figure.
func (e *Editor) ClearPending() { e.pending = nil }

// UploadFigure uploads the pending figure to the saved abstract.
func (e *Editor) UploadFigure(ctx context.Context) error {
	if !e.IsSaved() {
		e.SetError("Error", "Unable to save the figure: the abstract is not saved")
		return ErrNotSaved
	}
	if e.pending == nil {
		e.SetWarning("Error", "Unable to save the figure: no figure selected")
		return ErrNoFigure
	}
	if !e.IsChangeOk(nil) {
		e.metrics.ObserveRejection("illegal_state")
		e.SetError("Error", "Unable to save abstract: illegal state")
		return ErrIllegalState
	}
	if err := e.uploadPending(ctx); err != nil {
		e.SetError("Error", "Unable to save the figure")
		return err
	}
	if err := e.reloadAfterFigure(ctx, "Figure saved."); err != nil {
		return err
	}
	e.SetOk("Ok", "Figure saved.")
	return nil
}

// uploadPending sends the pending figure. The caller reloads the abstract
// to pick up the server's figure list.
func (e *Editor) uploadPending(ctx context.Context) error {
	f, err := os.Open(e.pending.File.Path)
	if err != nil {
		return fmt.Errorf("open figure: %w", err)
	}
	defer f.Close()

	fig, err := e.client.UploadFigure(ctx, e.abstract.UUID, e.pending.Caption, e.pending.File.Name, f)
	if err != nil {
		e.log.Error(ctx, "failed to upload figure", "abstract", e.abstract.UUID, "error", err)
		return fmt.Errorf("upload figure: %w", err)
	}
	if fig != nil {
		e.log.Info(ctx, "figure uploaded", "abstract", e.abstract.UUID, "figure", fig.UUID)
	}
	e.pending = nil
	return nil
}

// reloadAfterFigure requests the abstract again after a figure change that
// already succeeded. A failure keeps done as the message, with a note.
func (e *Editor) reloadAfterFigure(ctx context.Context, done string) error {
	id := e.abstract.UUID
	if err := e.RequestAbstract(ctx, id); err != nil {
		e.SetInfo("Note", done+" Unable to reload the abstract: uuid = "+id)
		return fmt.Errorf("%w: %w", ErrNotReloaded, err)
	}
	return nil
}

// RemoveFigure deletes the abstract's figure on the server.
func (e *Editor) RemoveFigure(ctx context.Context) error {
	if !e.IsChangeOk(nil) {
		e.metrics.ObserveRejection("illegal_state")
		e.SetError("Error", "Unable to save abstract: illegal state")
		return ErrIllegalState
	}
	if !e.HasFigures() {
		e.SetWarning("Error", "Unable to delete figure: abstract has no figure")
		return ErrNoFigure
	}

	id := e.abstract.Figures[0].UUID
	if err := e.client.DeleteFigure(ctx, id); err != nil {
		e.log.Error(ctx, "failed to delete figure", "figure", id, "error", err)
		e.SetError("Error", "Unable to delete the figure")
		return fmt.Errorf("delete figure: %w", err)
	}
	if err := e.reloadAfterFigure(ctx, "Figure removed from abstract."); err != nil {
		return err
	}
	e.SetOk("Ok", "Figure removed from abstract")
	return nil
}
