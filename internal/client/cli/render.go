package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gnode/gcaeditor/internal/client/models"
)

// Show prints the working copy while editing and the abstract otherwise.
func (a *App) Show(_ context.Context) error {
	ab := a.editor.Abstract()
	if a.editing {
		ab = a.editor.Edited()
	}
	if ab == nil {
		fmt.Fprintln(a.out, "No abstract loaded.")
		return nil
	}

	writeAbstract(a.out, a.editor.Conference(), ab)

	if p := a.editor.Pending(); p != nil {
		fmt.Fprintf(a.out, "Pending figure: %s (%d bytes)\n", p.File.Name, p.File.Size)
	}
	if a.editing {
		fmt.Fprintf(a.out, "Characters left: text %d, acknowledgements %d\n",
			a.editor.TextCharactersLeft(), a.editor.AckCharactersLeft())
	}
	if actions := a.actions(); len(actions) > 0 {
		fmt.Fprintln(a.out, "Actions:", strings.Join(actions, ", "))
	}
	return nil
}

func (a *App) actions() []string {
	if a.editing {
		return []string{"done"}
	}
	var out []string
	if a.editor.CanSave() {
		out = append(out, "edit", "save")
	}
	if a.editor.CanSubmit() {
		out = append(out, "submit")
	}
	if a.editor.CanWithdraw() {
		out = append(out, "withdraw")
	}
	if a.editor.CanReactivate() {
		out = append(out, "reactivate")
	}
	return out
}

func writeAbstract(w io.Writer, conf *models.Conference, ab *models.Abstract) {
	if conf != nil {
		fmt.Fprintf(w, "Conference: %s\n", models.Deref(conf.Name))
	}
	if ab.IsSaved() {
		fmt.Fprintf(w, "Abstract %s [%s]\n", ab.UUID, ab.State)
	} else {
		fmt.Fprintf(w, "New abstract [%s]\n", ab.State)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, orDash(ab.Title))
	if t := models.Deref(ab.Topic); t != "" {
		fmt.Fprintf(w, "Topic: %s\n", t)
	}
	fmt.Fprintln(w)

	for i, au := range ab.Authors {
		name := au.FormatName()
		if name == "" {
			name = "-"
		}
		if affs := au.FormatAffiliations(); affs != "" {
			name += " [" + affs + "]"
		}
		fmt.Fprintf(w, "  %d. %s\n", i+1, name)
	}
	for i, af := range ab.Affiliations {
		fmt.Fprintf(w, "  (%d) %s\n", i+1, af.Format())
	}
	fmt.Fprintln(w)

	for _, p := range ab.Paragraphs() {
		fmt.Fprintln(w, p)
	}
	if len(ab.Paragraphs()) == 0 {
		fmt.Fprintln(w, "(no text)")
	}

	for _, f := range ab.Figures {
		fmt.Fprintf(w, "\nFigure: %s %s\n", models.Deref(f.Name), models.Deref(f.Caption))
	}
	if ack := models.Deref(ab.Acknowledgements); ack != "" {
		fmt.Fprintf(w, "\nAcknowledgements: %s\n", ack)
	}
	if len(ab.References) > 0 {
		fmt.Fprintln(w, "\nReferences:")
		for i, r := range ab.References {
			fmt.Fprintf(w, "  %d. %s\n", i+1, r.Format())
		}
	}
	if coi := models.Deref(ab.ConflictOfInterest); coi != "" {
		fmt.Fprintf(w, "\nConflict of interest: %s\n", coi)
	}
	if doi := models.Deref(ab.DOI); doi != "" {
		fmt.Fprintf(w, "DOI: %s\n", doi)
	}
}

func orDash(s *string) string {
	if v := models.Deref(s); v != "" {
		return v
	}
	return "-"
}
