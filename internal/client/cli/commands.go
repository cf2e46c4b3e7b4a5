package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gnode/gcaeditor/internal/auth"
	"github.com/gnode/gcaeditor/internal/client/models"
	"github.com/gnode/gcaeditor/internal/metrics"
)

var (
	errNotEditing = errors.New("not editing")
	errUsage      = errors.New("usage")
)

type textField struct {
	prompt    string
	multiline bool
	ptr       func(*models.Abstract) **string
	// limit, when set, prints the characters left after the change.
	limit func(*App) int
}

var textFields = map[string]textField{
	"title": {prompt: "Title", ptr: func(a *models.Abstract) **string { return &a.Title }},
	"topic": {prompt: "Topic", ptr: func(a *models.Abstract) **string { return &a.Topic }},
	"text": {prompt: "Abstract text", multiline: true,
		ptr:   func(a *models.Abstract) **string { return &a.Text },
		limit: func(a *App) int { return a.editor.TextCharactersLeft() }},
	"ack": {prompt: "Acknowledgements", multiline: true,
		ptr:   func(a *models.Abstract) **string { return &a.Acknowledgements },
		limit: func(a *App) int { return a.editor.AckCharactersLeft() }},
	"coi": {prompt: "Conflict of interest", ptr: func(a *models.Abstract) **string { return &a.ConflictOfInterest }},
	"doi": {prompt: "DOI", ptr: func(a *models.Abstract) **string { return &a.DOI }},
}

func (a *App) requireEditing() error {
	if !a.editing {
		fmt.Fprintln(a.out, "Use 'edit' first.")
		return errNotEditing
	}
	return nil
}

func (a *App) usage(text string) error {
	fmt.Fprintln(a.out, "Usage:", text)
	return errUsage
}

// position parses a 1-based number as shown by "show" into an index.
func (a *App) position(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		fmt.Fprintf(a.out, "Invalid number: %s\n", s)
		return 0, errUsage
	}
	return n - 1, nil
}

func (a *App) ask(prompt string) (string, error) {
	return GetSimpleText(a.reader, prompt, a.out)
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return models.Str(v)
}

func (a *App) Edit(_ context.Context) error {
	if a.editing {
		fmt.Fprintln(a.out, "Already editing.")
		return nil
	}
	if err := a.editor.StartEdit(); err != nil {
		fmt.Fprintln(a.out, "Nothing to edit.")
		return err
	}
	a.editing = true
	return nil
}

// Done ends editing. When saving fails the shell stays in edit mode so the
// changes are not lost.
func (a *App) Done(ctx context.Context) error {
	if err := a.requireEditing(); err != nil {
		return err
	}
	if err := a.editor.EndEdit(ctx); err != nil {
		return err
	}
	a.editing = false
	return nil
}

func (a *App) SetField(_ context.Context, name string) error {
	f, ok := textFields[name]
	if !ok {
		return fmt.Errorf("unknown field %q", name)
	}
	if err := a.requireEditing(); err != nil {
		return err
	}

	var (
		v   string
		err error
	)
	if f.multiline {
		v, err = GetMultiline(a.reader, f.prompt, a.out)
	} else {
		v, err = a.ask(f.prompt)
	}
	if err != nil {
		return err
	}

	*f.ptr(a.editor.Edited()) = optional(v)
	if f.limit != nil {
		fmt.Fprintf(a.out, "%d characters left\n", f.limit(a))
	}
	return nil
}

func (a *App) Author(_ context.Context, args []string) error {
	const use = "author add | author rm <n>"
	if len(args) == 0 {
		return a.usage(use)
	}
	if err := a.requireEditing(); err != nil {
		return err
	}

	switch args[0] {
	case "add":
		var vals [4]string
		for i, p := range []string{"First name", "Middle name", "Last name", "E-mail"} {
			v, err := a.ask(p)
			if err != nil {
				return err
			}
			vals[i] = v
		}
		au, err := a.editor.AddAuthor()
		if err != nil {
			return err
		}
		au.FirstName, au.MiddleName, au.LastName, au.Mail = optional(vals[0]), optional(vals[1]), optional(vals[2]), optional(vals[3])
		fmt.Fprintf(a.out, "Author %d added.\n", au.Position+1)
		return nil
	case "rm":
		if len(args) != 2 {
			return a.usage(use)
		}
		i, err := a.position(args[1])
		if err != nil {
			return err
		}
		return a.editor.RemoveAuthor(i)
	default:
		return a.usage(use)
	}
}

func (a *App) Affiliation(_ context.Context, args []string) error {
	const use = "affiliation add | affiliation rm <n>"
	if len(args) == 0 {
		return a.usage(use)
	}
	if err := a.requireEditing(); err != nil {
		return err
	}

	switch args[0] {
	case "add":
		var vals [5]string
		for i, p := range []string{"Institution", "Department", "Section", "Address", "Country"} {
			v, err := a.ask(p)
			if err != nil {
				return err
			}
			vals[i] = v
		}
		af, err := a.editor.AddAffiliation()
		if err != nil {
			return err
		}
		af.Name, af.Department, af.Section, af.Address, af.Country = optional(vals[0]), optional(vals[1]), optional(vals[2]), optional(vals[3]), optional(vals[4])
		fmt.Fprintf(a.out, "Affiliation %d added.\n", af.Position+1)
		return nil
	case "rm":
		if len(args) != 2 {
			return a.usage(use)
		}
		i, err := a.position(args[1])
		if err != nil {
			return err
		}
		return a.editor.RemoveAffiliation(i)
	default:
		return a.usage(use)
	}
}

func (a *App) linkArgs(args []string, use string) (aff, author int, err error) {
	if len(args) != 2 {
		return 0, 0, a.usage(use)
	}
	if err := a.requireEditing(); err != nil {
		return 0, 0, err
	}
	if aff, err = a.position(args[0]); err != nil {
		return 0, 0, err
	}
	if author, err = a.position(args[1]); err != nil {
		return 0, 0, err
	}
	return aff, author, nil
}

func (a *App) Link(_ context.Context, args []string) error {
	aff, author, err := a.linkArgs(args, "link <affiliation> <author>")
	if err != nil {
		return err
	}
	return a.editor.LinkAuthorToAffiliation(aff, author)
}

func (a *App) Unlink(_ context.Context, args []string) error {
	aff, author, err := a.linkArgs(args, "unlink <affiliation> <author>")
	if err != nil {
		return err
	}
	removed, err := a.editor.UnlinkAuthorFromAffiliation(aff, author)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Fprintf(a.out, "Author %d is not assigned to affiliation %d.\n", author+1, aff+1)
	}
	return nil
}

func (a *App) Reference(_ context.Context, args []string) error {
	const use = "ref add | ref rm <n>"
	if len(args) == 0 {
		return a.usage(use)
	}
	if err := a.requireEditing(); err != nil {
		return err
	}

	switch args[0] {
	case "add":
		var vals [4]string
		for i, p := range []string{"Authors", "Title", "Year", "DOI"} {
			v, err := a.ask(p)
			if err != nil {
				return err
			}
			vals[i] = v
		}
		r, err := a.editor.AddReference()
		if err != nil {
			return err
		}
		r.Authors, r.Title, r.Year, r.DOI = optional(vals[0]), optional(vals[1]), optional(vals[2]), optional(vals[3])
		return nil
	case "rm":
		if len(args) != 2 {
			return a.usage(use)
		}
		i, err := a.position(args[1])
		if err != nil {
			return err
		}
		return a.editor.RemoveReference(i)
	default:
		return a.usage(use)
	}
}

func (a *App) refuseWhileEditing() error {
	if a.editing {
		fmt.Fprintln(a.out, "Finish editing with 'done' first.")
		return errors.New("editing")
	}
	return nil
}

func (a *App) Save(ctx context.Context) error {
	if err := a.refuseWhileEditing(); err != nil {
		return err
	}
	return a.editor.Save(ctx, nil)
}

func (a *App) Submit(ctx context.Context) error {
	if err := a.refuseWhileEditing(); err != nil {
		return err
	}
	return a.editor.Submit(ctx)
}

func (a *App) Withdraw(ctx context.Context) error {
	if err := a.refuseWhileEditing(); err != nil {
		return err
	}
	return a.editor.Withdraw(ctx)
}

func (a *App) Reactivate(ctx context.Context) error {
	if err := a.refuseWhileEditing(); err != nil {
		return err
	}
	return a.editor.Reactivate(ctx)
}

// Figure attaches a file; a saved abstract gets it uploaded right away.
func (a *App) Figure(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.usage("figure <file> [caption]")
	}
	if err := a.editor.AttachFigure(strings.Join(args[1:], " "), args[0]); err != nil {
		return err
	}
	if !a.editor.IsSaved() {
		fmt.Fprintln(a.out, "The figure will be uploaded with the next save.")
		return nil
	}
	return a.editor.UploadFigure(ctx)
}

func (a *App) RemoveFigure(ctx context.Context) error {
	return a.editor.RemoveFigure(ctx)
}

// Token asks for a new access token. A JWT is checked for expiry before it
// is accepted.
func (a *App) Token(_ context.Context) error {
	tok, err := GetSecret(a.reader, "Access token", a.out)
	if err != nil {
		return err
	}
	if tok == "" {
		a.tokens.SetToken("")
		fmt.Fprintln(a.out, "Token cleared.")
		return nil
	}

	if auth.IsJWT(tok) {
		if err := auth.CheckExpiry(tok, time.Now()); err != nil {
			fmt.Fprintln(a.out, "Token rejected:", err)
			return err
		}
		claims, err := auth.ParseClaims(tok)
		if err == nil && claims.ExpiresAt != nil {
			fmt.Fprintf(a.out, "Token of %s valid until %s.\n", auth.Subject(tok), claims.ExpiresAt.Time.Format(time.RFC1123))
		}
	}
	a.tokens.SetToken(tok)
	return nil
}

func (a *App) Owners(ctx context.Context) error {
	if err := a.editor.LoadOwners(ctx); err != nil {
		fmt.Fprintln(a.out, "Unable to load owners:", err)
		return err
	}
	owners := a.editor.Owners()
	if len(owners) == 0 {
		fmt.Fprintln(a.out, "No owners.")
		return nil
	}
	for _, o := range owners {
		fmt.Fprintln(a.out, "-", o.Format())
	}
	return nil
}

// Drafts lists the locally stored drafts of new abstracts. The draft of the
// current session is marked.
func (a *App) Drafts(ctx context.Context) error {
	keys, err := a.editor.DraftKeys(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Unable to list drafts:", err)
		return err
	}
	if len(keys) == 0 {
		fmt.Fprintln(a.out, "No drafts.")
		return nil
	}
	current := a.editor.DraftKey()
	for _, k := range keys {
		mark := " "
		if k == current {
			mark = "*"
		}
		fmt.Fprintf(a.out, "%s %s\n", mark, k)
	}
	return nil
}

// Stats prints the request and rejection counters of this session.
func (a *App) Stats(_ context.Context) error {
	if a.stats == nil {
		fmt.Fprintln(a.out, "Statistics are not collected.")
		return nil
	}
	samples, err := metrics.Gather(a.stats)
	if err != nil {
		fmt.Fprintln(a.out, "Unable to read statistics:", err)
		return err
	}
	if len(samples) == 0 {
		fmt.Fprintln(a.out, "No requests yet.")
		return nil
	}
	for _, s := range samples {
		fmt.Fprintln(a.out, " ", s)
	}
	return nil
}
