package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gnode/gcaeditor/internal/client/services"
	"github.com/gnode/gcaeditor/internal/logging"
)

// TokenStore holds the bearer token used by the server client.
type TokenStore interface {
	SetToken(token string)
	Token() string
}

type App struct {
	editor  *services.Editor
	tokens  TokenStore
	stats   prometheus.Gatherer
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer
	editing bool
}

// NewApp builds the shell. stats is the registry the editor counters are
// registered with; nil disables the stats command.
func NewApp(editor *services.Editor, tokens TokenStore, stats prometheus.Gatherer, log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		editor: editor,
		tokens: tokens,
		stats:  stats,
		log:    log,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Run loads the abstract and reads commands until exit or end of input.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "Abstract editor (type 'help' for commands)")
	if err := a.editor.Init(ctx); err != nil {
		a.log.Warn(ctx, "editor started with errors", "error", err)
	}
	a.report()

	runREPL(ctx, a, a.status, a.reader)

	if a.editing {
		fmt.Fprintln(a.out, "Unfinished changes were discarded.")
	}
	return nil
}

func (a *App) status() string {
	var parts []string
	switch ab := a.editor.Abstract(); {
	case ab == nil:
		parts = append(parts, "no abstract")
	case !ab.IsSaved():
		parts = append(parts, "new")
	default:
		parts = append(parts, string(a.editor.PriorState()))
	}
	if a.editing {
		parts = append(parts, "editing")
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// report prints and clears the editor's message.
func (a *App) report() {
	msg, ok := a.editor.Message()
	if !ok {
		return
	}
	fmt.Fprintf(a.out, "[%s] %s: %s\n", strings.ToUpper(string(msg.Level)), msg.Title, msg.Text)
	a.editor.ClearMessage()
}
