package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output of the loop itself.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App implements
// it; tests use a recording stub.
type execIface interface {
	Show(ctx context.Context) error
	Edit(ctx context.Context) error
	Done(ctx context.Context) error
	SetField(ctx context.Context, field string) error
	Author(ctx context.Context, args []string) error
	Affiliation(ctx context.Context, args []string) error
	Link(ctx context.Context, args []string) error
	Unlink(ctx context.Context, args []string) error
	Reference(ctx context.Context, args []string) error
	Save(ctx context.Context) error
	Submit(ctx context.Context) error
	Withdraw(ctx context.Context) error
	Reactivate(ctx context.Context) error
	Figure(ctx context.Context, args []string) error
	RemoveFigure(ctx context.Context) error
	Token(ctx context.Context) error
	Owners(ctx context.Context) error
	Drafts(ctx context.Context) error
	Stats(ctx context.Context) error
	report()
}

const helpText = `Available commands:
  show                          print the abstract
  edit | done                   start and finish editing
  title | topic | text | ack | coi | doi
                                set a field (while editing)
  author add | author rm <n>
  affiliation add | affiliation rm <n>
  link <affiliation> <author>   assign an author to an affiliation
  unlink <affiliation> <author>
  ref add | ref rm <n>
  figure <file> [caption]       attach a figure (jpeg, gif or png)
  rmfigure                      delete the figure
  save | submit | withdraw | reactivate
  token                         enter the access token
  owners                        list the owners of the abstract
  drafts                        list locally stored drafts
  stats                         show request counters
  exit | quit`

// runREPL reads one command per line from reader and dispatches it to a.
// Errors of the handlers are not printed here: the editor's message is
// reported after every command instead. The loop ends on "exit", "quit" or
// end of input.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gca %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)
		case "show":
			_ = a.Show(ctx)
		case "edit":
			_ = a.Edit(ctx)
		case "done":
			_ = a.Done(ctx)
		case "title", "topic", "text", "ack", "coi", "doi":
			_ = a.SetField(ctx, cmd)
		case "author":
			_ = a.Author(ctx, args)
		case "affiliation", "aff":
			_ = a.Affiliation(ctx, args)
		case "link":
			_ = a.Link(ctx, args)
		case "unlink":
			_ = a.Unlink(ctx, args)
		case "ref", "reference":
			_ = a.Reference(ctx, args)
		case "save":
			_ = a.Save(ctx)
		case "submit":
			_ = a.Submit(ctx)
		case "withdraw":
			_ = a.Withdraw(ctx)
		case "reactivate":
			_ = a.Reactivate(ctx)
		case "figure":
			_ = a.Figure(ctx, args)
		case "rmfigure":
			_ = a.RemoveFigure(ctx)
		case "token":
			_ = a.Token(ctx)
		case "owners":
			_ = a.Owners(ctx)
		case "drafts":
			_ = a.Drafts(ctx)
		case "stats":
			_ = a.Stats(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}
		a.report()

		if err != nil {
			return
		}
	}
}
