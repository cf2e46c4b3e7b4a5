// Package cli is the interactive shell of the abstract editor.
//
// The shell drives one services.Editor: it prints the abstract, collects
// field values line by line and reports the editor's message after every
// command. Field changes are only possible between "edit" and "done"; "done"
// saves a stored abstract and keeps a new one as a local draft until "save".
//
// The REPL is started with App.Run, which blocks until the user exits or the
// input ends.
package cli
