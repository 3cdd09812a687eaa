// lview is a small line editor that walks a text file with a cursor.
//
// Usage:
//
//	lview <filename>                # interactive mode
//	lview -l <filename>             # list mode (print all)
//	lview -l -n 20 <filename>       # list first 20 lines
//	lview -l -g TODO <filename>     # list lines containing TODO
//	lview -s script.txt <filename>  # apply a script, print the result
//	lview -s script.txt -o out.txt <filename>
//
// Interactive mode:
//
//	j/↓    next line
//	k/↑    previous line
//	g      jump to first
//	G      jump to last
//	d      delete current line
//	i      insert line before cursor
//	a      insert line after cursor
//	e      replace current line
//	w      write file
//	q/Esc  quit
//
// Pass -v to log every edit to stderr.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dacapoday/vec/iterator"
	"github.com/dacapoday/vec/seq"
	"github.com/rs/zerolog"
)

func main() {
	listFlag := flag.Bool("l", false, "list mode (non-interactive)")
	countFlag := flag.Int("n", 0, "number of lines (0 = all)")
	grepFlag := flag.String("g", "", "list mode: only lines containing this text")
	scriptFlag := flag.String("s", "", "apply script file (non-interactive)")
	outFlag := flag.String("o", "", "output file for script mode (default stdout)")
	verboseFlag := flag.Bool("v", false, "log edits to stderr")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: lview [-l [-n count] [-g text]] [-s script [-o out]] [-v] <filename>")
		os.Exit(1)
	}

	log := zerolog.Nop()
	if *verboseFlag {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
	}

	filename := flag.Arg(0)
	ed, err := load(filename, log)
	if err != nil {
		fatal(err)
	}

	switch {
	case *listFlag:
		runList(ed, *countFlag, *grepFlag)
	case *scriptFlag != "":
		runScript(ed, *scriptFlag, *outFlag)
	default:
		runInteractive(ed, filename)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

func load(filename string, log zerolog.Logger) (*editor, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return newEditor(f, log.With().Str("file", filename).Logger())
}

func runList(ed *editor, count int, grep string) {
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	if err := list(w, ed, count, grep); err != nil {
		fatal(err)
	}
}

// list prints up to count lines containing grep (all lines when count is 0),
// numbered by their position in the file.
func list(w io.Writer, ed *editor, count int, grep string) error {
	lines, err := ed.lines.Iter()
	if err != nil {
		return err
	}

	var it iterator.Filter[numbered]
	it.Load(&numberLines{it: lines}, func(l numbered) bool {
		return strings.Contains(l.text, grep)
	})
	defer it.Close()

	width := len(fmt.Sprint(ed.lines.Len()))
	n := 0
	for l, ok := it.Next(); ok; l, ok = it.Next() {
		if count > 0 && n >= count {
			break
		}
		n++
		fmt.Fprintf(w, "%*d  %s\n", width, l.n, display(l.text, 120))
	}
	return nil
}

type numbered struct {
	n    int
	text string
}

// numberLines tags each line with its 1-based line number.
type numberLines struct {
	it *seq.Iter[string]
	n  int
}

func (it *numberLines) Next() (l numbered, ok bool) {
	text, ok := it.it.Next()
	if !ok {
		return
	}
	it.n++
	return numbered{n: it.n, text: text}, true
}

func (it *numberLines) Close() { it.it.Close() }

func runScript(ed *editor, script, out string) {
	f, err := os.Open(script)
	if err != nil {
		fatal(err)
	}
	defer f.Close()

	if err := ed.run(f); err != nil {
		fatal(err)
	}

	if out == "" {
		if err := ed.writeTo(os.Stdout); err != nil {
			fatal(err)
		}
		return
	}
	if err := save(ed, out); err != nil {
		fatal(err)
	}
}

func save(ed *editor, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := ed.writeTo(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	ed.dirty = false
	ed.log.Debug().Str("to", filename).Int("lines", ed.lines.Len()).Msg("saved")
	return nil
}
