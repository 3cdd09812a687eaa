package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dacapoday/vec/seq"
	"github.com/rs/zerolog"
)

// editor keeps the lines of a file and a remembered cursor position.
// A seq.Cursor is only open for the duration of one edit, so that the lines
// can be read through views in between.
type editor struct {
	lines *seq.Seq[string]
	state seq.State
	pos   int
	dirty bool
	log   zerolog.Logger
}

func newEditor(r io.Reader, log zerolog.Logger) (*editor, error) {
	lines := seq.New[string](seq.Options{Cap: 64, Log: &log})
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		if err := lines.Push(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	log.Debug().Int("lines", lines.Len()).Msg("loaded")
	return &editor{lines: lines, log: log}, nil
}

// edit opens a cursor at the remembered position, runs fn, and remembers
// where the cursor ended up.
func (ed *editor) edit(op string, fn func(cur *seq.Cursor[string]) error) error {
	cur, err := ed.lines.Cursor()
	if err != nil {
		return err
	}
	defer cur.Close()

	switch ed.state {
	case seq.At:
		if err := cur.Seek(ed.pos); err != nil {
			return err
		}
	case seq.AfterEnd:
		if n := cur.Len(); n > 0 {
			if err := cur.Seek(n - 1); err != nil {
				return err
			}
		}
		cur.Advance()
	}

	err = fn(cur)
	ed.state = cur.State()
	ed.pos, _ = cur.Index()
	ed.log.Debug().Str("op", op).Str("state", ed.state.String()).Int("pos", ed.pos).Err(err).Msg("edit")
	return err
}

func (ed *editor) next() bool {
	var moved bool
	ed.edit("next", func(cur *seq.Cursor[string]) error {
		moved = cur.Advance()
		return nil
	})
	return moved
}

func (ed *editor) prev() bool {
	var moved bool
	ed.edit("prev", func(cur *seq.Cursor[string]) error {
		moved = cur.Retreat()
		return nil
	})
	return moved
}

func (ed *editor) first() bool {
	ed.state, ed.pos = seq.BeforeStart, 0
	return ed.next()
}

func (ed *editor) last() bool {
	ed.state, ed.pos = seq.AfterEnd, 0
	return ed.prev()
}

func (ed *editor) reset() {
	ed.state, ed.pos = seq.BeforeStart, 0
}

func (ed *editor) remove() (string, error) {
	var line string
	err := ed.edit("remove", func(cur *seq.Cursor[string]) (err error) {
		line, err = cur.RemoveCurrent()
		return
	})
	if err == nil {
		ed.dirty = true
	}
	return line, err
}

func (ed *editor) insertBefore(line string) error {
	err := ed.edit("insert-before", func(cur *seq.Cursor[string]) error {
		return cur.InsertBefore(line)
	})
	if err == nil {
		ed.dirty = true
	}
	return err
}

func (ed *editor) insertAfter(line string) error {
	err := ed.edit("insert-after", func(cur *seq.Cursor[string]) error {
		return cur.InsertAfter(line)
	})
	if err == nil {
		ed.dirty = true
	}
	return err
}

func (ed *editor) replace(line string) error {
	err := ed.edit("replace", func(cur *seq.Cursor[string]) error {
		return cur.Set(line)
	})
	if err == nil {
		ed.dirty = true
	}
	return err
}

// current returns the line under the cursor, if any.
func (ed *editor) current() (string, bool) {
	if ed.state != seq.At {
		return "", false
	}
	return ed.lines.At(ed.pos)
}

// window returns up to n lines starting at top.
func (ed *editor) window(top, n int) ([]string, error) {
	end := min(top+n, ed.lines.Len())
	top = min(top, end)
	view, err := ed.lines.View(top, end)
	if err != nil {
		return nil, err
	}
	defer view.Release()
	out := make([]string, view.Len())
	view.CopyTo(out)
	return out, nil
}

func (ed *editor) writeTo(w io.Writer) error {
	it, err := ed.lines.Iter()
	if err != nil {
		return err
	}
	defer it.Close()

	bw := bufio.NewWriter(w)
	for line, ok := it.Next(); ok; line, ok = it.Next() {
		bw.WriteString(line)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// run applies a script of one-letter commands, one per line:
//
//	n        advance
//	p        retreat
//	0        back to before the first line
//	d        remove the current line
//	i TEXT   insert TEXT before the cursor
//	a TEXT   insert TEXT after the cursor
//	r TEXT   replace the current line with TEXT
//
// Blank lines and lines starting with '#' are ignored.
func (ed *editor) run(script io.Reader) error {
	scanner := bufio.NewScanner(script)
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cmd, arg := line[:1], ""
		if len(line) > 2 && line[1] == ' ' {
			arg = line[2:]
		}

		var err error
		switch cmd {
		case "n":
			ed.next()
		case "p":
			ed.prev()
		case "0":
			ed.reset()
		case "d":
			_, err = ed.remove()
		case "i":
			err = ed.insertBefore(arg)
		case "a":
			err = ed.insertAfter(arg)
		case "r":
			err = ed.replace(arg)
		default:
			err = fmt.Errorf("unknown command %q", cmd)
		}
		if err != nil {
			return fmt.Errorf("script line %d: %w", n, err)
		}
	}
	return scanner.Err()
}
