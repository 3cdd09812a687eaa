package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dacapoday/vec/seq"
	"golang.org/x/term"
)

func runInteractive(ed *editor, filename string) {
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		fatal(err)
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	v := &viewer{ed: ed, filename: filename}
	v.updateSize()
	ed.first()

	fmt.Print("\033[?25l\033[2J") // hide cursor, clear screen once
	defer fmt.Print("\033[?25h\033[2J\033[H") // show cursor, clear screen

	reader := bufio.NewReader(os.Stdin)

	for {
		v.updateSize()
		v.scroll()
		v.render()

		b, err := reader.ReadByte()
		if err != nil {
			break
		}

		v.status = "" // clear status on any input

		switch b {
		case 'q', 3, 27: // q, Ctrl+C, Esc
			if b == 27 && reader.Buffered() > 0 {
				// escape sequence
				b2, _ := reader.ReadByte()
				if b2 == '[' {
					b3, _ := reader.ReadByte()
					switch b3 {
					case 'A': // up
						ed.prev()
					case 'B': // down
						ed.next()
					}
				}
				continue
			}
			if b == 'q' && ed.dirty && !v.confirmed {
				v.status = "unsaved changes, q again to quit"
				v.confirmed = true
				continue
			}
			return
		case 'j':
			ed.next()
		case 'k':
			ed.prev()
		case 'g':
			ed.first()
		case 'G':
			ed.last()
		case 'd':
			if line, err := ed.remove(); err != nil {
				v.status = err.Error()
			} else {
				v.status = fmt.Sprintf("deleted: %s", display(line, 40))
			}
		case 'i':
			if line, ok := v.prompt(reader, "insert before: "); ok {
				v.report(ed.insertBefore(line))
			}
		case 'a':
			if line, ok := v.prompt(reader, "insert after: "); ok {
				v.report(ed.insertAfter(line))
			}
		case 'e':
			if line, ok := v.prompt(reader, "replace: "); ok {
				v.report(ed.replace(line))
			}
		case 'w':
			if err := save(ed, v.filename); err != nil {
				v.status = err.Error()
			} else {
				v.status = fmt.Sprintf("wrote %d lines", ed.lines.Len())
			}
		}
		if b != 'q' {
			v.confirmed = false
		}
	}
}

type viewer struct {
	ed        *editor
	filename  string
	top       int
	width     int
	height    int
	status    string
	confirmed bool
}

// updateSize checks terminal size and returns true if changed.
func (v *viewer) updateSize() bool {
	w, h, err := term.GetSize(int(os.Stdin.Fd()))
	if err != nil {
		w, h = 80, 24
	}
	if w == v.width && h == v.height {
		return false
	}
	v.width, v.height = w, h
	return true
}

func (v *viewer) lines() int {
	return max(v.height-4, 1) // title + separator + separator + status
}

// scroll keeps the cursor line on screen.
func (v *viewer) scroll() {
	pos := v.ed.pos
	switch v.ed.state {
	case seq.BeforeStart:
		pos = 0
	case seq.AfterEnd:
		pos = v.ed.lines.Len()
	}
	if pos < v.top {
		v.top = pos
	}
	if pos >= v.top+v.lines() {
		v.top = pos - v.lines() + 1
	}
}

func (v *viewer) report(err error) {
	if err != nil {
		v.status = err.Error()
	}
}

func (v *viewer) prompt(reader *bufio.Reader, label string) (string, bool) {
	fmt.Print("\033[?25h") // show cursor
	fmt.Printf("\033[%d;1H\033[K%s", v.height, label)
	defer fmt.Print("\033[?25l")

	var input []byte
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return "", false
		}
		if b == 27 || b == 3 { // Esc or Ctrl+C
			return "", false
		}
		if b == 13 || b == 10 { // Enter
			return string(input), true
		}
		if b == 127 || b == 8 { // Backspace
			if len(input) > 0 {
				_, size := utf8.DecodeLastRune(input)
				input = input[:len(input)-size]
				fmt.Print("\b \b")
			}
			continue
		}
		if b >= 32 {
			input = append(input, b)
			os.Stdout.Write([]byte{b})
		}
	}
}

func (v *viewer) render() {
	var b strings.Builder

	// move to top (no clear)
	b.WriteString("\033[H")

	// header
	title := "[ lview ] " + v.filename
	if v.ed.dirty {
		title += " [+]"
	}
	b.WriteString(display(title, v.width))
	b.WriteString("\033[K\r\n")
	b.WriteString(strings.Repeat("─", v.width))
	b.WriteString("\033[K\r\n")

	lines := v.lines()
	window, err := v.ed.window(v.top, lines)
	if err != nil {
		v.status = err.Error()
	}
	numWidth := len(fmt.Sprint(v.ed.lines.Len()))
	for i := 0; i < lines; i++ {
		n := v.top + i
		if i < len(window) {
			mark := "  "
			if v.ed.state == seq.At && v.ed.pos == n {
				mark = "> "
			}
			b.WriteString(mark)
			fmt.Fprintf(&b, "%*d ", numWidth, n+1)
			b.WriteString(display(window[i], max(v.width-numWidth-4, 10)))
		} else {
			b.WriteString("~")
		}
		b.WriteString("\033[K\r\n")
	}

	// footer
	b.WriteString(strings.Repeat("─", v.width))
	b.WriteString("\033[K\r\n")

	// status line
	pos := fmt.Sprintf("[%s]", v.ed.state)
	if v.ed.state == seq.At {
		pos = fmt.Sprintf("[%d/%d]", v.ed.pos+1, v.ed.lines.Len())
	}

	if v.status != "" {
		b.WriteString(" ")
		b.WriteString(v.status)
		b.WriteString(" ")
		b.WriteString(pos)
	} else {
		b.WriteString(" j/k:move g/G:jump d:del i/a:insert e:edit w:write q:quit ")
		b.WriteString(pos)
	}
	b.WriteString("\033[K")

	fmt.Print(b.String())
}

// display formats a line for display, truncating if needed and
// escaping non-printable runes.
func display(s string, maxLen int) string {
	if s == "" {
		return ""
	}
	if !utf8.ValidString(s) || !isPrintable(s) {
		q := strconv.Quote(s)
		s = q[1 : len(q)-1]
	}
	runes := []rune(s)
	if len(runes) > maxLen-3 && maxLen > 3 {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}

func isPrintable(s string) bool {
	for _, r := range s {
		if !unicode.IsPrint(r) && r != ' ' {
			return false
		}
	}
	return true
}
