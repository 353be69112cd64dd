// Package cli is an interactive front end for trying the engine from a terminal.
//
// Every input line is typed into one session key by key, so composition carries over between
// lines. '-' stands for backspace and '.' for enter. Lines starting with ':' are commands.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/shuangpin/internal/utils"
	"github.com/bastiangx/shuangpin/pkg/dictionary"
	"github.com/bastiangx/shuangpin/pkg/helpcode"
	"github.com/bastiangx/shuangpin/pkg/session"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	seqStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"})
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#b4637a", Dark: "#eb6f92"})
	wordStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	hintStyle = lipgloss.NewStyle().Faint(true)
)

const usage = `commands:
  :page N            show page N of the candidates
  :select N          commit candidate N of the current page
  :create PINYIN WORD
  :delete PINYIN WORD
  :reset             clear the composition
  :stats             cache statistics
  :help`

// InputHandler reads lines, drives a session and prints its candidates.
type InputHandler struct {
	dict     *dictionary.Dictionary
	session  *session.Session
	pageSize int
	page     int
	in       io.Reader
	out      io.Writer
}

// NewInputHandler creates a handler reading from in and printing to out.
func NewInputHandler(dict *dictionary.Dictionary, sess *session.Session, pageSize int, in io.Reader, out io.Writer) *InputHandler {
	if pageSize <= 0 {
		pageSize = 9
	}
	return &InputHandler{
		dict:     dict,
		session:  sess,
		pageSize: pageSize,
		in:       in,
		out:      out,
	}
}

// Start runs the loop until the input ends.
func (h *InputHandler) Start() error {
	fmt.Fprintln(h.out, "shuangpin CLI: type letters, '-' deletes, '.' commits, :help for commands")
	scanner := bufio.NewScanner(h.in)
	for {
		fmt.Fprint(h.out, "> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			fmt.Fprintln(h.out)
			return nil
		}
		line := strings.TrimSpace(utils.NormalizeKeys(scanner.Text()))
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			h.handleCommand(strings.Fields(line[1:]))
			continue
		}
		h.handleKeys(line)
	}
}

func (h *InputHandler) handleKeys(line string) {
	start := time.Now()
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '-':
			h.session.HandleKey(session.Key{Kind: session.KeyBackspace})
		case '.':
			h.session.HandleKey(session.Key{Kind: session.KeyEnter})
		default:
			h.session.HandleKey(session.KeyFromByte(line[i]))
		}
	}
	log.Debugf("Took [ %v ] for %q", time.Since(start), line)
	h.page = 0
	h.render()
}

func (h *InputHandler) handleCommand(args []string) {
	if len(args) == 0 {
		return
	}
	switch args[0] {
	case "page":
		n, ok := h.intArg(args)
		if !ok {
			return
		}
		h.page = n - 1
		h.render()
	case "select":
		n, ok := h.intArg(args)
		if !ok {
			return
		}
		items := h.session.Page(h.page, h.pageSize)
		if n < 1 || n > len(items) {
			fmt.Fprintf(h.out, "no candidate %d on this page\n", n)
			return
		}
		chosen := items[n-1]
		if err := h.dict.UpdateWeight(chosen.Key, chosen.Word); err != nil {
			log.Debugf("Not promoting %s: %v", chosen.Word, err)
		}
		h.session.Reset()
		fmt.Fprintf(h.out, "committed %s\n", wordStyle.Render(chosen.Word))
	case "create", "delete":
		if len(args) != 3 {
			fmt.Fprintf(h.out, "usage: :%s PINYIN WORD\n", args[0])
			return
		}
		apply := h.dict.CreateWord
		if args[0] == "delete" {
			apply = h.dict.DeleteWord
		}
		if err := apply(args[1], args[2]); err != nil {
			fmt.Fprintf(h.out, "%s failed: %v\n", args[0], err)
			return
		}
		fmt.Fprintf(h.out, "%s %s: ok\n", args[0], args[2])
	case "reset":
		h.session.Reset()
		h.render()
	case "stats":
		for k, v := range h.dict.Stats() {
			fmt.Fprintf(h.out, "%-20s %d\n", k, v)
		}
	default:
		fmt.Fprintln(h.out, usage)
	}
}

func (h *InputHandler) intArg(args []string) (int, bool) {
	if len(args) != 2 {
		fmt.Fprintf(h.out, "usage: :%s N\n", args[0])
		return 0, false
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintf(h.out, "not a number: %s\n", args[1])
		return 0, false
	}
	return n, true
}

// render prints the composition and the current page of candidates.
func (h *InputHandler) render() {
	s := h.session
	if s.State() == session.Idle {
		fmt.Fprintln(h.out, "(idle)")
		return
	}

	header := seqStyle.Render(s.SegmentationWithCase())
	if s.InHelpMode() {
		header += " " + helpStyle.Render("["+s.HelpCodes()+"]")
	}
	total := len(s.Candidates())
	pages := (total + h.pageSize - 1) / h.pageSize
	fmt.Fprintf(h.out, "%s  %s\n", header, hintStyle.Render(fmt.Sprintf("%s, %d candidates", s.State(), total)))

	items := s.Page(h.page, h.pageSize)
	if len(items) == 0 {
		fmt.Fprintln(h.out, "no candidates")
		return
	}
	sch := h.dict.Scheme()
	var b strings.Builder
	for i, it := range items {
		fmt.Fprintf(&b, "%d.%s%s ", i+1, wordStyle.Render(it.Word), hintStyle.Render(helpcode.Annotate(sch, it.Word)))
	}
	fmt.Fprintln(h.out, strings.TrimSpace(b.String()))
	if pages > 1 {
		fmt.Fprintln(h.out, hintStyle.Render(fmt.Sprintf("page %d/%d", h.page+1, pages)))
	}
}
