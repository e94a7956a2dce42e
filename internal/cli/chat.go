package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/showcase/internal/app"
	"github.com/MrSnakeDoc/showcase/internal/assistant"
	"github.com/MrSnakeDoc/showcase/internal/domain"
)

func newChatCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat [record-id]",
		Short: "Talk to the assistant on stdin/stdout",
		Long: `Open an assistant session, optionally about one record, and exchange
messages line by line. Replies are printed as they stream in.
Type /quit or send EOF to leave.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recordID := ""
			if len(args) == 1 {
				recordID = args[0]
			}
			return opts.withCore(cmd.Context(), func(ctx context.Context, core *app.Core) error {
				s, err := core.OpenSession(ctx, recordID)
				if err != nil {
					return err
				}
				return runChat(ctx, s, cmd.InOrStdin(), cmd.OutOrStdout())
			})
		},
	}
}

// runChat drives s from in until EOF or /quit.
func runChat(ctx context.Context, s *assistant.Session, in io.Reader, out io.Writer) error {
	p := &deltaPrinter{out: out, printed: map[string]int{}}
	unsubscribe := s.Observe(p.observe)
	defer unsubscribe()

	for _, m := range s.Messages() {
		p.printMessage(m)
	}
	p.endLine()
	if s.Degraded() {
		_, _ = fmt.Fprintln(out, "(no AI credential configured, replies are simulated)")
	}

	scanner := bufio.NewScanner(in)
	for {
		_, _ = fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			_, _ = fmt.Fprintln(out)
			return scanner.Err()
		}

		text := strings.TrimSpace(scanner.Text())
		switch text {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		}

		if err := s.Send(ctx, text); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, assistant.ErrClosed) {
				return err
			}
			_, _ = fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

// deltaPrinter writes assistant text as it grows, tracking how much of each
// message was already printed.
type deltaPrinter struct {
	mu      sync.Mutex
	out     io.Writer
	printed map[string]int
	open    string // id of the assistant message currently being written
}

func (p *deltaPrinter) observe(e assistant.Event) {
	switch {
	case e.Kind == assistant.EventMessage && e.Message != nil && e.Message.Role == domain.RoleAssistant:
		p.printMessage(*e.Message)
	case e.Kind == assistant.EventState && e.State == assistant.StateReady:
		p.endLine()
	}
}

func (p *deltaPrinter) printMessage(m domain.ChatMessage) {
	if m.Role != domain.RoleAssistant {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.open != m.ID {
		if p.open != "" {
			_, _ = fmt.Fprintln(p.out)
		}
		_, _ = fmt.Fprint(p.out, "assistant: ")
		p.open = m.ID
	}

	done := p.printed[m.ID]
	if len(m.Text) > done {
		_, _ = fmt.Fprint(p.out, m.Text[done:])
		p.printed[m.ID] = len(m.Text)
	}
}

func (p *deltaPrinter) endLine() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.open != "" {
		_, _ = fmt.Fprintln(p.out)
		p.open = ""
	}
}
