package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/AlexZinkM/scf-launchpad/stellar"
)

// terminalApprover asks on the terminal before granting access or signing.
// One goroutine owns the input; answers typed while no prompt is open are
// dropped before the next prompt. Without a terminal every request is denied.
type terminalApprover struct {
	log         *zap.SugaredLogger
	out         io.Writer
	interactive bool
	lines       chan string

	mu sync.Mutex
}

func newTerminalApprover(in *os.File, out io.Writer, log *zap.SugaredLogger) *terminalApprover {
	return newLineApprover(in, out, term.IsTerminal(int(in.Fd())), log)
}

func newLineApprover(in io.Reader, out io.Writer, interactive bool, log *zap.SugaredLogger) *terminalApprover {
	a := &terminalApprover{
		log:         log,
		out:         out,
		interactive: interactive,
		lines:       make(chan string, 16),
	}
	if interactive {
		go a.readLines(in)
	}
	return a
}

func (a *terminalApprover) readLines(in io.Reader) {
	defer close(a.lines)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		a.lines <- strings.TrimSpace(strings.ToLower(scanner.Text()))
	}
}

// drain discards answers to prompts that are no longer open.
func (a *terminalApprover) drain() {
	for {
		select {
		case line, ok := <-a.lines:
			if !ok {
				return
			}
			a.log.Debugw("Discarding stale approval input", "input", line)
		default:
			return
		}
	}
}

func (a *terminalApprover) Approve(ctx context.Context, req stellar.ApprovalRequest) (bool, error) {
	if !a.interactive {
		a.log.Warnw("No terminal to approve request, denying", "kind", req.Kind, "address", req.Address)
		return false, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.drain()
	switch req.Kind {
	case stellar.ApproveSign:
		fmt.Fprintf(a.out, "\nSign transaction for %s on %q?\n%s\n[y/N]: ", req.Address, req.Passphrase, req.XDR)
	default:
		fmt.Fprintf(a.out, "\nAllow the launchpad to access %s? [y/N]: ", req.Address)
	}

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case line, ok := <-a.lines:
		if !ok {
			return false, nil
		}
		return line == "y" || line == "yes", nil
	}
}
