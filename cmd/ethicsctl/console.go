package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"ethicsreview/internal/adapters/ethereum"
	"ethicsreview/internal/ports"
	"ethicsreview/internal/services/readmodel"
)

// consoleNotifier prints successes to out and errors to errOut.
type consoleNotifier struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
}

var _ ports.Notifier = (*consoleNotifier)(nil)

func (n *consoleNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.errOut, "error:", msg)
}

func (n *consoleNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.out, msg)
}

// promptApprover asks on the terminal before each signature. Anything but
// y or yes rejects.
func promptApprover(in io.Reader, out io.Writer) ethereum.Approver {
	r := bufio.NewReader(in)
	var mu sync.Mutex
	return func(ctx context.Context, req ethereum.SignRequest) (bool, error) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(out, "Sign %s from %s to %s (nonce %d, gas %d)? [y/N] ",
			req.Method, req.From.Hex(), req.To.Hex(), req.Nonce, req.Gas)
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			if err == io.EOF {
				return false, nil
			}
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}

// summarySink prints a one-line summary of each reload.
type summarySink struct {
	out io.Writer
}

func (s summarySink) Publish(v readmodel.View) {
	fmt.Fprintf(s.out, "Loaded %d proposals and %d reviewers\n", len(v.Proposals.Items), len(v.Reviewers.Items))
}
