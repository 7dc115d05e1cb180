package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type sentEmail struct {
	To, Subject, Body string
}

// recordingNotifier keeps every email it is asked to send and fails for addresses in failFor.
type recordingNotifier struct {
	mu      sync.Mutex
	sent    []sentEmail
	failFor map[string]bool
}

func (n *recordingNotifier) Send(_ context.Context, to, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failFor[to] {
		return errors.New("smtp unavailable")
	}
	n.sent = append(n.sent, sentEmail{To: to, Subject: subject, Body: body})
	return nil
}

func (n *recordingNotifier) to(addr string) []sentEmail {
	n.mu.Lock()
	defer n.mu.Unlock()
	var result []sentEmail
	for _, e := range n.sent {
		if e.To == addr {
			result = append(result, e)
		}
	}
	return result
}
