package transgate

import (
	"context"
	"io"
	"sync"
)

// TestStream is an in-memory duplex stream for exercising a gateway in
// tests. Receive pops from a scripted inbox and Send records everything the
// gateway forwards.
//
// Example:
//
//	stream := transgate.NewTestStream(
//	    transgate.Message{Type: transgate.TypeRequestBody, Body: reqBody},
//	)
//	err := gw.Handle(ctx, env, stream.Receive, stream.Send)
//	sent := stream.Sent()
type TestStream struct {
	mu    sync.Mutex
	inbox []Message
	sent  []Message
}

// NewTestStream creates a stream whose Receive yields the provided messages
// in order, then io.EOF.
func NewTestStream(inbox ...Message) *TestStream {
	return &TestStream{inbox: inbox}
}

// Receive pops the next scripted inbound message. Returns io.EOF when the
// script is exhausted and ctx.Err when the context is done.
func (s *TestStream) Receive(ctx context.Context) (Message, error) {
	if err := ctx.Err(); err != nil {
		return Message{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.inbox) == 0 {
		return Message{}, io.EOF
	}
	msg := s.inbox[0]
	s.inbox = s.inbox[1:]
	return msg, nil
}

// Send records an outbound message.
func (s *TestStream) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return nil
}

// Sent returns a copy of all messages forwarded so far.
func (s *TestStream) Sent() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.sent...)
}

// Reset clears recorded messages and replaces the inbound script.
func (s *TestStream) Reset(inbox ...Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inbox = inbox
	s.sent = nil
}
