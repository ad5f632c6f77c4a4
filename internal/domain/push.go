package domain

import "context"

// PushMessage is one batch push addressed to every device token of a seller.
type PushMessage struct {
	Tokens []string
	Title  string
	Body   string
	Data   map[string]string
}

// PushTicket is the per-token delivery outcome. One bad token never fails
// the batch; it just produces a non-ok ticket.
type PushTicket struct {
	Token   string
	OK      bool
	Message string
}

type PushSender interface {
	SendBatch(ctx context.Context, msg *PushMessage) ([]PushTicket, error)
}
