package event

import "encoding/json"

// Event kind strings. These are part of the wire contract with existing
// clients and must not change.
const (
	KindJoin         = "join"
	KindSendMessage  = "send-message"
	KindTyping       = "typing"
	KindCallUser     = "call-user"
	KindAcceptCall   = "accept-call"
	KindRejectCall   = "reject-call"
	KindEndCall      = "end-call"
	KindIceCandidate = "ice-candidate"

	KindReceiveMessage = "receive-message"
	KindUserTyping     = "user-typing"
	KindIncomingCall   = "incoming-call"
	KindCallFailed     = "call-failed"
	KindCallAccepted   = "call-accepted"
	KindCallRejected   = "call-rejected"
	KindCallEnded      = "call-ended"
	KindUserOnline     = "user-online"
	KindUserOffline    = "user-offline"
)

// Inbound is an event received from a client session.
type Inbound interface {
	Kind() string
}

// Outbound is an event emitted to a client session.
type Outbound interface {
	Kind() string
}

// Join binds the sending session to a user id.
type Join struct {
	UserID string `json:"userId"`
}

func (Join) Kind() string { return KindJoin }

// SendMessage is a point-to-point chat message addressed to a receiver.
// CreatedAt is opaque to the relay and forwarded byte-for-byte; clients have
// been seen sending both epoch numbers and ISO timestamps.
type SendMessage struct {
	MessageID  string          `json:"messageId"`
	SenderID   string          `json:"senderId"`
	ReceiverID string          `json:"receiverId"`
	Text       string          `json:"text"`
	CreatedAt  json.RawMessage `json:"createdAt,omitempty"`
}

func (SendMessage) Kind() string { return KindSendMessage }

// ReceiveMessage is the delivery of a SendMessage to its receiver.
type ReceiveMessage struct {
	MessageID  string          `json:"messageId"`
	SenderID   string          `json:"senderId"`
	ReceiverID string          `json:"receiverId"`
	Text       string          `json:"text"`
	CreatedAt  json.RawMessage `json:"createdAt,omitempty"`
}

func (ReceiveMessage) Kind() string { return KindReceiveMessage }

// Typing is a best-effort typing indicator addressed to a receiver.
type Typing struct {
	ReceiverID string `json:"receiverId"`
	IsTyping   bool   `json:"isTyping"`
}

func (Typing) Kind() string { return KindTyping }

// UserTyping tells the receiver who is typing at them.
type UserTyping struct {
	UserID   string `json:"userId"`
	IsTyping bool   `json:"isTyping"`
}

func (UserTyping) Kind() string { return KindUserTyping }

// CallUser initiates a call. Signal carries the WebRTC offer and is never
// inspected by the relay.
type CallUser struct {
	To       string          `json:"to"`
	From     string          `json:"from"`
	Signal   json.RawMessage `json:"signal,omitempty"`
	CallType string          `json:"callType"`
}

func (CallUser) Kind() string { return KindCallUser }

// IncomingCall rings the callee.
type IncomingCall struct {
	From     string          `json:"from"`
	Signal   json.RawMessage `json:"signal,omitempty"`
	CallType string          `json:"callType"`
}

func (IncomingCall) Kind() string { return KindIncomingCall }

// CallFailed is sent back to a caller whose callee is not online. It is the
// only failure the relay ever surfaces to a client.
type CallFailed struct {
	Reason string `json:"reason"`
}

func (CallFailed) Kind() string { return KindCallFailed }

// AcceptCall answers a ringing call. Signal carries the WebRTC answer.
type AcceptCall struct {
	To     string          `json:"to"`
	Signal json.RawMessage `json:"signal,omitempty"`
}

func (AcceptCall) Kind() string { return KindAcceptCall }

// CallAccepted relays the answer to the caller.
type CallAccepted struct {
	Signal json.RawMessage `json:"signal,omitempty"`
}

func (CallAccepted) Kind() string { return KindCallAccepted }

// RejectCall declines a ringing call.
type RejectCall struct {
	To string `json:"to"`
}

func (RejectCall) Kind() string { return KindRejectCall }

// CallRejected relays the decline to the caller. No payload.
type CallRejected struct{}

func (CallRejected) Kind() string { return KindCallRejected }

// EndCall hangs up an established call.
type EndCall struct {
	To string `json:"to"`
}

func (EndCall) Kind() string { return KindEndCall }

// CallEnded relays the hang-up to the peer. No payload.
type CallEnded struct{}

func (CallEnded) Kind() string { return KindCallEnded }

// IceCandidate is a trickled ICE candidate addressed to the call peer.
type IceCandidate struct {
	To        string          `json:"to"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
}

func (IceCandidate) Kind() string { return KindIceCandidate }

// Candidate is the relayed form of an IceCandidate, without the address.
type Candidate struct {
	Candidate json.RawMessage `json:"candidate,omitempty"`
}

func (Candidate) Kind() string { return KindIceCandidate }

// UserOnline announces a join to everyone else.
type UserOnline struct {
	UserID string `json:"userId"`
}

func (UserOnline) Kind() string { return KindUserOnline }

// UserOffline announces a disconnect to everyone remaining.
type UserOffline struct {
	UserID string `json:"userId"`
}

func (UserOffline) Kind() string { return KindUserOffline }
