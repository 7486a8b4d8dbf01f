package event

import (
	"encoding/json"
	"fmt"
)

// Frame is the wire envelope for a single event.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// DecodeInbound decodes a payload into its typed inbound event. An unknown
// kind is an error; a missing payload decodes to the zero event. Fields
// outside the known schema are dropped, the relay has no use for them.
func DecodeInbound(kind string, data json.RawMessage) (Inbound, error) {
	var ev Inbound
	switch kind {
	case KindJoin:
		ev = &Join{}
	case KindSendMessage:
		ev = &SendMessage{}
	case KindTyping:
		ev = &Typing{}
	case KindCallUser:
		ev = &CallUser{}
	case KindAcceptCall:
		ev = &AcceptCall{}
	case KindRejectCall:
		ev = &RejectCall{}
	case KindEndCall:
		ev = &EndCall{}
	case KindIceCandidate:
		ev = &IceCandidate{}
	default:
		return nil, fmt.Errorf("unknown event kind: %q", kind)
	}

	if len(data) == 0 {
		return ev, nil
	}
	if err := json.Unmarshal(data, ev); err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	return ev, nil
}

// EncodeFrame wraps an outbound event in its wire envelope.
func EncodeFrame(ev Outbound) ([]byte, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Frame{Event: ev.Kind(), Data: data})
}
