package monitor

import "digital.vasic.corespec/pkg/scenario"

// MessageKind tags a frame sent to live monitor clients.
type MessageKind string

const (
	MessageDashboard MessageKind = "dashboard"
	MessageEvent     MessageKind = "event"
)

// Message is the JSON frame written to every WebSocket client.
// A client first receives a dashboard snapshot, then one event
// frame per runner event.
type Message struct {
	Kind      MessageKind     `json:"kind"`
	Event     *scenario.Event `json:"event,omitempty"`
	Dashboard *Snapshot       `json:"dashboard,omitempty"`
}
