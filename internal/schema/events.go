package schema

import (
	"github.com/roach88/yamui/internal/action"
	"github.com/roach88/yamui/internal/document"
)

// EventType names a widget event slot.
type EventType string

const (
	EventClick   EventType = "on_click"
	EventPress   EventType = "on_press"
	EventRelease EventType = "on_release"
	EventChange  EventType = "on_change"
	EventFocus   EventType = "on_focus"
	EventBlur    EventType = "on_blur"
	EventLoad    EventType = "on_load"
)

// EventTypes lists every recognized event slot in a fixed order.
var EventTypes = []EventType{
	EventClick, EventPress, EventRelease,
	EventChange, EventFocus, EventBlur, EventLoad,
}

// ActionsFor parses the action list bound to an event slot on a widget
// node. An absent slot is an empty list.
func ActionsFor(widget *document.Node, ev EventType) ([]action.Action, error) {
	if widget == nil {
		return nil, nil
	}
	return action.ListFromNode(widget.Child(string(ev)))
}

// Events returns the event slots a widget node actually binds, in the
// fixed EventTypes order.
func Events(widget *document.Node) []EventType {
	var bound []EventType
	for _, ev := range EventTypes {
		if widget.Child(string(ev)) != nil {
			bound = append(bound, ev)
		}
	}
	return bound
}
