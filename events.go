package custody

import (
	"fmt"

	common "github.com/tendermint/tendermint/libs/common"
)

// Event is an observable notification emitted by a successful engine
// operation. Attributes are key-value tags, same as the ones returned to
// an ABCI host in a DeliverResult.
type Event struct {
	Type       string
	Attributes []common.KVPair
}

// NewEvent constructs an event from a type and a list of attribute pairs.
func NewEvent(typ string, attrs ...common.KVPair) Event {
	return Event{
		Type:       typ,
		Attributes: attrs,
	}
}

// Pair is a helper to build an event attribute.
func Pair(key string, value interface{}) common.KVPair {
	return common.KVPair{
		Key:   []byte(key),
		Value: []byte(fmt.Sprint(value)),
	}
}

// EventSink consumes events emitted by the engine. Events for an
// operation are delivered only after the operation's state delta has
// been committed. The execution-failure event is the one exception, it
// reports a delta that was compensated.
type EventSink func(Event)

// NopSink drops all events. Used when the host does not care.
func NopSink(Event) {}
