package domain

import "encoding/json"

// Intent is a queued client command waiting for the next tick.
type Intent struct {
	Type      IntentType      // numeric, cheap to switch on
	SessionID string          // connection that issued the intent
	Payload   json.RawMessage // parsed by the handler
	Join      *PlayerData     // only for IntentJoin, loaded by the gateway
}
