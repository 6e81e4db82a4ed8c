package save

import "fmt"

// payloadKey maps one named persisted value in a slot to its tagged payload.
func payloadKey(slot, key string) string {
	return fmt.Sprintf("SAVE:SLOT-%s:VALUE-%s", slot, key)
}

// manifestKey stores the slot's manifest: the session id of the pass that
// wrote it and the set of value keys it contains.
func manifestKey(slot string) string {
	return fmt.Sprintf("SAVE:SLOT-%s:MANIFEST", slot)
}
