package types

// EntityID is the unique identifier of a live entity instance. It is only
// meaningful within one running world; persisted payloads never contain it
// directly (see the identity package for the save-scoped mapping).
type EntityID uint64

// Kind classifies an entity. The set is closed but extensible: adding a kind
// means adding a constant here and teaching the relevant codecs about it.
type Kind uint8

const (
	KindBody Kind = iota
	KindShip
	KindStation
	KindCloud
)

func (k Kind) String() string {
	switch k {
	case KindBody:
		return "body"
	case KindShip:
		return "ship"
	case KindStation:
		return "station"
	case KindCloud:
		return "cloud"
	}
	return "unknown"
}

// ParseKind is the inverse of Kind.String. The second return value is false
// for names that don't map to a kind.
func ParseKind(name string) (Kind, bool) {
	switch name {
	case "body":
		return KindBody, true
	case "ship":
		return KindShip, true
	case "station":
		return KindStation, true
	case "cloud":
		return KindCloud, true
	}
	return 0, false
}
