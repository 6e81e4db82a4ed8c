// Package codec converts handle and location values to and from their tagged
// persisted form. A payload is `<tag>\n<body>`: the tag names the kind, the
// body's format is owned entirely by that kind's codec. The tag space is an
// open registry; adding a referenceable kind means registering one more
// (tag, encode, decode) triple and never changes an existing encoding.
package codec

import (
	"reflect"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
)

const tagSeparator = '\n'

type entry struct {
	tag    string
	typ    reflect.Type
	encode func(*Session, any) ([]byte, error)
	decode func(*Session, []byte) (any, error)
}

// Codec dispatches encoding on a value's concrete Go type and decoding on a
// payload's leading tag.
type Codec struct {
	byTag  map[string]*entry
	byType map[reflect.Type]*entry
}

func New() *Codec {
	return &Codec{
		byTag:  map[string]*entry{},
		byType: map[reflect.Type]*entry{},
	}
}

// Register adds a kind to the codec. The tag must be unique and newline-free;
// the concrete type T must not already be registered.
func Register[T any](
	c *Codec,
	tag string,
	encode func(*Session, T) ([]byte, error),
	decode func(*Session, []byte) (T, error),
) error {
	if tag == "" || strings.ContainsRune(tag, tagSeparator) {
		return eris.Wrap(ErrInvalidTag, tag)
	}
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if _, ok := c.byTag[tag]; ok {
		return eris.Wrap(ErrTagRegistered, tag)
	}
	if _, ok := c.byType[typ]; ok {
		return eris.Wrap(ErrTypeRegistered, typ.String())
	}
	e := &entry{
		tag: tag,
		typ: typ,
		encode: func(sess *Session, v any) ([]byte, error) {
			return encode(sess, v.(T))
		},
		decode: func(sess *Session, body []byte) (any, error) {
			return decode(sess, body)
		},
	}
	c.byTag[tag] = e
	c.byType[typ] = e
	return nil
}

// Encode converts v into its tagged payload. Fails with ErrUnsupportedKind if
// v's type has no registered codec.
func (c *Codec) Encode(sess *Session, v any) (string, error) {
	if v == nil {
		return "", eris.Wrap(ErrUnsupportedKind, "nil value")
	}
	e, ok := c.byType[reflect.TypeOf(v)]
	if !ok {
		return "", eris.Wrap(ErrUnsupportedKind, reflect.TypeOf(v).String())
	}
	body, err := e.encode(sess, v)
	if err != nil {
		return "", err
	}
	sess.Logger.Debug().Str("tag", e.tag).Int("body_bytes", len(body)).Msg("encoded value")
	return e.tag + string(tagSeparator) + string(body), nil
}

// Decode reconstructs the value a payload encodes. Payloads without a tag
// separator fail with ErrMalformedPayload, unknown tags with
// ErrUnsupportedKind; body errors are whatever the kind's decoder reports.
func (c *Codec) Decode(sess *Session, payload string) (any, error) {
	i := strings.IndexByte(payload, tagSeparator)
	if i < 0 {
		return nil, eris.Wrap(ErrMalformedPayload, "missing tag separator")
	}
	tag := payload[:i]
	e, ok := c.byTag[tag]
	if !ok {
		return nil, eris.Wrap(ErrUnsupportedKind, tag)
	}
	v, err := e.decode(sess, []byte(payload[i+1:]))
	if err != nil {
		return nil, err
	}
	sess.Logger.Debug().Str("tag", tag).Msg("decoded value")
	return v, nil
}

// Tags lists the registered tags, sorted.
func (c *Codec) Tags() []string {
	tags := make([]string, 0, len(c.byTag))
	for tag := range c.byTag {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
