package pubsub

import (
	"fmt"
	"unicode/utf8"
)

// Message is an immutable message body plus its key-value attributes. It is
// owned by whichever Topic, PullEvent or PushEvent holds it; callers must not
// modify the byte slice or attribute map returned by the accessors.
type Message struct {
	data       []byte
	attributes map[string]string
}

// NewBytesMessage builds a message from a raw body. The attribute map is
// copied; nil is equivalent to an empty map.
func NewBytesMessage(data []byte, attributes map[string]string) *Message {
	m := &Message{data: data}

	if len(attributes) > 0 {
		m.attributes = make(map[string]string, len(attributes))
		for k, v := range attributes {
			m.attributes[k] = v
		}
	}

	return m
}

// NewStringMessage builds a message whose body is the UTF-8 encoding of text.
func NewStringMessage(text string, attributes map[string]string) *Message {
	return NewBytesMessage([]byte(text), attributes)
}

// Bytes returns the raw message body.
func (m *Message) Bytes() []byte {
	return m.data
}

// Text returns the message body decoded as UTF-8 text. A body that is not
// valid UTF-8 fails with ErrDecode instead of being silently substituted.
func (m *Message) Text() (string, error) {
	if !utf8.Valid(m.data) {
		return "", fmt.Errorf("%w: message body is not valid UTF-8", ErrDecode)
	}

	return string(m.data), nil
}

// Attributes returns the message attributes. May be nil when the message
// carries none.
func (m *Message) Attributes() map[string]string {
	return m.attributes
}
