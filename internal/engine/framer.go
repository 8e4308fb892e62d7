package engine

// Framer turns the untyped token stream of an encoding/json style decoder
// into engine tokens. Such decoders report object keys and string values with
// the same Go type; the framer tells them apart by tracking container nesting.
// Drivers own one Framer per input.
type Framer struct {
	stack []frameState
}

type frameState struct {
	object       bool
	expectingKey bool
}

// Open records '{' or '[' and returns the token kind.
func (f *Framer) Open(object bool) Kind {
	f.stack = append(f.stack, frameState{object: object, expectingKey: object})
	if object {
		return KindBeginObject
	}
	return KindBeginArray
}

// Close records '}' or ']' and returns the token kind.
func (f *Framer) Close(object bool) Kind {
	if n := len(f.stack); n > 0 {
		f.stack = f.stack[:n-1]
	}
	f.valueDone()
	if object {
		return KindEndObject
	}
	return KindEndArray
}

// Text classifies a string token as an object key or a string value.
func (f *Framer) Text() Kind {
	if n := len(f.stack); n > 0 {
		top := &f.stack[n-1]
		if top.object && top.expectingKey {
			top.expectingKey = false
			return KindKey
		}
	}
	f.valueDone()
	return KindString
}

// Scalar records a number, boolean or null value and returns k.
func (f *Framer) Scalar(k Kind) Kind {
	f.valueDone()
	return k
}

func (f *Framer) valueDone() {
	if n := len(f.stack); n > 0 {
		top := &f.stack[n-1]
		if top.object && !top.expectingKey {
			top.expectingKey = true
		}
	}
}
