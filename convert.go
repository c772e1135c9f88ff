package decay

// IntoDecay is implemented by values that already are, or can produce
// without conversion, a chain of outer type O. *Decay[O] implements it
// by returning itself.
type IntoDecay[O error] interface {
	IntoDecay() *Decay[O]
}

// The conversion protocol lifts foreign values into a chain. The entry
// points differ by the number of conversions needed to reach O:
//
//	FromChain    0 hops: the value already is a chain
//	Lift         1 hop:  the value is an O
//	LiftWith     1 hop:  the value converts into O
//	LiftThrough  2 hops: the value converts into something that converts into O
//
// Each entry point first checks whether the value at hand is already a
// chain of outer type O and, if so, passes it through: a chain is never
// wrapped inside another chain's Leaf.

// FromChain returns the chain held by v unchanged.
func FromChain[O error](v IntoDecay[O]) *Decay[O] {
	if v == nil {
		return nil
	}
	return v.IntoDecay()
}

// Lift returns a Leaf holding outer, the canonical way to take a foreign
// failure into a chain. A nil outer gives a nil chain; an outer that
// already is a chain of type O is returned as is.
func Lift[O error](outer O) *Decay[O] {
	if isNil(outer) {
		return nil
	}
	if d, ok := asChain[O](outer); ok {
		return d
	}
	return &Decay[O]{kind: Leaf, outer: outer}
}

// LiftWith converts value into O with conv and lifts the result.
func LiftWith[O error, E any](value E, conv func(E) O) *Decay[O] {
	if d, ok := asChain[O](value); ok {
		return d
	}
	return Lift(conv(value))
}

// LiftThrough converts value into O in two steps and lifts the result.
// It spares call sites an explicit intermediate conversion.
func LiftThrough[O error, M, E any](value E, first func(E) M, then func(M) O) *Decay[O] {
	if d, ok := asChain[O](value); ok {
		return d
	}
	return LiftWith(first(value), then)
}

// Morph returns a single-use transformation that lifts a failure and
// adds a step at place with note: "convert, then Further" in one call.
//
//	resp, err := client.Do(req)
//	if err != nil {
//	    return nil, decay.Morph[error](decay.Here(), decay.NoteOf("calling upstream"))(err)
//	}
func Morph[O error](place Place, note Note) func(O) *Decay[O] {
	return func(outer O) *Decay[O] {
		return Lift(outer).Further(place, note)
	}
}

// MorphUnnoted is Morph without a note.
func MorphUnnoted[O error](place Place) func(O) *Decay[O] {
	return Morph[O](place, NoNote)
}

// MorphWith is Morph for values that must first be converted into O.
func MorphWith[O error, E any](place Place, note Note, conv func(E) O) func(E) *Decay[O] {
	return func(value E) *Decay[O] {
		return LiftWith(value, conv).Further(place, note)
	}
}

// MorphChain is Morph for values that already are chains.
func MorphChain[O error](place Place, note Note) func(IntoDecay[O]) *Decay[O] {
	return func(v IntoDecay[O]) *Decay[O] {
		return FromChain(v).Further(place, note)
	}
}

// asChain reports whether v already is a chain of outer type O.
func asChain[O error](v any) (*Decay[O], bool) {
	if c, ok := v.(IntoDecay[O]); ok {
		return c.IntoDecay(), true
	}
	return nil, false
}
