package decay

// Helpers to extract data from the error interface.

// placer is implemented by errors that record the places they were
// propagated through. It is how PlacesFrom reads chains of any outer
// type.
type placer interface {
	Places() (PlaceChain, bool)
}

// PlacesFrom extracts all the places annotated across an error chain in
// order, most recent first. To do this it traverses the chain with
// Unwrap while aggregating the places of every frame that records them.
// Errors from other packages are walked through but contribute nothing.
//
// Returns nil if no place is found.
func PlacesFrom(err error) (places []Place) {
	for err != nil {
		if p, ok := err.(placer); ok {
			if pc, ok := p.Places(); ok {
				for place := range pc.All() {
					places = append(places, place)
				}
			}
		}
		err = Unwrap(err)
	}
	return
}

// AsChain finds the first chain of outer type O in err's chain (err
// itself included) and returns it.
func AsChain[O error](err error) (*Decay[O], bool) {
	var d *Decay[O]
	if As(err, &d) {
		return d, true
	}
	return nil, false
}

// RootOf returns the innermost cause of err: the last error reached by
// repeatedly calling Unwrap. For a chain ending in a Leaf this is the
// outer failure; for one ending in a Rooted frame it is that frame.
func RootOf(err error) error {
	for err != nil {
		next := Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
	return nil
}
