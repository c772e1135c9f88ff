// Package decay provides error chains that record where a failure
// travelled, not only what it was. It works alongside the standard
// library https://go.pkg.dev/errors and borrows the formatting
// conventions of:
//
// • https://github.com/pkg/errors, and
//
// • https://pkg.go.dev/golang.org/x/xerrors.
//
// # Error context
//
// When we write the following:
//
//	if err != nil {
//	    return err
//	}
//
// ... we allow errors to lose error context: the human-readable root
// cause and the path it took through the program.
//
// fmt.Errorf with "%w" helps with the first, one message at a time. A
// decay chain keeps both: each propagation step records its source
// position (a Place) and, optionally, a note:
//
//	func loadProfile(id string) (*Profile, *decay.Decay[*FetchError]) {
//	    raw, ferr := fetch(id)
//	    if ferr != nil {
//	        return nil, decay.Lift(ferr).Further(decay.Here(), decay.NoteOf("fetching profile"))
//	    }
//	    p, d := parse(raw)
//	    if d != nil {
//	        return nil, d.FurtherUnnoted(decay.Here())
//	    }
//	    return p, nil
//	}
//
// # Chains
//
// A chain is a stack of frames. The innermost frame is the root cause
// and is either Rooted, a failure detected by this program with a note
// and its places, or a Leaf holding a failure value of the chain's
// outer type O. Every frame above it is Wrapped: a note and places on
// top of the chain below.
//
// Steps that add no note do not add a frame: the place is merged into
// the trail of the outermost frame, so a chain has one frame per
// distinct message. A Leaf cannot hold places, so the first step on top
// of one always adds a frame.
//
// Chains are persistent values. Further and its helpers return a new
// outermost frame that shares everything below it, which makes a
// finished chain safe to read from many goroutines.
//
// # Capturing places
//
// Here captures the Place of its caller. Newf, Rot, RotWith and Rotf
// capture it for you:
//
//	n, err := strconv.Atoi(raw)
//	if err != nil {
//	    return decay.Rot[error]("parsing %q", raw)(err)
//	}
//
// The Go runtime reports files and lines but not columns, so captured
// places carry a zero column. NewPlace builds synthetic places, for
// tests or for positions recorded elsewhere.
//
// # Converting foreign failures
//
// A value reaches a chain through the entry point matching the number
// of conversions it needs: FromChain for a value that already is a
// chain, Lift for an O, LiftWith for a value converting into O and
// LiftThrough for two conversions. Morph and its variants return the
// same conversion followed by Further as a single function, for use
// where a failure is first observed. None of them ever wraps a chain of
// type O inside another chain's Leaf.
//
// # Standard library errors
//
// Chains implement error. Unwrap walks one frame at a time and ends at
// the Leaf's outer value, so Is and As (re-exported here with Unwrap,
// Join and NewError) see through them:
//
//	var fe *FetchError
//	if decay.As(err, &fe) && fe.Code == 503 {
//	    // retry
//	}
//
// PlacesFrom collects the places of every chain found while unwrapping
// an error, and AsChain finds the chain itself.
//
// # Serialization
//
// Chains encode to JSON and msgpack as a flat array, outermost first,
// of note texts and, last, the Leaf's outer value. Places and unnoted
// frames are dropped:
//
//	["fetching profile","reading cache",{"code":503,"msg":"unavailable"}]
//
// The receiver decodes this into a Report, not a chain. Each element is
// tried as the outer type first and as text second.
//
// # Formatted printing of errors
//
// Chains, places and reports implement fmt.Formatter and can be
// formatted by the fmt package. For chains the following verbs are
// supported:
//
//	%s    the notes, outermost first, and the outer error's message joined by ": "
//	%v    same as %s
//	%q    same as %s but quoted
//	%#v   a single-line debug rendering with short places
//	%+v   extended format. Prints each frame's places and note, then the outer error
//
// Chains also implement slog.LogValuer.
package decay
