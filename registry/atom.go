package registry

// Atom - A unique named identifier. Atoms registered with the AtomRegistry
// can be compared by pointer identity instead of string comparison, since
// the registry guarantees at most one atom per name.
type Atom struct {
	name string
}

// NewAtom - Creates an atom and registers it with the process-wide registry.
//
// It returns:
//   - atom is the registered atom, or the previously registered one if the
//     name was already taken by another atom
func NewAtom(name string) (atom *Atom) {
	atom = &Atom{name: name}
	if !Instance().Register(atom) {
		if existing, isAtom := Instance().Find(name).(*Atom); isAtom {
			atom = existing
		}
	}
	return
}

// Name - Returns the atom's unique identifier.
func (A *Atom) Name() string {
	return A.name
}
