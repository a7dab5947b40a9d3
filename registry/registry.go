// Package registry provides the process-wide named-object registry. It hands
// out long-lived singleton-like objects by name and guarantees that each name
// is registered at most once for the life of the process.
package registry

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/anantjoshi01/gcam-core/hashmap"
)

// initialMapCapacity - Initial bucket slot count for the lookup map. It is
// sized generously so that lookups stay collision free for typical model
// vocabularies.
const initialMapCapacity int = 103

// Object - Interface for anything that can be held by the registry. The name
// must be stable for the lifetime of the object and unique among all
// registered objects.
type Object interface {
	Name() string
}

// AtomRegistry - The process-wide registry. It exclusively owns every object
// registered into it; callers keep using their references but must not
// assume any right to remove or replace a registration.
//
// Access it through Instance. The registry itself is not safe for concurrent
// mutation, callers mutating from multiple goroutines must serialize
// externally just as with the underlying map.
type AtomRegistry struct {
	objects *hashmap.Map[string, Object]
	logger  *slog.Logger
}

var (
	instance     *AtomRegistry
	instanceOnce sync.Once
)

// Instance - Returns the single process-wide AtomRegistry, creating it on
// first use. All callers share the same registry until process exit.
func Instance() *AtomRegistry {
	instanceOnce.Do(func() {
		objects, err := hashmap.NewStringMapWithCapacity[Object](initialMapCapacity)
		if err != nil {
			// initialMapCapacity is a positive constant, construction can
			// not fail.
			panic(fmt.Sprintf("registry: creating lookup map: %v", err))
		}
		instance = &AtomRegistry{
			objects: objects,
			logger:  slog.Default(),
		}
	})
	return instance
}

// Register - Adds an object to the registry so it can be fetched throughout
// the model. The registry is searched first; a duplicate name is rejected
// with a warning and the existing registration is left untouched.
//
// It returns:
//   - ok is true if the object was registered, false on a duplicate or nil object
func (A *AtomRegistry) Register(obj Object) (ok bool) {
	if obj == nil {
		A.logger.Warn("attempt to register nil object")
		return false
	}

	if A.Find(obj.Name()) != nil {
		A.logger.Warn("attempt to register duplicate object, keeping existing registration",
			slog.String("name", obj.Name()),
		)
		return false
	}

	A.objects.Insert(obj.Name(), obj)
	return true
}

// Find - Returns the object registered under the given name, or nil if no
// such registration exists. Absence is a normal outcome, not an error.
func (A *AtomRegistry) Find(name string) Object {
	it := A.objects.FindConst(name)
	if it == A.objects.ConstEnd() {
		return nil
	}
	return it.Value()
}

// Size - Returns the number of registered objects.
func (A *AtomRegistry) Size() int {
	return A.objects.Size()
}
