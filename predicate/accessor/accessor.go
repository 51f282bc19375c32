// Package accessor resolves single path components against live object
// graphs. It is the boundary between predicate evaluation and the shape
// of the objects being evaluated: the engine only ever asks "what are
// the values of component X on instance Y" and never inspects instances
// itself.
package accessor

// Accessor resolves one path component against an instance.
//
// A direct scalar field resolves to a one-element sequence. A to-many
// relation resolves to every related instance. A component the instance
// does not have resolves to [nil] rather than an error, so that a
// missing field behaves like a null-valued one.
type Accessor interface {
	Resolve(instance any, field string) ([]any, error)
}

// Default is the accessor used when the caller does not supply one.
var Default Accessor = Reflect{}

// Func adapts a plain function to the Accessor interface.
type Func func(instance any, field string) ([]any, error)

func (f Func) Resolve(instance any, field string) ([]any, error) {
	return f(instance, field)
}
