package target

// AnnotationKind tags the analysis that produced a payload in the store.
// Each analysis owns exactly one kind and is its sole writer.
type AnnotationKind uint8

// Annotations maps analysis kinds to their result payloads. A snapshot
// holds at most one payload per kind. Nothing is carried between snapshots
// implicitly; a pass that wants its predecessor's results must copy them
// into the snapshot it produces.
type Annotations struct {
	m map[AnnotationKind]any
}

// Set installs or replaces the payload for kind in this snapshot.
func (a *Annotations) Set(kind AnnotationKind, value any) {
	if a.m == nil {
		a.m = make(map[AnnotationKind]any)
	}
	a.m[kind] = value
}

// Get returns the payload for kind, if one was set.
func (a *Annotations) Get(kind AnnotationKind) (any, bool) {
	v, ok := a.m[kind]
	return v, ok
}

// Has reports whether a payload for kind was set.
func (a *Annotations) Has(kind AnnotationKind) bool {
	_, ok := a.m[kind]
	return ok
}

// GetAnnotation returns the payload for kind with its concrete type
// recovered. A payload of the wrong type counts as absent.
func GetAnnotation[T any](a *Annotations, kind AnnotationKind) (T, bool) {
	v, ok := a.m[kind]
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}
