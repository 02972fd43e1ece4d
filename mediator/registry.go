package mediator

import (
	"reflect"
	"unsafe"
)

// Registry holds the three dispatch tables: request type to handler, request
// type to behaviors, request type to notifications. It is an explicit object
// so independent mediators do not share a process-wide singleton.
//
// Registration is expected to complete before dispatch traffic begins; the
// registry takes no lock for concurrent registration interleaved with
// dispatch. That interleaving is a caller responsibility.
type Registry struct {
	handlers       map[reflect.Type]any
	handlersByName map[string]any

	// keys in first-registration order; matching preserves this order
	behaviorKeys  []reflect.Type
	behaviors     map[reflect.Type][]any
	notifyKeys    []reflect.Type
	notifications map[reflect.Type][]any
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	r := &Registry{}
	r.Reset()
	return r
}

// Reset clears all three tables. Intended for test isolation.
func (r *Registry) Reset() {
	r.handlers = make(map[reflect.Type]any)
	r.handlersByName = make(map[string]any)
	r.behaviorKeys = nil
	r.behaviors = make(map[reflect.Type][]any)
	r.notifyKeys = nil
	r.notifications = make(map[reflect.Type][]any)
}

// AddHandler binds target to requestType. The first registration for a type
// wins; later registrations for the same type are silently ignored.
func (r *Registry) AddHandler(requestType reflect.Type, target any) {
	if _, exists := r.handlers[requestType]; exists {
		return
	}
	r.handlers[requestType] = target
	if name := requestType.String(); r.handlersByName[name] == nil {
		r.handlersByName[name] = target
	}
}

// AddBehavior appends target to the behavior list for requestType.
// Duplicate targets (by identity) are ignored.
func (r *Registry) AddBehavior(requestType reflect.Type, target any) {
	if _, exists := r.behaviors[requestType]; !exists {
		r.behaviorKeys = append(r.behaviorKeys, requestType)
	}
	for _, existing := range r.behaviors[requestType] {
		if sameTarget(existing, target) {
			return
		}
	}
	r.behaviors[requestType] = append(r.behaviors[requestType], target)
}

// AddNotification appends target to the notification list for requestType.
// Duplicate targets (by identity) are ignored.
func (r *Registry) AddNotification(requestType reflect.Type, target any) {
	if _, exists := r.notifications[requestType]; !exists {
		r.notifyKeys = append(r.notifyKeys, requestType)
	}
	for _, existing := range r.notifications[requestType] {
		if sameTarget(existing, target) {
			return
		}
	}
	r.notifications[requestType] = append(r.notifications[requestType], target)
}

// Handler resolves the handler for a concrete request type: exact match first,
// then a fallback lookup by type name for callers that hold a distinct
// reflect.Type with the same printed name. No subclass promotion: at most one
// handler answers a given concrete type.
func (r *Registry) Handler(requestType reflect.Type) (any, bool) {
	if target, ok := r.handlers[requestType]; ok {
		return target, true
	}
	if target, ok := r.handlersByName[requestType.String()]; ok {
		return target, true
	}
	return nil, false
}

// MatchBehaviors collects every behavior whose key matches the request type,
// in key first-registration order, registration order within a key.
func (r *Registry) MatchBehaviors(requestType reflect.Type) []any {
	var matched []any
	for _, key := range r.behaviorKeys {
		if matchesKey(key, requestType) {
			matched = append(matched, r.behaviors[key]...)
		}
	}
	return matched
}

// MatchNotifications collects every notification whose key matches the request
// type, in the same order as MatchBehaviors.
func (r *Registry) MatchNotifications(requestType reflect.Type) []any {
	var matched []any
	for _, key := range r.notifyKeys {
		if matchesKey(key, requestType) {
			matched = append(matched, r.notifications[key]...)
		}
	}
	return matched
}

// matchesKey reports whether a registry key applies to a concrete request
// type: exact match, or the request type satisfies an interface key. The
// wildcard falls out of the interface rule because every type satisfies the
// empty interface.
func matchesKey(key, requestType reflect.Type) bool {
	if key == requestType {
		return true
	}
	if key.Kind() == reflect.Interface {
		return requestType.Implements(key)
	}
	return false
}

// sameTarget reports whether two registration targets are the same entry.
// Functions compare by func value, reference kinds by pointer, comparable
// values by equality.
func sameTarget(a, b any) bool {
	av := reflect.ValueOf(a)
	bv := reflect.ValueOf(b)
	if av.Kind() != bv.Kind() {
		return false
	}
	switch av.Kind() {
	case reflect.Func:
		// Value.Pointer would compare code pointers, which collide for every
		// closure built from one literal. The interface data word holds the
		// func value itself, so distinct closures stay distinct and
		// re-registering one value is idempotent.
		return dataPointer(a) == dataPointer(b)
	case reflect.Ptr, reflect.Chan, reflect.Map, reflect.Slice, reflect.UnsafePointer:
		return av.Pointer() == bv.Pointer()
	}
	if av.Comparable() && bv.Comparable() {
		return a == b
	}
	return false
}

// dataPointer returns the data word of an interface value
func dataPointer(v any) uintptr {
	return (*[2]uintptr)(unsafe.Pointer(&v))[1]
}
