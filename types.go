package loom

// TypeDescriptor is a nominal type tag carried by ports and connections.
// Types participate in a declared subtype relation rooted at TypeObject.
type TypeDescriptor string

// Built-in type descriptors. TypeObject is the top type; every descriptor,
// including unknown user-defined tags, is a subtype of it.
const (
	TypeObject   TypeDescriptor = "object"
	TypeInt      TypeDescriptor = "int"
	TypeFloat    TypeDescriptor = "float"
	TypeStr      TypeDescriptor = "str"
	TypeBool     TypeDescriptor = "bool"
	TypeList     TypeDescriptor = "list"
	TypeDict     TypeDescriptor = "dict"
	TypeTuple    TypeDescriptor = "tuple"
	TypeSet      TypeDescriptor = "set"
	TypeCallable TypeDescriptor = "callable"
	TypeNone     TypeDescriptor = "NoneType"
)

// supertypes declares the immediate supertype of each built-in descriptor.
// bool is a subtype of int, matching the source language's numeric tower.
var supertypes = map[TypeDescriptor]TypeDescriptor{
	TypeInt:      TypeObject,
	TypeFloat:    TypeObject,
	TypeStr:      TypeObject,
	TypeBool:     TypeInt,
	TypeList:     TypeObject,
	TypeDict:     TypeObject,
	TypeTuple:    TypeObject,
	TypeSet:      TypeObject,
	TypeCallable: TypeObject,
	TypeNone:     TypeObject,
}

// IsSubtypeOf reports whether t is d or a declared descendant of d.
// Descriptors absent from the relation table are direct subtypes of
// TypeObject only.
func (t TypeDescriptor) IsSubtypeOf(d TypeDescriptor) bool {
	if t == d || d == TypeObject {
		return true
	}
	for cur, ok := supertypes[t]; ok; cur, ok = supertypes[cur] {
		if cur == d {
			return true
		}
	}
	return false
}

// Compatible reports whether two descriptors may be connected.
//
// The check is symmetric: either side being a subtype of the other is
// accepted. Only output-subtype-of-input would be sound, but the permissive
// form is deliberate here; connections carry the source type, and downstream
// consumers tolerate the widening.
func Compatible(a, b TypeDescriptor) bool {
	return a.IsSubtypeOf(b) || b.IsSubtypeOf(a)
}
