package refl

import (
	"fmt"
	"reflect"
)

// ComponentsOf walks the object graph below root and returns root plus
// every nested value implementing I, depth first over exported struct
// fields in declaration order. Both pointer fields implementing I and
// addressable fields whose address implements I are discovered, as well
// as elements of slice and array fields. Each value is reported once,
// even if it is reachable through multiple paths.
//
// root must be a non-nil pointer to a struct.
func ComponentsOf[I any](root I) []I {
	iface := reflect.TypeFor[I]()
	if iface.Kind() != reflect.Interface {
		panic(fmt.Sprintf("type %s is not an interface", iface))
	}

	rootValue := reflect.ValueOf(root)
	if rootValue.Kind() != reflect.Pointer || rootValue.IsNil() {
		panic(fmt.Sprintf("root %T must be a non-nil pointer to a struct", root))
	}

	var found []I
	seen := map[any]struct{}{}

	var visit func(value reflect.Value)
	var walkStruct func(value reflect.Value)

	// visit takes a pointer value implementing I
	visit = func(value reflect.Value) {
		key := value.Interface()
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}

		found = append(found, key.(I))

		if value.Elem().Kind() == reflect.Struct {
			walkStruct(value.Elem())
		}
	}

	walkStruct = func(value reflect.Value) {
		ty := value.Type()

		for idx := range ty.NumField() {
			field := ty.Field(idx)
			fieldValue := value.Field(idx)

			// embedded fields are promoted parts of the outer value, for
			// example the ComponentBase of a component. they are never
			// components of their own, but components nested below them
			// still count.
			if field.Anonymous {
				if field.Type.Kind() == reflect.Struct {
					walkStruct(fieldValue)
				}
				continue
			}

			if !field.IsExported() {
				continue
			}

			switch {
			case field.Type.Kind() == reflect.Pointer && field.Type.Implements(iface):
				if !fieldValue.IsNil() {
					visit(fieldValue)
				}

			case field.Type.Kind() != reflect.Pointer && reflect.PointerTo(field.Type).Implements(iface):
				if fieldValue.CanAddr() {
					visit(fieldValue.Addr())
				}

			case field.Type.Kind() == reflect.Slice || field.Type.Kind() == reflect.Array:
				if field.Type.Elem().Implements(iface) {
					for n := range fieldValue.Len() {
						element := fieldValue.Index(n)
						if element.Kind() == reflect.Pointer && !element.IsNil() {
							visit(element)
						}
					}
				}
			}
		}
	}

	visit(rootValue)

	return found
}
