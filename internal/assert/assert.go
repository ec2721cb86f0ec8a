package assert

import (
	"fmt"
	"reflect"
)

func IsPointerType(t reflect.Type) {
	if t.Kind() != reflect.Pointer {
		panic(fmt.Sprintf("expected pointer type, got %s", t))
	}
}

func IsPointerToStructType(t reflect.Type) {
	IsPointerType(t)

	if t.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("expected pointer to struct type, got %s", t))
	}
}
