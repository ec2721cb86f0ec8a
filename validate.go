package respawn

import (
	"reflect"

	"github.com/oliverbestmann/respawn/internal/assert"
)

// ValidateComponent verifies that C is a well formed component type: a
// pointer to a struct embedding ComponentBase whose declared capabilities
// are all actually implemented.
//
//	type Goblin struct {
//	    respawn.EntityBase
//	}
//
//	var _ = respawn.ValidateComponent[*Goblin]()
//
// This surfaces a broken capability declaration at package init time
// instead of at the first instantiation.
func ValidateComponent[C Component]() struct{} {
	ty := reflect.TypeFor[C]()
	assert.IsPointerToStructType(ty)

	zero := reflect.New(ty.Elem()).Interface().(Component)

	// panics if a declared capability is not implemented
	recognizedTypesOf(zero)

	return struct{}{}
}

// ValidateEntity is ValidateComponent for entity types.
func ValidateEntity[E Entity]() struct{} {
	return ValidateComponent[E]()
}
