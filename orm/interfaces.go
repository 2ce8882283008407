package orm

import (
	weave "github.com/iov-one/vesting"
)

// Object is a value together with the key it is stored under. The bucket
// prefixes the key before writing to the database.
type Object interface {
	Key() []byte
	SetKey([]byte)
	// Clone returns a deep copy that can be modified independently.
	Clone() Object
	// Validate is called before every save.
	Validate() error
	Value() CloneableData
}

// CloneableData is the serialized part of an Object.
type CloneableData interface {
	weave.Persistent
	Validate() error
	Copy() CloneableData
}
