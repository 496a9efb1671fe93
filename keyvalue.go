package docboost

import "fmt"

// A KeyValue is one entry of a document.
type KeyValue struct {
	key   string
	value any
}

// NewKeyValue returns a KeyValue holding key and value.
func NewKeyValue(key string, value any) KeyValue {
	return KeyValue{key: key, value: value}
}

func (kv KeyValue) Key() string { return kv.key }

func (kv KeyValue) Value() any { return kv.value }

func (kv KeyValue) String() string {
	return fmt.Sprintf("%s=%v", kv.key, kv.value)
}
