package vdf

// Field is a single key/value pair of an Object.
// Value is one of Object, string, int32, float32, uint64 or int64.
type Field struct {
	Key   string
	Value any
}

// Object is an ordered list of fields. Keys are expected to be unique but
// duplicates read from disk are kept as-is.
type Object []Field

// Get returns the value of the first field named key.
func (o Object) Get(key string) (any, bool) {
	for _, f := range o {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// GetString returns the string value of key, if present and a string.
func (o Object) GetString(key string) (string, bool) {
	v, ok := o.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetInt32 returns the int32 value of key, if present and an int32.
func (o Object) GetInt32(key string) (int32, bool) {
	v, ok := o.Get(key)
	if !ok {
		return 0, false
	}
	n, ok := v.(int32)
	return n, ok
}

// GetObject returns the nested object stored at key.
func (o Object) GetObject(key string) (Object, bool) {
	v, ok := o.Get(key)
	if !ok {
		return nil, false
	}
	child, ok := v.(Object)
	return child, ok
}

// Set replaces the value of the first field named key, or appends a new field.
func (o *Object) Set(key string, value any) {
	for i := range *o {
		if (*o)[i].Key == key {
			(*o)[i].Value = value
			return
		}
	}
	*o = append(*o, Field{Key: key, Value: value})
}

// Keys returns the field keys in order.
func (o Object) Keys() []string {
	keys := make([]string, 0, len(o))
	for _, f := range o {
		keys = append(keys, f.Key)
	}
	return keys
}
