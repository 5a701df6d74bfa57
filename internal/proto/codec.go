package proto

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// Pack converts v to its Struct document via its JSON encoding.
func Pack(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("pack: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("pack: %T is not an object: %w", v, err)
	}
	return structpb.NewStruct(m)
}

// Unpack decodes the Struct document s into v, which must be a pointer.
func Unpack(s *structpb.Struct, v any) error {
	if s == nil {
		return nil
	}
	b, err := json.Marshal(s.AsMap())
	if err != nil {
		return fmt.Errorf("unpack: %w", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("unpack into %T: %w", v, err)
	}
	return nil
}
