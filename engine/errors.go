package engine

import "errors"

// ErrInvalidArgument marks construction and registration failures caused
// by bad caller input (empty id, malformed registration shape).
// Wrap with fmt.Errorf("...: %w", ErrInvalidArgument) and test with errors.Is
var ErrInvalidArgument = errors.New("invalid argument")
