package rubric

import "github.com/google/uuid"

// IDGen supplies identifiers for entities created while parsing markdown or
// merging imported submissions. Injected rather than called ambiently so tests
// can pin deterministic ids.
type IDGen func() string

// NewIDGen returns the production generator (random UUIDs).
func NewIDGen() IDGen { return uuid.NewString }
