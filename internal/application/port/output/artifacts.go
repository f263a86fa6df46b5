package output

import (
	"context"

	"autoapply/internal/domain/entity"
)

// ArtifactPort persists diagnostic screenshots. Retention decisions stay in
// the engine; the store only saves and discards.
type ArtifactPort interface {
	// Save persists a screenshot under a deterministic name and returns the
	// resulting path.
	Save(ctx context.Context, name string, shot *entity.Screenshot) (string, error)
	// Discard removes previously saved artifacts, best effort.
	Discard(paths []string)
}
