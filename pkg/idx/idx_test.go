package idx

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	a := New()
	b := New()
	require.NotEqual(t, a, b)

	_, err := ulid.ParseStrict(a.String())
	require.NoError(t, err)

	// Monotonic source keeps IDs minted in the same millisecond ordered.
	require.Less(t, a.String(), b.String())
}
