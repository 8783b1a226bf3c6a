package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_HashAndVerifyPassword(t *testing.T) {
	hashed, err := HashPassword("correct-horse")
	require.NoError(t, err)
	require.NotEqual(t, "correct-horse", hashed)

	require.True(t, VerifyPassword("correct-horse", hashed))
	require.False(t, VerifyPassword("wrong-horse", hashed))
}
