package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptPasswordService(t *testing.T) {
	t.Parallel()

	svc := NewBcryptPasswordService()

	t.Run("hash never equals plaintext and verifies afterward", func(t *testing.T) {
		t.Parallel()

		hashed, err := svc.Hash("secret1")
		require.NoError(t, err)

		assert.NotEqual(t, "secret1", hashed)
		assert.NoError(t, svc.Compare(hashed, "secret1"))
	})

	t.Run("salted hashes differ but both verify", func(t *testing.T) {
		t.Parallel()

		first, err := svc.Hash("secret1")
		require.NoError(t, err)
		second, err := svc.Hash("secret1")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
		assert.NoError(t, svc.Compare(first, "secret1"))
		assert.NoError(t, svc.Compare(second, "secret1"))
	})

	t.Run("wrong password fails", func(t *testing.T) {
		t.Parallel()

		hashed, err := svc.Hash("secret1")
		require.NoError(t, err)

		assert.Error(t, svc.Compare(hashed, "secret2"))
	})
}
