package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantonx/cinevault/internal/types"
)

func TestRequiredText(t *testing.T) {
	v, err := RequiredText("name", "  Drama \t")
	require.NoError(t, err)
	assert.Equal(t, "Drama", v)

	for _, blank := range []string{"", "   ", "\n\t"} {
		_, err := RequiredText("name", blank)
		require.Error(t, err)
		assert.Equal(t, types.ErrorCodeValidation, types.CodeOf(err))
		assert.Contains(t, err.Error(), "name should not be empty")
	}
}
