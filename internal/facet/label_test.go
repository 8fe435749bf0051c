package facet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelFactories(t *testing.T) {
	assert.Equal(t, "Book", IdentityLabels.Label("Book"))

	m := MapLabels{"bk": "Book", "": "Nothing"}
	assert.Equal(t, "Book", m.Label("bk"))
	assert.Equal(t, "jn", m.Label("jn"))
	assert.Equal(t, "", m.Label(""))

	upper := LabelFunc(strings.ToUpper)
	assert.Equal(t, "BOOK", upper.Label("book"))
}

func TestRegexpLabels(t *testing.T) {
	_, err := NewRegexpLabels("(", "$1")
	require.ErrorIs(t, err, ErrInvalidInput)

	r, err := NewRegexpLabels(`^(\d{4})-(\d{4})$`, "$1 to $2")
	require.NoError(t, err)

	assert.Equal(t, "1900 to 1999", r.Label("1900-1999"))
	assert.Equal(t, "1900s", r.Label("1900s"))
}
