package commands

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	t.Run("short titles pass through", func(t *testing.T) {
		assert.Equal(t, "cat video", truncate("cat video", 40))
	})

	t.Run("long titles are shortened with an ellipsis", func(t *testing.T) {
		got := truncate(strings.Repeat("a", 50), 10)
		assert.Equal(t, "aaaaaaaaa…", got)
		assert.Equal(t, 10, utf8.RuneCountInString(got))
	})

	t.Run("multibyte titles are cut on rune boundaries", func(t *testing.T) {
		title := strings.Repeat("日", 50)
		got := truncate(title, 10)

		assert.True(t, utf8.ValidString(got))
		assert.Equal(t, strings.Repeat("日", 9)+"…", got)
	})
}
