//go:build integration

package rod_test

import (
	"testing"

	"github.com/fwojciec/prospect/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserManager_Acquire(t *testing.T) {
	t.Parallel()

	t.Run("replaces browser after max pages", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager(rod.WithMaxPages(3))
		require.NoError(t, err)
		defer manager.Close()

		var browsers []any
		for range 4 {
			b, release, err := manager.Acquire()
			require.NoError(t, err)
			browsers = append(browsers, b)
			release()
		}

		assert.Same(t, browsers[0], browsers[2])
		assert.NotSame(t, browsers[0], browsers[3])
	})

	t.Run("replaced browser serves its open page", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager(rod.WithMaxPages(1))
		require.NoError(t, err)
		defer manager.Close()

		first, releaseFirst, err := manager.Acquire()
		require.NoError(t, err)
		page, err := first.Page(proto.TargetCreateTarget{})
		require.NoError(t, err)

		second, releaseSecond, err := manager.Acquire()
		require.NoError(t, err)
		defer releaseSecond()
		assert.NotSame(t, first, second)

		require.NoError(t, page.SetDocumentContent("<p>still open</p>"))
		html, err := page.HTML()
		require.NoError(t, err)
		assert.Contains(t, html, "still open")

		require.NoError(t, page.Close())
		releaseFirst()
	})

	t.Run("fails after close", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager()
		require.NoError(t, err)

		require.NoError(t, manager.Close())
		require.NoError(t, manager.Close())

		_, _, err = manager.Acquire()
		require.Error(t, err)
	})
}
