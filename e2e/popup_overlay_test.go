//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDeleteConfirmPopup(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartDashboard(nil))
	require.True(t, tf.Ready(), "Should receive ready signal")

	require.NoError(t, tf.GoToPage(2))
	require.True(t, tf.SeePlain("Trail Runner"), "Products should load")

	// Cancelling leaves the product alone
	mark := tf.Mark()
	require.NoError(t, tf.SendKeys(KeyDelete))
	require.True(t, tf.SeePlainSince(mark, `Delete product "Trail Runner"?`), "Confirm popup should name the product")

	mark = tf.Mark()
	require.NoError(t, tf.SendKeys("n"))
	time.Sleep(300 * time.Millisecond)
	require.NotContains(t, tf.Since(mark), "Deleted product", "Cancel should not delete")

	// Confirming deletes it on the backend and reloads the list
	require.NoError(t, tf.SendKeys(KeyDelete))
	mark = tf.Mark()
	require.NoError(t, tf.SendKeys("y"))
	require.True(t, tf.SeePlainSince(mark, `Deleted product "Trail Runner"`), "Should report the delete")
	require.True(t, tf.SeePlainSince(mark, "1/5"), "List should shrink after the reload")
}
