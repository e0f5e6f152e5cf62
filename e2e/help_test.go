//go:build e2e && unix

package main

import (
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpFlag(t *testing.T) {
	t.Parallel()

	out, err := exec.Command(binPath, "--help").CombinedOutput()
	require.NoError(t, err)

	help := string(out)
	assert.Contains(t, help, "storedash")
	assert.Contains(t, help, "mock-api")
	assert.Contains(t, help, "report")
	assert.Contains(t, help, "--config")
}

func TestHelpPagerOpensAndCloses(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartDashboard(nil))
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("storedash"), "Should show storedash title")

	mark := tf.Mark()
	require.NoError(t, tf.SendKeys(KeyHelp))
	require.True(t, tf.SeePlainSince(mark, "storedash Help"), "Help pager should show key sections")

	mark = tf.Mark()
	require.NoError(t, tf.SendKeys(KeyQuit))
	require.True(t, tf.SeePlainSince(mark, "Dashboard"), "Should return to the dashboard")

	// Still running after the pager closed
	time.Sleep(100 * time.Millisecond)
	require.Nil(t, tf.cmd.ProcessState, "App should still be running")
}
