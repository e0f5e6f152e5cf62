//go:build e2e && unix

package main

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"
)

// BackendOption configures the mock backend started for a test
type BackendOption func(*backendOptions)

type backendOptions struct {
	products int
	orders   int
}

// WithProducts generates n extra products on top of the fixture
func WithProducts(n int) BackendOption {
	return func(opts *backendOptions) {
		opts.products = n
	}
}

// WithOrders generates n extra orders on top of the fixture
func WithOrders(n int) BackendOption {
	return func(opts *backendOptions) {
		opts.orders = n
	}
}

// ConfigOption edits the config file written into the workspace
type ConfigOption func(*configOptions)

type configOptions struct {
	extra string
}

// WithConfig appends raw TOML to the workspace config
func WithConfig(toml string) ConfigOption {
	return func(opts *configOptions) {
		opts.extra += toml + "\n"
	}
}

// CreateTestWorkspace creates a temporary directory for config and logs
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// ConfigPath is the config file passed to the app
func (tf *TUITestFramework) ConfigPath() string {
	return filepath.Join(tf.workspace, "config.toml")
}

// WriteConfig points the app at the running backend
func (tf *TUITestFramework) WriteConfig(options ...ConfigOption) error {
	if tf.workspace == "" {
		return fmt.Errorf("workspace not created")
	}
	opts := &configOptions{}
	for _, opt := range options {
		opt(opts)
	}

	baseURL := tf.apiURL
	if baseURL == "" {
		baseURL = "http://127.0.0.1:1/api/v1"
	}
	content := fmt.Sprintf("[api]\nbase_url = %q\ntimeout = \"2s\"\n\n%s", baseURL, opts.extra)
	return os.WriteFile(tf.ConfigPath(), []byte(content), 0644)
}

// StartBackend runs the mock-api subcommand on a free port and waits until
// it answers
func (tf *TUITestFramework) StartBackend(options ...BackendOption) error {
	opts := &backendOptions{}
	for _, opt := range options {
		opt(opts)
	}

	port, err := freePort()
	if err != nil {
		return err
	}
	addr := "127.0.0.1:" + strconv.Itoa(port)

	args := []string{"mock-api", "--addr", addr}
	if opts.products > 0 {
		args = append(args, "--products", strconv.Itoa(opts.products))
	}
	if opts.orders > 0 {
		args = append(args, "--orders", strconv.Itoa(opts.orders))
	}
	if tf.workspace != "" {
		args = append([]string{"--log-file", filepath.Join(tf.workspace, "mock-api.log")}, args...)
	}

	cmd := exec.Command(binPath, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start mock api: %w", err)
	}
	tf.backend = cmd
	tf.apiURL = "http://" + addr + "/api/v1"

	client := &http.Client{Timeout: 200 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := client.Get(tf.apiURL + "/categories")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("mock api on %s did not become ready", addr)
}

// StopBackend kills the mock backend if one is running
func (tf *TUITestFramework) StopBackend() {
	if tf.backend != nil && tf.backend.Process != nil {
		_ = tf.backend.Process.Kill()
		_, _ = tf.backend.Process.Wait()
		tf.backend = nil
	}
}

// StartDashboard sets up a workspace and backend, then launches the TUI
func (tf *TUITestFramework) StartDashboard(backend []BackendOption, config ...ConfigOption) error {
	if _, err := tf.CreateTestWorkspace(); err != nil {
		return err
	}
	if err := tf.StartBackend(backend...); err != nil {
		return err
	}
	if err := tf.WriteConfig(config...); err != nil {
		return err
	}
	return tf.StartApp()
}

func freePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
