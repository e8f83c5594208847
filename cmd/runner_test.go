package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gigcal/internal/models"
	"gigcal/internal/shared"
	tu "gigcal/internal/testing"
)

func TestNewRunner(t *testing.T) {
	t.Run("applies defaults for nil options", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})

		if runner.config == nil {
			t.Error("expected a default config")
		}
		if runner.logger == nil {
			t.Error("expected a default logger")
		}
		if runner.output != os.Stdout {
			t.Error("expected stdout as the default output")
		}
		if runner.httpClient != http.DefaultClient {
			t.Error("expected the default HTTP client")
		}
	})

	t.Run("keeps provided options", func(t *testing.T) {
		var buf bytes.Buffer
		config := shared.DefaultConfig()
		runner := NewRunner(RunnerOpts{Config: config, Output: &buf})

		if runner.config != config {
			t.Error("expected the provided config")
		}
		if runner.output != &buf {
			t.Error("expected the provided output writer")
		}
	})

	t.Run("registers all commands", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		names := map[string]bool{}
		for _, command := range commands {
			names[command.Name] = true
		}
		for _, want := range []string{"serve", "setup", "search", "history"} {
			if !names[want] {
				t.Errorf("expected command %q to be registered", want)
			}
		}
	})
}

func TestRunnerOutput(t *testing.T) {
	t.Run("writeJSON emits a trailing newline", func(t *testing.T) {
		var buf bytes.Buffer
		runner := NewRunner(RunnerOpts{Output: &buf})

		if err := runner.writeJSON(map[string]string{"status": "ok"}, false); err != nil {
			t.Fatalf("expected write to succeed, got %v", err)
		}
		if got := buf.String(); got != "{\"status\":\"ok\"}\n" {
			t.Errorf("unexpected output: %q", got)
		}
	})

	t.Run("writeJSON surfaces writer failures", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

		if err := runner.writeJSON(map[string]string{"status": "ok"}, false); err == nil {
			t.Error("expected an error from a failing writer")
		}
	})

	t.Run("writeJSON surfaces a failed newline write", func(t *testing.T) {
		var buf bytes.Buffer
		runner := NewRunner(RunnerOpts{Output: tu.NewLimitedWriter(&buf, 1)})

		if err := runner.writeJSON(map[string]string{"status": "ok"}, false); err == nil {
			t.Error("expected an error when the newline write fails")
		}
	})

	t.Run("writeJSON rejects unmarshalable data", func(t *testing.T) {
		var buf bytes.Buffer
		runner := NewRunner(RunnerOpts{Output: &buf})

		if err := runner.writeJSON(make(chan int), false); err == nil {
			t.Error("expected an error for unmarshalable data")
		}
	})
}

func TestRunnerLoadConfig(t *testing.T) {
	t.Run("prefers the file at the flag path over the cached config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.toml")
		if err := os.WriteFile(path, []byte("[server]\nhost = \"localhost\"\nport = 9999\n"), 0644); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		runner := NewRunner(RunnerOpts{Config: shared.DefaultConfig()})

		if got := runner.loadConfig(path); got.Server.Port != 9999 {
			t.Errorf("expected the flag path to win, got port %d", got.Server.Port)
		}
	})

	t.Run("falls back to the cached config for a missing file", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Server.Port = 9999
		runner := NewRunner(RunnerOpts{Config: config})

		if got := runner.loadConfig("does-not-exist.toml"); got.Server.Port != 9999 {
			t.Errorf("expected the cached config, got port %d", got.Server.Port)
		}
	})

	t.Run("falls back to defaults for a missing file", func(t *testing.T) {
		runner := &Runner{logger: shared.NewLogger(nil)}

		config := runner.loadConfig("does-not-exist.toml")
		if config == nil {
			t.Fatal("expected a config")
		}
		if config.Server.Port != shared.DefaultConfig().Server.Port {
			t.Errorf("expected default port, got %d", config.Server.Port)
		}
	})
}

func TestRunnerSearch(t *testing.T) {
	events := []models.Event{
		{Name: "Arctic Monkeys Live", StartDate: "2025-06-01", EndDate: "2025-06-01", Venue: "Red Rocks", City: "Morrison"},
	}

	run := func(t *testing.T, runner *Runner, args ...string) error {
		t.Helper()
		command := searchCommand(runner)
		return command.Run(context.Background(), append([]string{"search"}, args...))
	}

	t.Run("prints a text listing by default", func(t *testing.T) {
		var buf bytes.Buffer
		runner := NewRunner(RunnerOpts{Events: &tu.MockSearcher{Events: events}, Output: &buf})

		if err := run(t, runner, "Arctic Monkeys"); err != nil {
			t.Fatalf("expected search to succeed, got %v", err)
		}
		if !strings.Contains(buf.String(), "Arctic Monkeys Live") {
			t.Errorf("expected event listing, got %q", buf.String())
		}
	})

	t.Run("prints CSV with --format csv", func(t *testing.T) {
		var buf bytes.Buffer
		runner := NewRunner(RunnerOpts{Events: &tu.MockSearcher{Events: events}, Output: &buf})

		if err := run(t, runner, "--format", "csv", "Arctic Monkeys"); err != nil {
			t.Fatalf("expected search to succeed, got %v", err)
		}
		if !strings.HasPrefix(buf.String(), "Name,Start,End,Venue,City,URL") {
			t.Errorf("expected CSV header, got %q", buf.String())
		}
	})

	t.Run("prints JSON with --json", func(t *testing.T) {
		var buf bytes.Buffer
		runner := NewRunner(RunnerOpts{Events: &tu.MockSearcher{Events: events}, Output: &buf})

		if err := run(t, runner, "--json", "Arctic Monkeys"); err != nil {
			t.Fatalf("expected search to succeed, got %v", err)
		}
		if !strings.Contains(buf.String(), `"Name": "Arctic Monkeys Live"`) {
			t.Errorf("expected JSON output, got %q", buf.String())
		}
	})

	t.Run("requires a keyword", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Events: &tu.MockSearcher{}, Output: &bytes.Buffer{}})

		if err := run(t, runner); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("reports zero results without failing", func(t *testing.T) {
		var buf bytes.Buffer
		runner := NewRunner(RunnerOpts{Events: &tu.MockSearcher{Err: shared.ErrNoEvents}, Output: &buf})

		if err := run(t, runner, "nobody"); err != nil {
			t.Fatalf("expected zero results to be non-fatal, got %v", err)
		}
		if !strings.Contains(buf.String(), "No events found") {
			t.Errorf("expected a zero-result message, got %q", buf.String())
		}
	})

	t.Run("wraps upstream failures", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Events: &tu.MockSearcher{Err: errors.New("boom")}, Output: &bytes.Buffer{}})

		if err := run(t, runner, "anything"); !errors.Is(err, shared.ErrUpstream) {
			t.Errorf("expected ErrUpstream, got %v", err)
		}
	})
}
