package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

type initCLI struct {
	LogLevel  string `default:"info" name:"log-level"`
	LogPretty bool   `default:"true" name:"log-pretty"`
	Version   kong.VersionFlag

	Init Init `cmd:""`
}

func runInit(t *testing.T, path string, args ...string) error {
	t.Helper()

	var cli initCLI

	parser, err := kong.New(&cli,
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
		kong.Vars{ConfigIdentifier: path, "version": "test"},
	)
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(append([]string{"init"}, args...))
	if err != nil {
		t.Fatal(err)
	}

	return cli.Init.Run(WithContext(context.Background(), ktx))
}

func TestInit_WritesFlagValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := runInit(t, path, "--log-level=debug"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, data)
	}

	if got["log-level"] != "debug" {
		t.Errorf("log-level = %v, want debug", got["log-level"])
	}

	if got["log-pretty"] != true {
		t.Errorf("log-pretty = %v, want true", got["log-pretty"])
	}

	for _, key := range []string{"help", "version"} {
		if _, ok := got[key]; ok {
			t.Errorf("unexpected key %q in\n%s", key, data)
		}
	}
}

func TestInit_Exists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "keep: true\n")

	err := runInit(t, path)
	if !errors.Is(err, ErrWriteConfig) || !errors.Is(err, ErrFileExists) {
		t.Fatalf("err = %v, want ErrWriteConfig wrapping ErrFileExists", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "keep: true\n" {
		t.Errorf("file overwritten: %q", data)
	}
}

func TestInit_Force(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "keep: true\n")

	if err := runInit(t, path, "--force"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) == "keep: true\n" {
		t.Error("file not overwritten with --force")
	}
}

func TestInit_NoContext(t *testing.T) {
	var i Init

	if err := i.Run(context.Background()); !errors.Is(err, ErrWriteConfig) {
		t.Fatalf("err = %v, want ErrWriteConfig", err)
	}
}
