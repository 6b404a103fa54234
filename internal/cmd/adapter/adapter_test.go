package adapter

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/louisbranch/adapter.pattern/internal/enemy"
	apperrors "github.com/louisbranch/adapter.pattern/internal/platform/errors"
)

var numberPattern = regexp.MustCompile(`\d+`)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("adapter", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Seed != 0 {
		t.Fatalf("expected zero seed, got %d", cfg.Seed)
	}
	if cfg.Locale != "en-US" {
		t.Fatalf("expected en-US locale, got %q", cfg.Locale)
	}
	if cfg.Scenario != "" {
		t.Fatalf("expected no scenario file, got %q", cfg.Scenario)
	}
	if cfg.Verbose {
		t.Fatal("expected verbose to default to false")
	}
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	t.Setenv("ADAPTER_SEED", "11")
	t.Setenv("ADAPTER_LOCALE", "pt-BR")

	fs := flag.NewFlagSet("adapter", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-seed", "42", "-scenario", "raid.lua", "-verbose"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Seed != 42 {
		t.Fatalf("expected flag seed 42, got %d", cfg.Seed)
	}
	if cfg.Locale != "pt-BR" {
		t.Fatalf("expected env locale, got %q", cfg.Locale)
	}
	if cfg.Scenario != "raid.lua" || !cfg.Verbose {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestParseConfigRejectsBadFlag(t *testing.T) {
	fs := flag.NewFlagSet("adapter", flag.ContinueOnError)
	fs.SetOutput(&bytes.Buffer{})
	if _, err := ParseConfig(fs, []string{"-seed", "many"}); err == nil {
		t.Fatal("expected flag parse error")
	}
}

func TestRunDemo(t *testing.T) {
	t.Setenv("ADAPTER_OTEL_ENDPOINT", "")

	var out, errOut bytes.Buffer
	if err := Run(context.Background(), Config{Seed: 5, Locale: "en-US"}, &out, &errOut); err != nil {
		t.Fatalf("run: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 14 {
		t.Fatalf("expected 14 lines, got %d:\n%s", len(lines), out.String())
	}
	headings := map[int]string{0: "The Robot", 4: "", 5: "The enemy tank", 9: "", 10: "The robot with adapter"}
	for index, want := range headings {
		if lines[index] != want {
			t.Fatalf("line %d = %q, want %q", index, lines[index], want)
		}
	}
	names := map[int]string{1: "Marcelo", 6: "Jake", 11: "Alex"}
	for index, name := range names {
		if !strings.Contains(lines[index], name) {
			t.Fatalf("line %d = %q, want name %q", index, lines[index], name)
		}
	}
	bounds := map[int]int{
		2: enemy.MaxMovement, 3: enemy.MaxDamage,
		7: enemy.MaxMovement, 8: enemy.MaxDamage,
		12: enemy.MaxMovement, 13: enemy.MaxDamage,
	}
	for index, max := range bounds {
		n, err := strconv.Atoi(numberPattern.FindString(lines[index]))
		if err != nil {
			t.Fatalf("line %d = %q has no number", index, lines[index])
		}
		if n < 0 || n > max {
			t.Fatalf("line %d = %q out of [0, %d]", index, lines[index], max)
		}
	}
	if errOut.Len() != 0 {
		t.Fatalf("expected quiet stderr, got %q", errOut.String())
	}
}

func TestRunSameSeedSameOutput(t *testing.T) {
	t.Setenv("ADAPTER_OTEL_ENDPOINT", "")

	var first, second bytes.Buffer
	cfg := Config{Seed: 1234, Locale: "en-US"}
	if err := Run(context.Background(), cfg, &first, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := Run(context.Background(), cfg, &second, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	if first.String() != second.String() {
		t.Fatalf("expected identical runs:\n%s\n---\n%s", first.String(), second.String())
	}
}

func TestRunVerboseLogsSeed(t *testing.T) {
	t.Setenv("ADAPTER_OTEL_ENDPOINT", "")

	var out, errOut bytes.Buffer
	if err := Run(context.Background(), Config{Seed: 77, Locale: "en-US", Verbose: true}, &out, &errOut); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(errOut.String(), "seed: 77") {
		t.Fatalf("expected seed log, got %q", errOut.String())
	}
}

func TestRunScenarioFile(t *testing.T) {
	t.Setenv("ADAPTER_OTEL_ENDPOINT", "")

	path := filepath.Join(t.TempDir(), "raid.lua")
	script := "local s = Scenario.new('raid')\ns:section('Raid')\ns:adapter('assign_driver', 'Alex')\nreturn s\n"
	if err := os.WriteFile(path, []byte(script), 0o600); err != nil {
		t.Fatalf("write script: %v", err)
	}

	var out bytes.Buffer
	if err := Run(context.Background(), Config{Seed: 1, Locale: "en-US", Scenario: path}, &out, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.String() != "Raid\nEnemy robot tramps on Alex\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunRejectsUnsupportedLocale(t *testing.T) {
	err := Run(context.Background(), Config{Locale: "ja-JP"}, nil, nil)
	if !errors.Is(err, apperrors.New(apperrors.CodeLocaleUnsupported, "")) {
		t.Fatalf("expected LOCALE_UNSUPPORTED, got %v", err)
	}
}

func TestRunMissingScenarioFile(t *testing.T) {
	t.Setenv("ADAPTER_OTEL_ENDPOINT", "")

	err := Run(context.Background(), Config{Scenario: filepath.Join(t.TempDir(), "nope.lua")}, nil, nil)
	if apperrors.GetCode(err) != apperrors.CodeScenarioLoadFailed {
		t.Fatalf("expected SCENARIO_LOAD_FAILED, got %v", err)
	}
	if line := Describe(err, "en-US"); !strings.Contains(line, "no such file or directory") {
		t.Fatalf("expected the OS cause in %q", line)
	}
}

func TestDescribe(t *testing.T) {
	err := apperrors.WithMetadata(apperrors.CodeLocaleUnsupported, "unsupported locale \"ja-JP\"", map[string]string{"Locale": "ja-JP"})

	got := Describe(err, "en-US")
	want := `Error [InvalidArgument]: Locale ja-JP is not supported (unsupported locale "ja-JP")`
	if got != want {
		t.Fatalf("Describe() = %q, want %q", got, want)
	}

	plain := Describe(errors.New("disk full"), "pt-BR")
	if plain != "Error [Internal]: Ocorreu um erro inesperado (disk full)" {
		t.Fatalf("unexpected plain description %q", plain)
	}
}

func TestDescribeReadsWrappedDomainError(t *testing.T) {
	err := fmt.Errorf("step 2: %w", apperrors.WithMetadata(apperrors.CodeScenarioUnknownHeading,
		`unknown heading key "oops"`, map[string]string{"Heading": "oops"}))

	got := Describe(err, "pt-BR")
	want := `Error [InvalidArgument]: Título desconhecido oops (step 2: unknown heading key "oops")`
	if got != want {
		t.Fatalf("Describe() = %q, want %q", got, want)
	}
}

func TestRunScenarioFileWithUnknownOperationIsInvalidArgument(t *testing.T) {
	t.Setenv("ADAPTER_OTEL_ENDPOINT", "")

	path := filepath.Join(t.TempDir(), "bad.lua")
	script := "local s = Scenario.new('bad')\ns:robot('fire_weapon')\nreturn s\n"
	if err := os.WriteFile(path, []byte(script), 0o600); err != nil {
		t.Fatalf("write script: %v", err)
	}

	err := Run(context.Background(), Config{Scenario: path}, nil, nil)
	if apperrors.GetCode(err) != apperrors.CodeScenarioUnknownOperation {
		t.Fatalf("expected SCENARIO_UNKNOWN_OPERATION, got %v", err)
	}
	if line := Describe(err, "en-US"); !strings.HasPrefix(line, "Error [InvalidArgument]: Unit robot has no operation fire_weapon") {
		t.Fatalf("unexpected error line %q", line)
	}
}
