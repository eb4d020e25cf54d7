package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestConvertCommandWritesDocument(t *testing.T) {
	preserveGlobals(t)
	resetViper(t)
	captureLogs(t)

	setPath := writeSetFixture(t, []byte("set:\n\tcode: ABC\n\tname: Test Set\n\tcard:\n\t\tname: Foo\n\t\ttype: Creature\n\t\ttext: Flies.\n"))
	outPath := filepath.Join(t.TempDir(), "out.json")

	rootCmd.SetArgs([]string{"convert", setPath, "-o", outPath})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	raw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if doc["code"] != "ABC" {
		t.Fatalf("code = %v, want ABC", doc["code"])
	}
	cards := doc["cards"].([]any)
	if len(cards) != 1 {
		t.Fatalf("len(cards) = %d, want 1", len(cards))
	}
	card := cards[0].(map[string]any)
	if card["name"] != "Foo" || card["number"] != "1" {
		t.Fatalf("card = %v, want name Foo number 1", card)
	}
}

func TestConvertCommandSetCodeOverride(t *testing.T) {
	preserveGlobals(t)
	resetViper(t)
	captureLogs(t)

	setPath := writeSetFixture(t, []byte("set:\n\tcode: ABC\n\tcard:\n\t\tname: Foo\n\t\ttype: Instant\n"))
	outPath := filepath.Join(t.TempDir(), "out.json")

	rootCmd.SetArgs([]string{"convert", setPath, "-o", outPath, "--set-code", "XYZ"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	raw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if doc["code"] != "XYZ" {
		t.Fatalf("code = %v, want the XYZ override", doc["code"])
	}
}

func TestConvertCommandReportsValidationErrors(t *testing.T) {
	preserveGlobals(t)
	resetViper(t)
	captureLogs(t)

	// Card without a name must fail the whole conversion.
	setPath := writeSetFixture(t, []byte("set:\n\tcode: ABC\n\tcard:\n\t\ttype: Creature\n"))
	outPath := filepath.Join(t.TempDir(), "out.json")

	rootCmd.SetArgs([]string{"convert", setPath, "-o", outPath})
	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("Execute succeeded on a card without a name")
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Fatalf("output written despite the error (err = %v)", err)
	}
}

func TestStringSettingPrefersViper(t *testing.T) {
	preserveGlobals(t)
	resetViper(t)

	viper.Set("set-code", "VPR")
	if got := stringSetting("set-code", "FLG"); got != "VPR" {
		t.Fatalf("stringSetting = %q, want %q", got, "VPR")
	}

	viper.Set("set-code", "")
	if got := stringSetting("set-code", "FLG"); got != "FLG" {
		t.Fatalf("stringSetting = %q, want the flag fallback %q", got, "FLG")
	}
}
