package app

import (
	"testing"
)

func TestDecodeMarkupPlainValueIsOneRun(t *testing.T) {
	runs := DecodeMarkup("Flies.")
	if len(runs) != 1 {
		t.Fatalf("len(runs) = %d, want 1", len(runs))
	}
	if runs[0].Text != "Flies." || runs[0].Symbol || runs[0].Italic || runs[0].Break {
		t.Fatalf("run = %+v, want plain text run", runs[0])
	}
}

func TestDecodeMarkupSymbolRuns(t *testing.T) {
	runs := DecodeMarkup("<sym>T</sym>: Add <sym>G</sym>.")
	want := []Run{
		{Text: "T", Symbol: true},
		{Text: ": Add "},
		{Text: "G", Symbol: true},
		{Text: "."},
	}
	if len(runs) != len(want) {
		t.Fatalf("runs = %+v, want %+v", runs, want)
	}
	for i := range want {
		if runs[i] != want[i] {
			t.Fatalf("runs[%d] = %+v, want %+v", i, runs[i], want[i])
		}
	}
}

func TestDecodeMarkupItalicReminder(t *testing.T) {
	runs := DecodeMarkup("Flying <i>(This creature can fly.)</i>")
	if len(runs) != 2 {
		t.Fatalf("len(runs) = %d, want 2: %+v", len(runs), runs)
	}
	if runs[1].Text != "(This creature can fly.)" || !runs[1].Italic {
		t.Fatalf("runs[1] = %+v, want italic reminder", runs[1])
	}
}

func TestDecodeMarkupHardNewlineIsBreakRun(t *testing.T) {
	runs := DecodeMarkup("Flying\nHaste")
	if len(runs) != 3 {
		t.Fatalf("len(runs) = %d, want 3: %+v", len(runs), runs)
	}
	if !runs[1].Break || runs[1].Text != "\n" {
		t.Fatalf("runs[1] = %+v, want break run", runs[1])
	}
}

func TestDecodeMarkupSoftLineBecomesSpace(t *testing.T) {
	runs := DecodeMarkup("a long<soft-line>\n</soft-line>sentence")
	if got := PlainText(runs); got != "a long sentence" {
		t.Fatalf("PlainText = %q, want %q", got, "a long sentence")
	}
}

func TestDecodeMarkupKeepSoftLines(t *testing.T) {
	runs := DecodeMarkupKeepSoftLines("a long<soft-line>\n</soft-line>sentence")
	if got := PlainText(runs); got != "a long\nsentence" {
		t.Fatalf("PlainText = %q, want %q", got, "a long\nsentence")
	}
}

func TestDecodeMarkupStripsUnknownAndIgnoredTags(t *testing.T) {
	runs := DecodeMarkup("<kw-0>Flying</kw-0> and <mystery>more</mystery>")
	if got := PlainText(runs); got != "Flying and more" {
		t.Fatalf("PlainText = %q, want %q", got, "Flying and more")
	}
}

func TestDecodeMarkupUnterminatedSpanClosesImplicitly(t *testing.T) {
	runs := DecodeMarkup("cost <sym>2RR")
	if len(runs) != 2 {
		t.Fatalf("len(runs) = %d, want 2: %+v", len(runs), runs)
	}
	if runs[1].Text != "2RR" || !runs[1].Symbol {
		t.Fatalf("runs[1] = %+v, want symbol run", runs[1])
	}
}

func TestDecodeMarkupStrayAngleBracketIsLiteral(t *testing.T) {
	runs := DecodeMarkup("power 2 < toughness 3")
	if got := PlainText(runs); got != "power 2 < toughness 3" {
		t.Fatalf("PlainText = %q, want %q", got, "power 2 < toughness 3")
	}
}

func TestDecodeMarkupUnbalancedCloseIsHarmless(t *testing.T) {
	runs := DecodeMarkup("</i>plain")
	if got := PlainText(runs); got != "plain" {
		t.Fatalf("PlainText = %q, want %q", got, "plain")
	}
	if runs[len(runs)-1].Italic {
		t.Fatalf("runs = %+v, want no italic styling", runs)
	}
}
