package app

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"
)

type archiveEntry struct {
	name string
	data []byte
}

func buildArchive(t *testing.T, entries []archiveEntry) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			t.Fatalf("zip create %s: %v", e.name, err)
		}
		if _, err := w.Write(e.data); err != nil {
			t.Fatalf("zip write %s: %v", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func TestOpenSetArchiveRejectsNonZipInput(t *testing.T) {
	_, err := OpenSetArchive([]byte("not a zip file at all"))
	if err == nil {
		t.Fatalf("OpenSetArchive accepted garbage input")
	}
	var archiveErr *ArchiveError
	if !errors.As(err, &archiveErr) {
		t.Fatalf("OpenSetArchive error = %T, want *ArchiveError", err)
	}
}

func TestReadEntryMissing(t *testing.T) {
	data := buildArchive(t, []archiveEntry{{name: "image1", data: []byte("x")}})
	archive, err := OpenSetArchive(data)
	if err != nil {
		t.Fatalf("OpenSetArchive: %v", err)
	}

	_, err = archive.ReadEntry(ScriptEntryName)
	var missing *MissingEntryError
	if !errors.As(err, &missing) {
		t.Fatalf("ReadEntry error = %T (%v), want *MissingEntryError", err, err)
	}
	if missing.Name != ScriptEntryName {
		t.Fatalf("MissingEntryError.Name = %q, want %q", missing.Name, ScriptEntryName)
	}
}

func TestReadEntryIsByteForByte(t *testing.T) {
	// BOM and CRLF included on purpose: raw reads must not normalize.
	raw := []byte("\ufeffset info:\r\n\ttitle: Test\r\n")
	data := buildArchive(t, []archiveEntry{{name: ScriptEntryName, data: raw}})
	archive, err := OpenSetArchive(data)
	if err != nil {
		t.Fatalf("OpenSetArchive: %v", err)
	}

	got, err := archive.ReadEntry(ScriptEntryName)
	if err != nil {
		t.Fatalf("ReadEntry: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Fatalf("ReadEntry = %q, want %q", got, raw)
	}
}

func TestReadScriptNormalizes(t *testing.T) {
	raw := []byte("\ufeffset info:\r\n\ttitle: Test\r\n")
	data := buildArchive(t, []archiveEntry{{name: ScriptEntryName, data: raw}})
	archive, err := OpenSetArchive(data)
	if err != nil {
		t.Fatalf("OpenSetArchive: %v", err)
	}

	got, err := archive.ReadScript()
	if err != nil {
		t.Fatalf("ReadScript: %v", err)
	}
	if want := "set info:\n\ttitle: Test\n"; got != want {
		t.Fatalf("ReadScript = %q, want %q", got, want)
	}
}

func TestEntriesKeepsArchiveOrder(t *testing.T) {
	data := buildArchive(t, []archiveEntry{
		{name: ScriptEntryName, data: []byte("")},
		{name: "image1", data: []byte("a")},
		{name: "image2", data: []byte("b")},
	})
	archive, err := OpenSetArchive(data)
	if err != nil {
		t.Fatalf("OpenSetArchive: %v", err)
	}

	got := archive.Entries()
	want := []string{ScriptEntryName, "image1", "image2"}
	if len(got) != len(want) {
		t.Fatalf("Entries = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Entries[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
