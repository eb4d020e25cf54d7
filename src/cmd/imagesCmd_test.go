package cmd

import (
	"archive/zip"
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/fenhl/mse-to-json/src/app"
)

func TestImagesCommandExportsArt(t *testing.T) {
	preserveGlobals(t)
	resetViper(t)
	captureLogs(t)

	art := &bytes.Buffer{}
	if err := png.Encode(art, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}

	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, e := range []struct {
		name string
		data []byte
	}{
		{app.ScriptEntryName, []byte("card:\n\tname: Foo\n\timage: image1\n")},
		{"image1", art.Bytes()},
	} {
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
	setPath := filepath.Join(t.TempDir(), "fixture.mse-set")
	if err := os.WriteFile(setPath, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	outputDir := t.TempDir()
	rootCmd.SetArgs([]string{"images", setPath, "--imageOutput", outputDir})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if _, err := os.Stat(filepath.Join(outputDir, "foo.png")); err != nil {
		t.Fatalf("foo.png not exported: %v", err)
	}
}
