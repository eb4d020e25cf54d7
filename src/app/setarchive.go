package app

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
)

// ScriptEntryName is the fixed name of the archive entry holding the set
// description text. Magic Set Editor always stores it as "set".
const ScriptEntryName = "set"

// SetArchive is an opened .mse-set container. Entries are read lazily;
// the whole archive lives in memory, so there is nothing to close.
type SetArchive struct {
	reader *zip.Reader
}

// OpenSetArchive opens a set archive from raw bytes.
func OpenSetArchive(data []byte) (*SetArchive, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ArchiveError{Err: err}
	}
	log.Debug().Int("entries", len(zr.File)).Msg("opened set archive")
	return &SetArchive{reader: zr}, nil
}

// Entries lists the entry names in archive order.
func (a *SetArchive) Entries() []string {
	names := make([]string, 0, len(a.reader.File))
	for _, f := range a.reader.File {
		names = append(names, f.Name)
	}
	return names
}

// ReadEntry returns the bytes of a named entry, verbatim.
func (a *SetArchive) ReadEntry(name string) ([]byte, error) {
	for _, f := range a.reader.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, &ArchiveError{Err: err}
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, &ArchiveError{Err: err}
		}
		log.Debug().Str("entry", name).Int("bytes", len(data)).Msg("read archive entry")
		return data, nil
	}
	return nil, &MissingEntryError{Name: name}
}

// ReadScript returns the set description text prepared for parsing:
// UTF-8 BOM stripped and CRLF normalized. Raw-decode mode must use
// ReadEntry instead, which keeps the entry byte-for-byte.
func (a *SetArchive) ReadScript() (string, error) {
	data, err := a.ReadEntry(ScriptEntryName)
	if err != nil {
		return "", err
	}
	text := strings.TrimPrefix(string(data), "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return text, nil
}
