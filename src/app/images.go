package app

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	bar "github.com/schollz/progressbar/v3"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
)

// CardImage pairs a card with the archive entry holding its art.
type CardImage struct {
	CardName string
	Entry    string
}

// CollectCardImages lists every card block that references an art entry,
// in encounter order. Cards without art are skipped.
func CollectCardImages(root *Node) []CardImage {
	var out []CardImage
	for _, cn := range setScope(root).All("card") {
		if cn.Kind != KindBlock {
			continue
		}
		entry := firstString(cn, "image")
		if entry == "" {
			continue
		}
		out = append(out, CardImage{CardName: firstString(cn, "name"), Entry: entry})
	}
	return out
}

// ExportCardImages decodes every referenced art entry (png, jpeg, gif or
// bmp) and writes it as "<image name>.png" into outputDir. Unreadable
// entries are logged and skipped; only filesystem failures abort.
func ExportCardImages(archive *SetArchive, root *Node, outputDir string) error {
	images := CollectCardImages(root)
	if len(images) == 0 {
		log.Warn().Msg("no card images referenced in this set file")
		return nil
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir %q: %w", outputDir, err)
	}

	exported, skipped := 0, 0
	progress := bar.NewOptions(
		len(images),
		bar.OptionSetDescription("Exporting card images"),
		bar.OptionShowCount(),
		bar.OptionShowIts(),
		bar.OptionSetItsString("images"),
		bar.OptionThrottle(100),
		bar.OptionClearOnFinish(),
	)
	for _, ci := range images {
		if err := exportCardImage(archive, ci, outputDir); err != nil {
			skipped++
			log.Error().Str("card", ci.CardName).Str("entry", ci.Entry).Err(err).Msg("skipping image")
			_ = progress.Add(1)
			continue
		}
		exported++
		_ = progress.Add(1)
	}
	_ = progress.Finish()

	log.Info().
		Int("exported", exported).
		Int("skipped", skipped).
		Str("outputDir", outputDir).
		Msg("Exporting card images finished")
	return nil
}

func exportCardImage(archive *SetArchive, ci CardImage, outputDir string) error {
	if ci.CardName == "" {
		return fmt.Errorf("card referencing entry %q has no name", ci.Entry)
	}
	name, err := ImageFileName(ci.CardName)
	if err != nil {
		return err
	}

	data, err := archive.ReadEntry(ci.Entry)
	if err != nil {
		return err
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode entry %q: %w", ci.Entry, err)
	}
	log.Debug().Str("entry", ci.Entry).Str("format", format).Str("card", ci.CardName).Msg("converting card image")

	return writePNG(filepath.Join(outputDir, name+".png"), img)
}

func writePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	return png.Encode(out, img)
}
