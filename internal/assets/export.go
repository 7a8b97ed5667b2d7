package assets

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
)

// Export writes the pack to dir in the layout Load reads, so a generated
// pack can be used as a starting point for custom art.
func (p *Pack) Export(dir string) error {
	images := map[string]*image.RGBA{
		filepath.Join("Objects", "bg.png"):       p.Background,
		filepath.Join("Objects", "base.png"):     p.Ground,
		filepath.Join("Objects", "pipe.png"):     p.Pipe,
		filepath.Join("Objects", "downflap.png"): p.Bird[0],
		filepath.Join("Objects", "midflap.png"):  p.Bird[1],
		filepath.Join("Objects", "upflap.png"):   p.Bird[2],
		filepath.Join("UI", "gameover.png"):      p.GameOver,
		filepath.Join("UI", "message.png"):       p.Message,
	}
	for i, d := range p.Digits {
		images[filepath.Join("UI", "Numbers", strconv.Itoa(i)+".png")] = d
	}

	for name, img := range images {
		if err := writePNG(filepath.Join(dir, name), img); err != nil {
			return err
		}
	}

	for cue, data := range p.Sounds {
		path := filepath.Join(dir, "sounds", cue.String()+".wav")
		if err := writeFile(path, data); err != nil {
			return err
		}
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("assets: export %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("assets: export %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("assets: encode %s: %w", path, err)
	}
	return f.Close()
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("assets: export %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("assets: export %s: %w", path, err)
	}
	return nil
}
