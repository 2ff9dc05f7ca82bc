// Package assets resolves the static reference files shown during the test:
// illustration images, the results template and the completion sound.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mrsinham/quantitest/internal/steps"
)

// Names of the non-image assets.
const (
	ReportTemplate = "results.pdf"
	CompletionBeep = "beep.mp3"
)

// Asset is a named reference file.
type Asset struct {
	File    string
	Caption string
}

// KitItem is one entry of the kit checklist.
type KitItem struct {
	Name  string
	Image Asset
}

// KitItems lists the kit contents in checklist order.
func KitItems() []KitItem {
	return []KitItem{
		{Name: "Quanti-Wells", Image: Asset{File: "quanti_wells.png", Caption: "Quanti-Wells"}},
		{Name: "Sharptest Applicators", Image: Asset{File: "applicators_sharptest.png", Caption: "Sharptest Applicators"}},
		{Name: "Quicktest Applicators", Image: Asset{File: "applicators_quicktest.png", Caption: "Quicktest Applicators"}},
		{Name: "Droppers", Image: Asset{File: "droppers.png", Caption: "Droppers"}},
	}
}

// StepImages returns the illustrations for a step, in display order.
func StepImages(step int) []Asset {
	switch step {
	case steps.SetupWells:
		return []Asset{{File: "setup.png", Caption: "Quanti-Wells setup"}}
	case steps.PrepareTray:
		return []Asset{
			{File: "insert.png", Caption: "Insert Left Tray into Right Tray"},
			{File: "allergen.png", Caption: "Use Dropper to Place Allergens in Wells"},
		}
	case steps.LoadApplicators:
		return []Asset{
			{File: "applicators_quicktest.png", Caption: "Place Applicators into the Wells"},
			{File: "applicator.png", Caption: "Align T-mark Side with T-end"},
		}
	case steps.ApplyTest:
		return []Asset{
			{File: "right.png", Caption: "Press the right row"},
			{File: "left.png", Caption: "Press the left row"},
		}
	case steps.RecordResults:
		return []Asset{{File: "positive.png", Caption: "Example of Positive Reaction"}}
	}
	return nil
}

// Catalog lists every file the application may ask for.
func Catalog() []string {
	seen := map[string]bool{}
	var out []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, item := range KitItems() {
		add(item.Image.File)
	}
	for i := 0; i < steps.Default().Count(); i++ {
		for _, a := range StepImages(i) {
			add(a.File)
		}
	}
	add(ReportTemplate)
	add(CompletionBeep)
	return out
}

// Store reads assets from a directory or any fs.FS.
type Store struct {
	root string
	fsys fs.FS
}

// NewStore serves assets from dir.
func NewStore(dir string) *Store {
	return &Store{root: dir, fsys: os.DirFS(dir)}
}

// NewStoreFS serves assets from fsys. root is only used for display.
func NewStoreFS(root string, fsys fs.FS) *Store {
	return &Store{root: root, fsys: fsys}
}

// Root returns the asset directory.
func (s *Store) Root() string {
	return s.root
}

// Path returns the on-disk location of an asset.
func (s *Store) Path(name string) string {
	return filepath.Join(s.root, name)
}

// Read returns the content of an asset.
func (s *Store) Read(name string) ([]byte, error) {
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingAssetError{Name: name, Dir: s.root}
		}
		return nil, fmt.Errorf("reading asset %s: %w", name, err)
	}
	return data, nil
}

// Exists reports whether an asset is present.
func (s *Store) Exists(name string) bool {
	_, err := fs.Stat(s.fsys, name)
	return err == nil
}

// Missing returns the catalog entries absent from the store.
func (s *Store) Missing() []string {
	var out []string
	for _, name := range Catalog() {
		if !s.Exists(name) {
			out = append(out, name)
		}
	}
	return out
}
