// Package seed builds the initial namespace: either the built-in sample
// tree or a tree described in a yaml/json file.
package seed

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/folio/pkg/debug"
	"github.com/vanderheijden86/folio/pkg/metrics"
	"github.com/vanderheijden86/folio/pkg/model"
)

// DateLayout is the date format used for the modified field.
const DateLayout = "2006-01-02"

// ErrUnsupportedFormat is returned for seed files that are neither yaml nor json.
var ErrUnsupportedFormat = errors.New("unsupported seed format")

// Entry describes one node in a seed file.
//
// Type is "file" or "folder"; when empty, entries with children are folders.
// ID is written by Export for reference and ignored on load.
type Entry struct {
	ID       string  `yaml:"id,omitempty" json:"id,omitempty"`
	Name     string  `yaml:"name" json:"name"`
	Type     string  `yaml:"type,omitempty" json:"type,omitempty"`
	Size     string  `yaml:"size,omitempty" json:"size,omitempty"`
	Modified string  `yaml:"modified,omitempty" json:"modified,omitempty"`
	Expanded bool    `yaml:"expanded,omitempty" json:"expanded,omitempty"`
	Children []Entry `yaml:"children,omitempty" json:"children,omitempty"`
}

// File is the top-level shape of a seed file.
type File struct {
	Entries []Entry `yaml:"entries" json:"entries"`
}

// Default returns the sample namespace. Ids are assigned sequentially from
// "1" in document order.
func Default() *model.Forest {
	f, err := Build(sampleEntries)
	if err != nil {
		// The sample is static; a failure here is a programming error.
		panic(fmt.Sprintf("seed: invalid sample tree: %v", err))
	}
	return f
}

var sampleEntries = []Entry{
	{Name: "Documents", Type: "folder", Modified: "2023-04-01", Expanded: true, Children: []Entry{
		{Name: "Work", Type: "folder", Modified: "2023-04-01", Children: []Entry{
			{Name: "Report.docx", Type: "file", Size: "245 KB", Modified: "2023-04-01"},
			{Name: "Presentation.pptx", Type: "file", Size: "1.2 MB", Modified: "2023-03-28"},
		}},
		{Name: "Resume.pdf", Type: "file", Size: "420 KB", Modified: "2023-02-15"},
		{Name: "Notes.txt", Type: "file", Size: "12 KB", Modified: "2023-03-20"},
	}},
	{Name: "Pictures", Type: "folder", Modified: "2023-03-15", Children: []Entry{
		{Name: "Vacation.jpg", Type: "file", Size: "3.5 MB", Modified: "2023-03-15"},
		{Name: "Family.jpg", Type: "file", Size: "2.8 MB", Modified: "2023-02-28"},
	}},
	{Name: "Projects", Type: "folder", Modified: "2023-04-02", Children: []Entry{
		{Name: "Website", Type: "folder", Modified: "2023-04-02", Children: []Entry{}},
		{Name: "App", Type: "folder", Modified: "2023-03-25", Children: []Entry{}},
	}},
}

// Build assembles a forest from entries.
func Build(entries []Entry, opts ...model.BuilderOption) (*model.Forest, error) {
	b := model.NewBuilder(opts...)
	if err := addEntries(b, "", "", entries); err != nil {
		return nil, err
	}
	f := b.Build()
	debug.Log("seed: built %d nodes", f.Len())
	return f, nil
}

func addEntries(b *model.Builder, parent model.NodeID, path string, entries []Entry) error {
	for i, e := range entries {
		where := fmt.Sprintf("%s/%s", path, e.Name)
		if e.Name == "" {
			where = fmt.Sprintf("%s[%d]", path, i)
		}

		kind, err := e.kind()
		if err != nil {
			return fmt.Errorf("entry %s: %w", where, err)
		}
		modified, err := parseModified(e.Modified)
		if err != nil {
			return fmt.Errorf("entry %s: %w", where, err)
		}

		if kind == model.KindFile {
			if len(e.Children) > 0 {
				return fmt.Errorf("entry %s: %w", where, model.ErrNotFolder)
			}
			if _, err := b.AddFile(parent, e.Name, e.Size, modified); err != nil {
				return fmt.Errorf("entry %s: %w", where, err)
			}
			continue
		}

		id, err := b.AddFolder(parent, e.Name, modified, e.Expanded)
		if err != nil {
			return fmt.Errorf("entry %s: %w", where, err)
		}
		if err := addEntries(b, id, where, e.Children); err != nil {
			return err
		}
	}
	return nil
}

func (e Entry) kind() (model.Kind, error) {
	if e.Type == "" {
		if e.Children != nil {
			return model.KindFolder, nil
		}
		return model.KindFile, nil
	}
	return model.ParseKind(strings.ToLower(e.Type))
}

func parseModified(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing modified date: %w", err)
	}
	return t, nil
}

// ReadFile decodes a seed file without building it. The format follows the
// extension: .yaml/.yml or .json.
func ReadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("reading seed: %w", err)
	}

	var file File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	case ".json":
		err = json.Unmarshal(data, &file)
	default:
		return File{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return File{}, fmt.Errorf("parsing seed %s: %w", path, err)
	}
	return file, nil
}

// LoadFile reads and builds a seed file.
func LoadFile(path string) (*model.Forest, error) {
	defer metrics.Timer(metrics.SeedLoad)()

	file, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Build(file.Entries)
	if err != nil {
		return nil, fmt.Errorf("seed %s: %w", path, err)
	}
	return f, nil
}

// Export converts a forest back into seed entries, ids included.
func Export(f *model.Forest) File {
	var convert func(ids []model.NodeID) []Entry
	convert = func(ids []model.NodeID) []Entry {
		out := make([]Entry, 0, len(ids))
		for _, id := range ids {
			n, ok := f.Node(id)
			if !ok {
				continue
			}
			e := Entry{
				ID:       string(n.ID),
				Name:     n.Name,
				Type:     n.Kind.String(),
				Size:     n.Size,
				Expanded: n.Expanded,
			}
			if !n.ModifiedAt.IsZero() {
				e.Modified = n.ModifiedAt.Format(DateLayout)
			}
			if n.IsFolder() {
				e.Children = convert(n.Children)
			}
			out = append(out, e)
		}
		return out
	}
	return File{Entries: convert(f.Roots())}
}

// WriteJSON writes f as indented seed json.
func WriteJSON(w io.Writer, f *model.Forest) error {
	data, err := json.MarshalIndent(Export(f), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding forest: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
