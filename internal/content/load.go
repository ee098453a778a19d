package content

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed data
var dataFS embed.FS

const (
	questionsFile = "questions.json"
	topicsFile    = "topics.json"
	formulasFile  = "formulas.json"
	resourcesFile = "resources.json"
	notesDir      = "notes"
	schemaDir     = "schema"
)

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		return nil, err
	}
	return Load(sub)
})

// Default returns the catalog compiled into the binary. It is loaded and
// validated once; later calls return the same catalog.
func Default() (*Catalog, error) {
	return defaultCatalog()
}

// Load reads and validates a catalog from fsys. The layout mirrors the
// embedded data directory: four JSON documents, a schema directory and a
// notes directory holding <topic-slug>.html files. Notes are optional.
func Load(fsys fs.FS) (*Catalog, error) {
	var (
		qd questionsDoc
		td topicsDoc
		fd formularyDoc
		rd resourcesDoc
	)

	docs := []struct {
		file   string
		target any
	}{
		{topicsFile, &td},
		{questionsFile, &qd},
		{formulasFile, &fd},
		{resourcesFile, &rd},
	}
	for _, d := range docs {
		if err := decodeDocument(fsys, d.file, d.target); err != nil {
			return nil, err
		}
	}

	formulas := make(map[string][]Formula, len(fd.Formulary))
	var formulaOrder []string
	for _, entry := range fd.Formulary {
		if _, seen := formulas[entry.Topic]; !seen {
			formulaOrder = append(formulaOrder, entry.Topic)
		}
		formulas[entry.Topic] = append(formulas[entry.Topic], entry.Formulas...)
	}

	notes := make(map[string]string, len(td.Topics))
	for _, t := range td.Topics {
		raw, err := fs.ReadFile(fsys, path.Join(notesDir, t.Slug+".html"))
		if err != nil {
			continue
		}
		notes[t.Name] = string(bytes.TrimSpace(raw))
	}

	c := newCatalog(td.Topics, qd.Questions, formulas, formulaOrder, notes, rd.Resources)
	if err := validateCatalog(c); err != nil {
		return nil, err
	}
	return c, nil
}

// decodeDocument validates file against schema/<name>.schema.json and then
// decodes it into target.
func decodeDocument(fsys fs.FS, file string, target any) error {
	raw, err := fs.ReadFile(fsys, file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}

	schemaFile := path.Join(schemaDir, file[:len(file)-len(path.Ext(file))]+".schema.json")
	compiled, err := compileSchema(fsys, schemaFile)
	if err != nil {
		return err
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("parse %s: %w", file, err)
	}
	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("%s does not match schema: %w", file, err)
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode %s: %w", file, err)
	}
	return nil
}

func compileSchema(fsys fs.FS, file string) (*jsonschema.Schema, error) {
	raw, err := fs.ReadFile(fsys, file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	def, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}

	url := "catalog://" + file
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", file, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", file, err)
	}
	return compiled, nil
}
