package profile

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Load reads a career history document from a JSON file.
func Load(path string) (doc Document, err error) {
	// Read file
	var fileData []byte
	fileData, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read history file: %s", path)
		return doc, err
	}

	// Parse JSON
	err = json.Unmarshal(fileData, &doc)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse history JSON: %s", path)
		return doc, err
	}

	// Validate document
	err = doc.Validate()
	if err != nil {
		err = errors.Wrap(err, "history validation failed")
		return doc, err
	}

	return doc, err
}

// Validate checks that the history document is well-formed.
func (d *Document) Validate() (err error) {
	if d.Profile.Ref == "" {
		err = errors.New("profile ref is required")
		return err
	}

	if d.Profile.Name == "" {
		err = errors.New("profile name is required")
		return err
	}

	// Validate each timeline entry has required fields
	for i, entry := range d.Timeline {
		if entry.ID == "" {
			err = errors.Errorf("timeline entry at index %d missing ID", i)
			return err
		}
		if entry.Title == "" {
			err = errors.Errorf("timeline entry %s missing title", entry.ID)
			return err
		}
		if entry.Start == "" {
			err = errors.Errorf("timeline entry %s missing start date", entry.ID)
			return err
		}
	}

	return err
}
