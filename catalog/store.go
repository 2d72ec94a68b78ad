package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AliceBotProject/alicebot-store/models"

	"github.com/Noah-Huppert/golog"
)

// StorageError indicates a catalog file could not be read, parsed or
// written. Storage errors are internal and are reported to submitters as
// unexpected errors.
type StorageError struct {
	// Path of the catalog file
	Path string

	// Reason describes what went wrong
	Reason string
}

// Error implements error
func (e StorageError) Error() string {
	return fmt.Sprintf("catalog file %s: %s", e.Path, e.Reason)
}

// Store merges submissions into the persisted JSON catalog files of a store
// repository checkout. It is the only component which mutates persisted
// state. Upsert is a full read-modify-write, so a Store must not be used
// concurrently against the same file.
type Store struct {
	// Logger logs catalog changes
	Logger golog.Logger

	// Root is the directory holding the catalog files
	Root string
}

// Upsert merges a submission into the catalog file of its kind. An existing
// entry with the submission's name is replaced in place, keeping its
// position. A new name is appended at the end. Unrelated entries are
// preserved untouched.
func (s Store) Upsert(submission models.Submission) error {
	path := filepath.Join(s.Root, submission.SubmissionKind().CatalogFile())

	catalogBytes, err := os.ReadFile(path)
	if err != nil {
		return StorageError{
			Path:   path,
			Reason: fmt.Sprintf("failed to read: %s", err.Error()),
		}
	}

	// Entries stay raw so entries other than the upserted one survive
	// byte level details a decode and re-encode cycle would normalize
	var entries []json.RawMessage
	if err := json.Unmarshal(catalogBytes, &entries); err != nil {
		return StorageError{
			Path:   path,
			Reason: fmt.Sprintf("not a JSON array: %s", err.Error()),
		}
	}

	entryBytes, err := marshalEntry(submission)
	if err != nil {
		return StorageError{
			Path:   path,
			Reason: fmt.Sprintf("failed to serialize submission: %s", err.Error()),
		}
	}

	replaced := false

	for i, entry := range entries {
		var key struct {
			Name string `json:"name"`
		}

		if err := json.Unmarshal(entry, &key); err != nil {
			return StorageError{
				Path: path,
				Reason: fmt.Sprintf("entry %d is not an object: %s",
					i, err.Error()),
			}
		}

		if key.Name == submission.SubmissionName() {
			entries[i] = entryBytes
			replaced = true
			break
		}
	}

	if !replaced {
		entries = append(entries, entryBytes)
	}

	if replaced {
		s.Logger.Infof("updated %s entry %s", submission.SubmissionKind(),
			submission.SubmissionName())
	} else {
		s.Logger.Infof("added %s entry %s", submission.SubmissionKind(),
			submission.SubmissionName())
	}

	var out bytes.Buffer

	encoder := json.NewEncoder(&out)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(entries); err != nil {
		return StorageError{
			Path:   path,
			Reason: fmt.Sprintf("failed to serialize catalog: %s", err.Error()),
		}
	}

	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		return StorageError{
			Path:   path,
			Reason: fmt.Sprintf("failed to write: %s", err.Error()),
		}
	}

	return nil
}

// marshalEntry serializes a submission without escaping HTML characters, so
// URLs and non-ASCII text land in the catalog verbatim
func marshalEntry(submission models.Submission) (json.RawMessage, error) {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(submission); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
