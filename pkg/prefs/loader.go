package prefs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/macprefs/pkg/errors"
	"github.com/arthur-debert/macprefs/pkg/logging"
	toml "github.com/pelletier/go-toml/v2"
)

// DocumentExtension is the recognized extension for preference documents
const DocumentExtension = ".toml"

// rawDocument is the on-disk TOML shape of a preference document
type rawDocument struct {
	Description string                    `toml:"description"`
	CurrentHost bool                      `toml:"current_host"`
	Sudo        bool                      `toml:"sudo"`
	Kill        []string                  `toml:"kill"`
	Data        map[string]map[string]any `toml:"data"`
}

// Load reads preference documents from path, which may be a single TOML
// file or a directory of them (non-recursive, sorted by filename).
// A malformed file yields one error and does not abort the remaining
// files; callers receive every document that did load plus the per-file
// errors.
func Load(path string) ([]Document, []error) {
	logger := logging.GetLogger("prefs.loader")

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, []error{errors.Wrap(err, errors.ErrNotFound, "path does not exist").
				WithDetail("path", path)}
		}
		return nil, []error{errors.Wrap(err, errors.ErrFileAccess, "cannot access path").
			WithDetail("path", path)}
	}

	if !info.IsDir() {
		doc, err := loadFile(path)
		if err != nil {
			return nil, []error{err}
		}
		return []Document{doc}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, []error{errors.Wrap(err, errors.ErrFileAccess, "cannot read directory").
			WithDetail("path", path)}
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), DocumentExtension) {
			continue
		}
		names = append(names, entry.Name())
	}
	// Directory listing order is filesystem dependent; sort for
	// reproducible apply order.
	sort.Strings(names)

	var docs []Document
	var errs []error
	for _, name := range names {
		doc, err := loadFile(filepath.Join(path, name))
		if err != nil {
			logger.Error().Str("file", name).Err(err).Msg("Skipping malformed document")
			errs = append(errs, err)
			continue
		}
		docs = append(docs, doc)
	}

	logger.Debug().Str("path", path).Int("documents", len(docs)).Int("errors", len(errs)).
		Msg("Documents loaded")
	return docs, errs
}

// loadFile parses and validates a single preference document
func loadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, errors.Wrap(err, errors.ErrDocumentLoad, "cannot read document").
			WithDetail("path", path)
	}

	var raw rawDocument
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Document{}, errors.Wrap(err, errors.ErrDocumentParse, "cannot parse document").
			WithDetail("path", path)
	}

	doc := Document{
		Path:        path,
		Name:        filepath.Base(path),
		Description: raw.Description,
		Kill:        raw.Kill,
		CurrentHost: raw.CurrentHost,
		Sudo:        raw.Sudo,
	}

	domains := make([]string, 0, len(raw.Data))
	for domain := range raw.Data {
		domains = append(domains, domain)
	}
	sort.Strings(domains)

	for _, domain := range domains {
		settings := raw.Data[domain]
		for key, value := range settings {
			if err := validateValue(value); err != nil {
				return Document{}, errors.Wrap(err, errors.ErrDocumentValue, "unsupported setting value").
					WithDetail("path", path).
					WithDetail("domain", domain).
					WithDetail("key", key)
			}
		}
		doc.Domains = append(doc.Domains, DomainSettings{Domain: domain, Settings: settings})
	}

	return doc, nil
}

// validateValue rejects value kinds the defaults write boundary cannot
// express (dates, mixed exotic types).
func validateValue(value any) error {
	switch v := value.(type) {
	case bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return nil
	case map[string]any:
		for key, sub := range v {
			if err := validateValue(sub); err != nil {
				return errors.Wrapf(err, errors.ErrDocumentValue, "in nested key %q", key)
			}
		}
		return nil
	case []any:
		for i, sub := range v {
			if err := validateValue(sub); err != nil {
				return errors.Wrapf(err, errors.ErrDocumentValue, "in array index %d", i)
			}
		}
		return nil
	default:
		return errors.Newf(errors.ErrDocumentValue, "value type %T is not supported", value)
	}
}
