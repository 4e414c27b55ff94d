package driver

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	mdwerror "github.com/msto63/mdwloc/foundation/core/error"
	"github.com/msto63/mdwloc/foundation/utils/filex"
	"github.com/msto63/mdwloc/internal/compiler/model"
)

// Discover walks root and returns every definition document in lexical
// order. A file that cannot be read is returned with Err set.
func Discover(root string) ([]Document, error) {
	var docs []Document

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if path != root && isHidden(entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !model.IsDocument(entry.Name()) {
			return nil
		}
		docs = append(docs, Load(path))
		return nil
	})
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to discover localization documents").
			WithCode(mdwerror.CodeIOError).
			WithOperation("driver.Discover").
			WithDetail("root", root)
	}

	return docs, nil
}

// Load reads one document from disk.
func Load(path string) Document {
	text, err := os.ReadFile(path)
	if err != nil {
		return Document{SourceID: path, Err: err}
	}
	return Document{SourceID: path, Text: text}
}

// WriteResults writes the generated source of every successful result. An
// empty dir places each file next to its source document. Files whose
// content is unchanged are left alone. A failing target does not stop the
// remaining results; the written paths are returned together with the
// joined write errors.
func WriteResults(dir string, results []Result) ([]string, error) {
	var (
		written []string
		errs    []error
	)

	for _, r := range results {
		if !r.OK() {
			continue
		}

		target := dir
		if target == "" {
			target = filepath.Dir(r.SourceID)
		}
		if err := os.MkdirAll(target, 0755); err != nil {
			errs = append(errs, writeError(err, target))
			continue
		}

		path := filepath.Join(target, r.OutputName)
		changed, err := filex.WriteIfChanged(path, r.Source, 0644)
		if err != nil {
			errs = append(errs, writeError(err, path))
			continue
		}
		if changed {
			written = append(written, path)
		}
	}

	return written, errors.Join(errs...)
}

func writeError(err error, path string) error {
	return mdwerror.Wrap(err, "failed to write generated accessor").
		WithCode(mdwerror.CodeIOError).
		WithOperation("driver.WriteResults").
		WithDetail("path", path)
}

func isHidden(name string) bool {
	return filex.IsHidden(name)
}
