// Package driver runs the parser and generator over a set of definition
// documents. Every document yields either generated source or exactly one
// diagnostic; a failing document never affects the others.
package driver

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	mdwerror "github.com/msto63/mdwloc/foundation/core/error"
	"github.com/msto63/mdwloc/internal/compiler/generator"
	"github.com/msto63/mdwloc/internal/compiler/model"
	"github.com/msto63/mdwloc/internal/compiler/parser"
	"github.com/msto63/mdwloc/pkg/core/logging"
)

// Document is one input to a generation run.
type Document struct {
	SourceID string
	Text     []byte

	// Err is set when the document could not be read. Run turns it into
	// a diagnostic.
	Err error
}

// Result is the outcome for one document.
type Result struct {
	SourceID   string
	OutputName string

	// Source holds the generated code when Diagnostic is nil.
	Source     []byte
	Definition *model.Definition

	Diagnostic *Diagnostic
}

// OK reports whether the document produced source.
func (r Result) OK() bool {
	return r.Diagnostic == nil
}

// Config holds driver configuration
type Config struct {
	// Workers bounds parallel documents (default: runtime.NumCPU())
	Workers int

	// Package and I18nImport are passed to the generator
	Package    string
	I18nImport string

	// Debounce is the quiet period Watch waits for (default: DefaultDebounce)
	Debounce time.Duration

	Logger *logging.Logger
}

// Driver runs generation for batches of documents
type Driver struct {
	cfg    Config
	logger *logging.Logger
}

// New creates a driver
func New(cfg Config) *Driver {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Wrap(nil)
	}
	return &Driver{cfg: cfg, logger: logger}
}

// Run processes docs with the default configuration.
func Run(ctx context.Context, docs []Document) []Result {
	return New(Config{}).Run(ctx, docs)
}

// Run processes docs in parallel and returns one result per document in
// input order. Documents not started before ctx is done get a diagnostic.
func (d *Driver) Run(ctx context.Context, docs []Document) []Result {
	runID := uuid.New().String()
	logger := d.logger.WithCorrelationID(runID)
	timer := logger.StartTimer("generation run")

	results := make([]Result, len(docs))
	sem := make(chan struct{}, d.cfg.Workers)
	var wg sync.WaitGroup

	for i := range docs {
		if err := ctx.Err(); err != nil {
			results[i] = failed(docs[i].SourceID, "", err)
			continue
		}

		select {
		case <-ctx.Done():
			results[i] = failed(docs[i].SourceID, "", ctx.Err())
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = d.process(docs[i], logger)
		}(i)
	}
	wg.Wait()

	markCollisions(results)

	failures := 0
	for i := range results {
		if diag := results[i].Diagnostic; diag != nil {
			diag.RunID = runID
			failures++
			logger.Error("localization document failed",
				"source", diag.Source,
				"code", diag.Code,
				"message", diag.Message)
		}
	}

	timer.WithField("documents", len(docs)).WithField("failures", failures).Stop()
	logger.Info("generation run finished", "documents", len(docs), "failures", failures)
	return results
}

func (d *Driver) process(doc Document, logger *logging.Logger) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = failed(doc.SourceID, "", mdwerror.Newf("internal error: %v", r).WithCode(mdwerror.CodeInternal))
		}
	}()

	if doc.Err != nil {
		return failed(doc.SourceID, "", doc.Err)
	}

	def, err := parser.Parse(doc.Text, doc.SourceID, parser.WithDiscardHook(
		func(source string, index int, key string, reason parser.DiscardReason) {
			logger.Debug("key element discarded", "source", source, "index", index, "key", key, "reason", string(reason))
		}))
	if err != nil {
		return failed(doc.SourceID, "", err)
	}

	src, err := generator.Generate(def, generator.Options{
		Package:    d.cfg.Package,
		I18nImport: d.cfg.I18nImport,
	})
	if err != nil {
		r := failed(doc.SourceID, def.TypeName, err)
		r.Definition = def
		return r
	}

	logger.Debug("accessor generated",
		"source", doc.SourceID,
		"output", def.OutputName(),
		"keys", len(def.Entries),
		"languages", len(def.Languages))

	return Result{
		SourceID:   doc.SourceID,
		OutputName: def.OutputName(),
		Source:     src,
		Definition: def,
	}
}

func failed(sourceID, typeName string, err error) Result {
	return Result{
		SourceID:   sourceID,
		OutputName: model.OutputName(typeName, sourceID),
		Diagnostic: NewDiagnostic(sourceID, err.Error()),
	}
}

// markCollisions turns every later result that would overwrite an earlier
// output file into a diagnostic.
func markCollisions(results []Result) {
	owner := make(map[string]string)
	for i := range results {
		r := &results[i]
		if !r.OK() {
			continue
		}
		if first, taken := owner[r.OutputName]; taken {
			r.Diagnostic = NewDiagnostic(r.SourceID, "output "+r.OutputName+" is already generated from "+first)
			r.Source = nil
			continue
		}
		owner[r.OutputName] = r.SourceID
	}
}
