package cmd

import (
	"context"
	"io"
	"io/fs"
	"os"

	"github.com/msto63/mdwloc/assets"
	"github.com/msto63/mdwloc/foundation/core/i18n"
	mdwlog "github.com/msto63/mdwloc/foundation/core/log"
	"github.com/msto63/mdwloc/internal/prefs"
)

// resolverOptions controls how a command builds its resolver
type resolverOptions struct {
	// persist stores language switches in the preference database
	persist bool

	// quiet silences resolver logging, e.g. while a TUI owns the terminal
	quiet bool
}

// newResolver builds the runtime resolver from the configuration. The
// returned function closes the preference store.
func newResolver(opts resolverOptions) (*i18n.Resolver, func()) {
	log := logger
	if opts.quiet {
		log = logger.WithOutput(io.Discard)
	}

	var fsys fs.FS = assets.Languages
	if dir := appConfig.Runtime.ResourceDir; dir != "" {
		fsys = os.DirFS(dir)
	}

	store := i18n.NewStore(fsys, i18n.StoreOptions{
		Prefix:      appConfig.Runtime.Prefix,
		DefaultCode: appConfig.Runtime.DefaultLanguage,
		Logger:      log,
	})

	resolverOpts := i18n.ResolverOptions{Logger: log}
	cleanup := func() {}

	if appConfig.Runtime.Persist() {
		sqlite, err := prefs.NewSQLiteStore(prefs.SQLiteConfig{Path: appConfig.Runtime.PreferencesPath})
		if err != nil {
			log.WarnWithErr("preferences unavailable, language choice is not remembered", err,
				mdwlog.Fields{"path": appConfig.Runtime.PreferencesPath})
		} else {
			resolverOpts.Preferences = sqlite
			if !opts.persist {
				resolverOpts.Preferences = readOnly{sqlite}
			}
			cleanup = func() {
				if err := sqlite.Close(); err != nil {
					log.LogError(err)
				}
			}
		}
	}

	return i18n.NewResolver(store, resolverOpts), cleanup
}

// readOnly lets a resolver read the stored language without writing back
// one-off switches such as "translate --lang".
type readOnly struct {
	prefs.Store
}

func (readOnly) Set(_ context.Context, _, _ string) error {
	return nil
}
