// File: doc.go
// Title: Runtime Localization Package Documentation
// Description: Package i18n loads packaged per-language translation sets and
//              resolves keys against the active language with a fallback
//              chain and change notification.

/*
Package i18n provides the runtime half of mdwloc.

A Store discovers resources named "<prefix><code>.json" in an fs.FS, decodes
each into an immutable LanguageRecord and keeps the record with the default
code ("en") as fallback. A Resolver sits on top of a Store and owns the
current language:

	store := i18n.NewStore(assets.Languages, i18n.StoreOptions{})
	resolver := i18n.NewResolver(store, i18n.ResolverOptions{
		Preferences: prefsStore,
	})

	title := resolver.Get("menu.title")

	unsubscribe := resolver.OnLanguageChanged(func(code string) {
		redraw()
	})
	defer unsubscribe()

	_ = resolver.SetLanguage("de")

Resolution order is current language, then fallback language, then the
placeholder "[key]". The placeholder is shared with accessors produced by
the compiler so that unresolved keys look the same everywhere.

Change handlers run synchronously on the goroutine that switched the
language, in registration order. A panicking handler is recovered and
logged; the remaining handlers still run.
*/
package i18n
