// Package catalog provides a thread-safe collection of named templates.
//
// Templates enter a catalog from code, from definition documents on disk,
// or from a definition store:
//
//	c := catalog.New(catalog.WithLogger(logger))
//	c.Register("greeting", strtmpl.New("Hello ", strtmpl.Str("World")))
//
//	if _, err := c.LoadDir("./templates"); err != nil {
//	    logger.Warn("some definitions were rejected", "error", err)
//	}
//
//	out, err := c.Render("greeting", "Gopher")
//
// Definitions that name their slots can also be rendered from a map:
//
//	out, err := c.RenderNamed("profile", map[string]any{"name": "Alice", "age": 18})
//
// Search matches names and descriptions with fuzzy matching:
//
//	for _, name := range c.Search("prf") {
//	    fmt.Println(name) // profile
//	}
//
// # Thread Safety
//
// All Catalog methods are safe for concurrent use. Templates returned by Get
// are immutable and may be shared freely.
package catalog
