// Package internal provides the core functionality of the typelint tool.
//
// This package implements the linting engine that coordinates analysis of
// Python type annotations. It parses source files with the internal/syntax
// front end, checks them against the registered rules, filters suppressed
// findings, and optionally caches results between runs.
//
// Key components:
//
// Engine: The main linting engine. It owns the rule registry and per-rule
// configuration and applies them to the given source files.
//
// Cache: A result cache keyed by file content hash, so unchanged files are
// not re-analyzed across invocations.
//
// The engine also supports watch mode, re-linting files as they change on
// disk.
//
// Usage:
//
//	engine, err := internal.NewEngine("path/to/root/dir", nil)
//	if err != nil {
//	    // handle error
//	}
//
//	diagnostics, err := engine.Run("path/to/file.py")
//	if err != nil {
//	    // handle error
//	}
//
//	for _, d := range diagnostics {
//	    fmt.Printf("%s: %s\n", d.Rule, d.Message)
//	}
//
// This package is intended for internal use within typelint and should not
// be imported by external packages.
package internal
