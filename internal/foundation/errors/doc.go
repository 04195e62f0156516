// Package errors provides the classified error primitives used across docnav.
//
// Every error that leaves a package boundary carries a category (config,
// sidebar, content, build, ...), a severity and a retry strategy. Sidebar
// reference failures are always fatal and require a user edit, so nothing in
// docnav retries them.
//
// Example usage:
//
//	err := errors.SidebarError("dangling document reference").
//		WithContext("tree", "docs").
//		WithContext("doc_id", "missing_doc").
//		WithCause(sidebar.ErrDanglingReference).
//		Build()
package errors
