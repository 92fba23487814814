// Package errors provides structured, actionable error messages for weave.
//
// Every error carries a unique code (e.g., "W020") that maps to a short
// message, a longer explanation and a documentation URL. Errors can be
// enriched with a suggestion and can wrap the underlying cause, so host
// adapter failures keep their original error reachable through errors.Is
// and errors.As.
//
// # Error Categories
//
//   - runtime: engine misuse (invalid element type, hooks outside render)
//   - host: host adapter failures and aborted commits
//   - scheduler: scheduler loop lifecycle errors
//   - config: weave.json loading and validation
//   - cli: command line errors
//   - export: writing rendered documents to files or S3
//
// # Usage
//
//	err := errors.New("W020").
//	    Wrap(hostErr).
//	    WithSuggestion("Check the host adapter logs")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR W020: Commit aborted
//	//
//	//   A host adapter failure aborted the commit. ...
//	//
//	//   Cause: node 7 is not a child of node 3
//	//
//	//   Hint: Check the host adapter logs
//	//
//	//   Learn more: https://weave.dev/docs/errors/W020
package errors
