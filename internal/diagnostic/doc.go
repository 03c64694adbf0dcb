// Package diagnostic collects the events a generation request recovered from.
//
// Key capabilities:
//   - Filter fallbacks after exhausted attempts
//   - Ignored assignment errors
//   - Unused selectors in lenient mode
//   - Nodes cut by cycle or depth detection
package diagnostic
