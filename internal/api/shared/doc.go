// Package shared holds the HTTP plumbing every handler uses: JSON envelopes,
// request decoding and validation, and trace IDs.
package shared
