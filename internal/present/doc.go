// Package present renders the interaction history. The history is an
// append-only sequence of styled lines and product blocks: nothing rendered
// is ever replaced or removed, so the full course of a conversation stays
// visible.
package present
