// Package clipboard copies generated URLs to the system clipboard and drives
// the copy affordance label: after a successful copy the label reads the
// acknowledgement text for a fixed delay, then reverts. Only the most recent
// successful copy may revert the label.
package clipboard
