// Package cluster produces the pod status snapshot attached to deployment
// notifications.
package cluster

import "context"

// PodLister renders the pods of a namespace as human-readable text.
type PodLister interface {
	ListPods(ctx context.Context, namespace string) (string, error)
}
