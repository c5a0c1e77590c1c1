package cluster

import (
	"bytes"
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/duration"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

// API lists pods through the Kubernetes API and renders them the way
// "kubectl get pods" does.
type API struct {
	client kubernetes.Interface
	now    func() time.Time
}

// NewAPI builds a client from kubeconfig, or from the default loading rules
// (KUBECONFIG, ~/.kube/config, in-cluster) when kubeconfig is empty.
func NewAPI(kubeconfig string, timeout time.Duration) (*API, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfig != "" {
		rules.ExplicitPath = kubeconfig
	}

	restConfig, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, &clientcmd.ConfigOverrides{}).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("could not load client configuration: %w", err)
	}
	restConfig.Timeout = timeout

	client, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	return NewAPIWithClient(client), nil
}

func NewAPIWithClient(client kubernetes.Interface) *API {
	return &API{client: client, now: time.Now}
}

func (a *API) ListPods(ctx context.Context, namespace string) (string, error) {
	pods, err := a.client.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to list pods in %s: %w", namespace, err)
	}

	if len(pods.Items) == 0 {
		return fmt.Sprintf("No resources found in %s namespace.\n", namespace), nil
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 6, 4, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tREADY\tSTATUS\tRESTARTS\tAGE")
	now := a.now()
	for i := range pods.Items {
		pod := &pods.Items[i]
		ready, total, restarts := containerCounts(pod)
		fmt.Fprintf(w, "%s\t%d/%d\t%s\t%d\t%s\n",
			pod.Name, ready, total, podStatus(pod), restarts,
			duration.HumanDuration(now.Sub(pod.CreationTimestamp.Time)))
	}
	if err := w.Flush(); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func containerCounts(pod *corev1.Pod) (ready, total int, restarts int32) {
	total = len(pod.Spec.Containers)
	for _, cs := range pod.Status.ContainerStatuses {
		if cs.Ready {
			ready++
		}
		restarts += cs.RestartCount
	}
	return ready, total, restarts
}

// podStatus approximates the STATUS column of kubectl: the pod reason, a
// waiting or terminated container reason, or the phase.
func podStatus(pod *corev1.Pod) string {
	if pod.DeletionTimestamp != nil {
		return "Terminating"
	}
	if pod.Status.Reason != "" {
		return pod.Status.Reason
	}
	for _, cs := range pod.Status.ContainerStatuses {
		switch {
		case cs.State.Waiting != nil && cs.State.Waiting.Reason != "":
			return cs.State.Waiting.Reason
		case cs.State.Terminated != nil && cs.State.Terminated.Reason != "":
			return cs.State.Terminated.Reason
		}
	}
	return string(pod.Status.Phase)
}
