package cluster

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"
	clienttesting "k8s.io/client-go/testing"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newPod(name, namespace string, age time.Duration, phase corev1.PodPhase, containers int, statuses ...corev1.ContainerStatus) *corev1.Pod {
	pod := &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:              name,
			Namespace:         namespace,
			CreationTimestamp: metav1.NewTime(testNow.Add(-age)),
		},
		Status: corev1.PodStatus{Phase: phase, ContainerStatuses: statuses},
	}
	for i := 0; i < containers; i++ {
		pod.Spec.Containers = append(pod.Spec.Containers, corev1.Container{Name: "c" + string(rune('a'+i))})
	}
	return pod
}

func TestAPI_ListPods(t *testing.T) {
	client := fake.NewSimpleClientset(
		newPod("web-0", "todo-app", 3*time.Minute, corev1.PodRunning, 1,
			corev1.ContainerStatus{Ready: true}),
		newPod("worker-1", "todo-app", 5*time.Hour, corev1.PodRunning, 2,
			corev1.ContainerStatus{Ready: true, RestartCount: 1},
			corev1.ContainerStatus{RestartCount: 3, State: corev1.ContainerState{Waiting: &corev1.ContainerStateWaiting{Reason: "CrashLoopBackOff"}}}),
		newPod("migrate-x", "todo-app", 30*time.Second, corev1.PodSucceeded, 1,
			corev1.ContainerStatus{State: corev1.ContainerState{Terminated: &corev1.ContainerStateTerminated{Reason: "Completed"}}}),
		newPod("other", "kube-system", time.Hour, corev1.PodRunning, 1),
	)
	api := NewAPIWithClient(client)
	api.now = func() time.Time { return testNow }

	out, err := api.ListPods(context.Background(), "todo-app")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"NAME", "READY", "STATUS", "RESTARTS", "AGE"}, strings.Fields(lines[0]))

	rows := map[string][]string{}
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		rows[fields[0]] = fields[1:]
	}
	assert.Equal(t, []string{"1/1", "Running", "0", "3m"}, rows["web-0"])
	assert.Equal(t, []string{"1/2", "CrashLoopBackOff", "4", "5h"}, rows["worker-1"])
	assert.Equal(t, []string{"0/1", "Completed", "0", "30s"}, rows["migrate-x"])
	assert.NotContains(t, out, "other")
}

func TestAPI_ListPods_Empty(t *testing.T) {
	api := NewAPIWithClient(fake.NewSimpleClientset())

	out, err := api.ListPods(context.Background(), "todo-app")

	require.NoError(t, err)
	assert.Equal(t, "No resources found in todo-app namespace.\n", out)
}

func TestAPI_ListPods_Error(t *testing.T) {
	client := fake.NewSimpleClientset()
	client.PrependReactor("list", "pods", func(clienttesting.Action) (bool, runtime.Object, error) {
		return true, nil, errors.New("forbidden")
	})
	api := NewAPIWithClient(client)

	_, err := api.ListPods(context.Background(), "todo-app")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "forbidden")
}

func TestPodStatus(t *testing.T) {
	deleting := metav1.NewTime(testNow)

	tests := []struct {
		name string
		pod  *corev1.Pod
		want string
	}{
		{"phase", &corev1.Pod{Status: corev1.PodStatus{Phase: corev1.PodPending}}, "Pending"},
		{"pod reason", &corev1.Pod{Status: corev1.PodStatus{Phase: corev1.PodFailed, Reason: "Evicted"}}, "Evicted"},
		{"terminating", &corev1.Pod{ObjectMeta: metav1.ObjectMeta{DeletionTimestamp: &deleting}, Status: corev1.PodStatus{Phase: corev1.PodRunning}}, "Terminating"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, podStatus(tt.pod))
		})
	}
}
