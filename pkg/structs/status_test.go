package structs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsFinalStatus(t *testing.T) {
	cases := []struct {
		Name   string
		Given  Status
		Expect bool
	}{
		{"StatusUndefined", "x", false},
		{"StatusWaiting", WAITING, false},
		{"StatusInProgress", IN_PROGRESS, false},
		{"StatusCancelRequested", CANCEL_REQUESTED, false},
		{"StatusCompleted", COMPLETED, true},
		{"StatusFailed", FAILED, true},
		{"StatusCancelled", CANCELLED, true},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			assert.Equal(t, IsFinalStatus(c.Given), c.Expect)
		})
	}
}

func TestToStatus(t *testing.T) {
	cases := []struct {
		Name   string
		Given  string
		Expect Status
	}{
		{"StatusUndefined", "x", ""},
		{"StatusWaiting", "WAITING", WAITING},
		{"StatusInProgress", "IN_PROGRESS", IN_PROGRESS},
		{"StatusCancelRequested", "CANCEL_REQUESTED", CANCEL_REQUESTED},
		{"StatusCompleted", "COMPLETED", COMPLETED},
		{"StatusFailed", "FAILED", FAILED},
		{"StatusCancelled", "CANCELLED", CANCELLED},
		{"Lowercase", "completed", COMPLETED},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			assert.Equal(t, ToStatus(c.Given), c.Expect)
		})
	}
}
