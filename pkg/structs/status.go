package structs

import (
	"strings"
)

type Status string

const (
	// transient states
	WAITING          Status = "WAITING"
	IN_PROGRESS      Status = "IN_PROGRESS"
	CANCEL_REQUESTED Status = "CANCEL_REQUESTED"

	// end states
	COMPLETED Status = "COMPLETED"
	FAILED    Status = "FAILED"
	CANCELLED Status = "CANCELLED"
)

func IsFinalStatus(status Status) bool {
	switch status {
	case COMPLETED, FAILED, CANCELLED:
		return true
	default:
		return false
	}
}

func ToStatus(s string) Status {
	switch strings.ToUpper(s) {
	case "WAITING":
		return WAITING
	case "IN_PROGRESS":
		return IN_PROGRESS
	case "CANCEL_REQUESTED":
		return CANCEL_REQUESTED
	case "COMPLETED":
		return COMPLETED
	case "FAILED":
		return FAILED
	case "CANCELLED":
		return CANCELLED
	default:
		return ""
	}
}
