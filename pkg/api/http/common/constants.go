package common

const (
	// API_TASKS is used to get or submit tasks
	API_TASKS = "/api/v1/tasks"

	// API_TASK is used to get one task's execution details
	API_TASK = "/api/v1/tasks/{id}"

	// API_AWAIT blocks until a task reaches a final status
	API_AWAIT = "/api/v1/tasks/{id}/await"

	// API_CANCEL is used to request a task stop
	API_CANCEL = "/api/v1/cancel"
)
