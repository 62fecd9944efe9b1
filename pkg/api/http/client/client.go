package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ketrez/steward/pkg/api/http/common"
	se "github.com/ketrez/steward/pkg/errors"
	"github.com/ketrez/steward/pkg/structs"
	"github.com/ketrez/steward/pkg/task"
)

// Client talks to a steward server over HTTP. It satisfies api.TaskManager
// so callers can swap between in-process and remote task managers.
type Client struct {
	url *url.URL
}

func New(address string) (*Client, error) {
	u, err := url.Parse(address)
	return &Client{url: u}, err
}

func (c *Client) Submit(ctx context.Context, t task.Task) (string, error) {
	args, err := json.Marshal(t)
	if err != nil {
		return "", err
	}
	in := &common.SubmitRequest{Type: t.Type(), Args: args}

	addr := c.addr(common.API_TASKS)
	var out common.SubmitResponse
	return out.TaskID, genericPost(ctx, addr, in, &out)
}

func (c *Client) Await(ctx context.Context, taskID string, timeout time.Duration) (*structs.TaskExecutionDetails, error) {
	addr := c.addr(strings.Replace(common.API_AWAIT, "{id}", taskID, 1))
	values := addr.Query()
	values.Set("timeout", timeout.String())
	addr.RawQuery = values.Encode()

	var out structs.TaskExecutionDetails
	err := genericGet(ctx, addr, &out)
	if err != nil && strings.Contains(err.Error(), se.ErrReachedTimeout.Error()) {
		return nil, fmt.Errorf("%w awaiting task %s", se.ErrReachedTimeout, taskID)
	}
	return &out, err
}

func (c *Client) Cancel(ctx context.Context, taskID string) error {
	addr := c.addr(common.API_CANCEL)
	var out structs.TaskExecutionDetails
	return genericPatch(ctx, addr, &common.CancelRequest{TaskID: taskID}, &out)
}

func (c *Client) Details(ctx context.Context, taskID string) (*structs.TaskExecutionDetails, error) {
	addr := c.addr(strings.Replace(common.API_TASK, "{id}", taskID, 1))
	var out structs.TaskExecutionDetails
	return &out, genericGet(ctx, addr, &out)
}

func (c *Client) List(ctx context.Context, q *structs.Query) ([]*structs.TaskExecutionDetails, error) {
	addr := c.addr(common.API_TASKS)
	setQueryString(addr, q)
	var out []*structs.TaskExecutionDetails
	return out, genericGet(ctx, addr, &out)
}

func (c *Client) Close() error {
	return nil
}

func (c *Client) addr(path string) *url.URL {
	return &url.URL{Scheme: c.url.Scheme, Host: c.url.Host, Path: path}
}
