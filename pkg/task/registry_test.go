package task

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ketrez/steward/pkg/errors"
)

type unregisteredTask struct{}

func (t *unregisteredTask) Type() string { return "unregistered" }

func (t *unregisteredTask) Run(ctx context.Context) (Result, error) { return Done, nil }

func TestRegister(t *testing.T) {
	decode := func(args []byte) (Task, error) { return &NoopTask{}, nil }

	cases := []struct {
		Name      string
		Type      string
		Decode    DecodeFunc
		ExpectErr error
	}{
		{"Registers", "my-task", decode, nil},
		{"RejectsEmptyType", "", decode, errors.ErrInvalidTask},
		{"RejectsNilDecoder", "my-task", nil, errors.ErrInvalidTask},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			r := NewRegistry()

			err := r.Register(c.Type, c.Decode)

			if c.ExpectErr == nil {
				assert.Nil(t, err)
				assert.Equal(t, []string{c.Type}, r.Types())
			} else {
				assert.ErrorIs(t, err, c.ExpectErr)
			}
		})
	}
}

func TestRegisterTwice(t *testing.T) {
	r := NewRegistry()
	decode := func(args []byte) (Task, error) { return &NoopTask{}, nil }

	assert.Nil(t, r.Register("my-task", decode))
	assert.ErrorIs(t, r.Register("my-task", decode), errors.ErrInvalidTask)
}

func TestEncodeDecode(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, RegisterBuiltins(r))

	taskType, args, err := r.Encode(&SleepTask{Seconds: 3})

	assert.Nil(t, err)
	assert.Equal(t, TypeSleep, taskType)
	assert.Equal(t, []byte(`{"seconds":3}`), args)

	decoded, err := r.Decode(taskType, args)

	assert.Nil(t, err)
	assert.Equal(t, &SleepTask{Seconds: 3}, decoded)
}

func TestEncodeUnregistered(t *testing.T) {
	r := NewRegistry()

	_, _, err := r.Encode(&unregisteredTask{})

	assert.ErrorIs(t, err, errors.ErrUnknownTaskType)
}

func TestDecodeUnregistered(t *testing.T) {
	r := NewRegistry()

	_, err := r.Decode("unregistered", []byte(`{}`))

	assert.ErrorIs(t, err, errors.ErrUnknownTaskType)
}

func TestDecodeBadArgs(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Register("strict", func(args []byte) (Task, error) {
		t := &SleepTask{}
		return t, json.Unmarshal(args, t)
	}))

	_, err := r.Decode("strict", []byte(`{`))

	assert.ErrorIs(t, err, errors.ErrInvalidTask)
}
