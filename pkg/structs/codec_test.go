package structs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ketrez/steward/pkg/errors"
)

func TestEncodeDecodeEvent(t *testing.T) {
	cases := []struct {
		Name  string
		Given Event
	}{
		{"Created", created()},
		{"Started", &Started{ID: testID, Node: "node-b", At: 150}},
		{"InfoUpdated", &InfoUpdated{ID: testID, Info: []byte(`{"n":1}`), At: 160}},
		{"CancelRequested", &CancelRequested{ID: testID, Node: "node-c", At: 170}},
		{"Completed", &Completed{ID: testID, Result: "done", At: 180}},
		{"Failed", &Failed{ID: testID, Message: "boom", At: 180}},
		{"Cancelled", &Cancelled{ID: testID, At: 180}},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			kind, payload, err := EncodeEvent(c.Given)

			assert.Nil(t, err)
			assert.Equal(t, c.Given.Kind(), kind)

			decoded, err := DecodeEvent(kind, payload)

			assert.Nil(t, err)
			assert.Equal(t, c.Given, decoded)
		})
	}
}

func TestDecodeEventUnknownKind(t *testing.T) {
	_, err := DecodeEvent("not-a-kind", []byte(`{}`))

	assert.ErrorIs(t, err, errors.ErrUnknownTaskType)
}

func TestDecodeEventBadPayload(t *testing.T) {
	_, err := DecodeEvent(KindStarted, []byte(`{`))

	assert.ErrorIs(t, err, errors.ErrInvalidTask)
}
