package structs

import (
	"encoding/json"
	"fmt"

	"github.com/ketrez/steward/pkg/errors"
)

// EncodeEvent serializes an event for storage or transport. The kind is carried
// out-of-band (a column in the log, a field in the wire envelope) so decoding
// doesn't need reflection, just a lookup.
func EncodeEvent(e Event) (EventKind, []byte, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return "", nil, fmt.Errorf("%w failed to encode %s event: %v", errors.ErrInvalidTask, e.Kind(), err)
	}
	return e.Kind(), b, nil
}

// DecodeEvent rebuilds an event from its kind discriminator and payload.
func DecodeEvent(kind EventKind, payload []byte) (Event, error) {
	var e Event
	switch kind {
	case KindCreated:
		e = &Created{}
	case KindStarted:
		e = &Started{}
	case KindInfoUpdated:
		e = &InfoUpdated{}
	case KindCancelRequested:
		e = &CancelRequested{}
	case KindCompleted:
		e = &Completed{}
	case KindFailed:
		e = &Failed{}
	case KindCancelled:
		e = &Cancelled{}
	default:
		return nil, fmt.Errorf("%w %s is not an event kind", errors.ErrUnknownTaskType, kind)
	}
	if err := json.Unmarshal(payload, e); err != nil {
		return nil, fmt.Errorf("%w failed to decode %s event: %v", errors.ErrInvalidTask, kind, err)
	}
	return e, nil
}
