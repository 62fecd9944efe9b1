package broadcast

import (
	"crypto/tls"
)

// Options are options for the broadcast transport.
type Options struct {
	// URL encodes how we'll connect to the pub/sub backend.
	URL string

	// TLSConfig needed to connect (optional).
	TLSConfig *tls.Config
}
