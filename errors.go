package arbor

import "github.com/pkg/errors"

// ErrUnknownNode is returned by the import, dump and script helpers when a
// referenced node does not exist. The core graph operations report unknown
// IDs through their bool results instead.
var ErrUnknownNode = errors.New("arbor: unknown node")
