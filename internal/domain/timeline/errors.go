package timeline

import "errors"

// ErrSourceUnavailable indicates one of the source fetches failed. The whole
// read fails closed: a partial feed would look like a complete audit trail.
var ErrSourceUnavailable = errors.New("timeline source unavailable")
