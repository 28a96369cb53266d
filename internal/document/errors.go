package document

import "errors"

// ErrEmptySelection reports an export whose selection contains no entries.
// No page is drawn and no file is written.
var ErrEmptySelection = errors.New("no entries in selection")

// ErrRenderingBackendUnavailable reports that no drawing surface could be
// obtained. It is returned before any aggregation work.
var ErrRenderingBackendUnavailable = errors.New("rendering backend unavailable")
