package live

import "errors"

// ErrAborted signals the user left the editor without retrieving the model.
var ErrAborted = errors.New("live: aborted")
