package identity

import "errors"

var ErrSessionNotCreated = errors.New("identity.session_not_created")
