// Reviewrec - Review Corpus Collaborative Filtering Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package engine

import "errors"

// ErrUnknownUser reports a query for a user identifier that never appeared
// in the corpus. Callers should treat it as recoverable: the model is fine,
// the request is not.
var ErrUnknownUser = errors.New("engine: unknown user")
