// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package validation checks API request parameters with go-playground/validator.

A single validator instance is shared across requests (it caches struct
metadata). Failures are reported by json field name and converted to the
VALIDATION_ERROR response shape:

	req := validation.MoviesRequest{Category: "popular", Limit: 20}
	if verr := validation.ValidateStruct(&req); verr != nil {
	    apiErr := verr.ToAPIError()
	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
	    return
	}
*/
package validation
