// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package features

import (
	"strings"

	"github.com/tomtom215/marquee/internal/dataset"
)

// JoinNames decodes a JSON list of {"name": ...} objects and joins the
// non-empty names with single spaces. An empty cell yields "".
func JoinNames(raw string) (string, error) {
	names, err := dataset.ParseNameList(raw)
	if err != nil {
		return "", err
	}
	return strings.Join(names, " "), nil
}

// Information assembles the text describing one movie:
// genres, keywords, overview, companies and countries separated by spaces.
func Information(genres, keywords, overview, companies, countries string) string {
	return genres + " " + keywords + " " + overview + " " + companies + " " + countries
}

// CleanText lowercases s and maps every character outside a-z and 0-9 to a
// space. Whitespace runs collapse to one space and the ends are trimmed.
func CleanText(s string) string {
	lowered := strings.ToLower(s)
	mapped := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return ' '
	}, lowered)
	return strings.Join(strings.Fields(mapped), " ")
}
