// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides fault-tolerant conversions for query parameters.

Do not use this package where a malformed value must be reported to the caller;
parse explicitly instead.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToIntD converts s to an int, returning def when s is empty or not a number.
func ToIntD(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}

	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
