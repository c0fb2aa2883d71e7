package podcasts

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	podcastsvc "github.com/killallgit/podcast-gateway/internal/services/podcasts"
	"github.com/killallgit/podcast-gateway/pkg/errors"
)

var integerPattern = regexp.MustCompile(`^[-+]?[0-9]+$`)

// parseQuery validates the list query string. Every rejected parameter is
// reported; no defaults are applied to invalid values. Stricter than a
// per-element check: a repeated parameter, or an integer outside the int
// range, is rejected as a whole.
func parseQuery(query url.Values) (podcastsvc.PageRequest, *errors.AppError) {
	var (
		req    podcastsvc.PageRequest
		fields []errors.FieldError
	)

	if values, ok := query["search"]; ok {
		if len(values) != 1 {
			fields = append(fields, errors.InvalidQueryField("search", strings.Join(values, ",")))
		} else {
			req.Search = strings.TrimSpace(values[0])
		}
	}

	if values, ok := query["page"]; ok {
		page, valid := parseBoundedInt(values, 1, 0)
		if !valid {
			fields = append(fields, errors.InvalidQueryField("page", strings.Join(values, ",")))
		}
		req.Page = page
	}

	if values, ok := query["limit"]; ok {
		limit, valid := parseBoundedInt(values, 1, podcastsvc.MaxLimit)
		if !valid {
			fields = append(fields, errors.InvalidQueryField("limit", strings.Join(values, ",")))
		}
		req.Limit = limit
	}

	if len(fields) > 0 {
		return podcastsvc.PageRequest{}, errors.ValidationError(fields...)
	}
	return req, nil
}

// parseBoundedInt accepts exactly one decimal integer in [min, max]. A max of
// zero means unbounded.
func parseBoundedInt(values []string, min, max int) (int, bool) {
	if len(values) != 1 || !integerPattern.MatchString(values[0]) {
		return 0, false
	}
	n, err := strconv.Atoi(values[0])
	if err != nil || n < min || (max > 0 && n > max) {
		return 0, false
	}
	return n, true
}
