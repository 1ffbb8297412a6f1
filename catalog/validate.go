package catalog

import (
	"fmt"
	"regexp"
)

// Field formats mirror what the public site already renders: dates are
// plain ISO days, times are 24h clock, DOIs follow the Crossref shape.
var (
	dateRE     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRE     = regexp.MustCompile(`^\d{2}:\d{2}$`)
	doiRE      = regexp.MustCompile(`^10\.\d{4,9}/[-._;()/:A-Za-z0-9]+$`)
	linkedinRE = regexp.MustCompile(`^(https?://)?(www\.)?linkedin\.com/(in|company)/[a-zA-Z0-9_-]+/?$`)
)

func requireFields(fields map[string]string) error {
	for name, value := range fields {
		if value == "" {
			return InvalidRecord{Reason: fmt.Sprintf("missing required field: %v", name)}
		}
	}
	return nil
}

func maxLen(name, value string, limit int) error {
	if len(value) > limit {
		return InvalidRecord{Reason: fmt.Sprintf("%v must be at most %v characters", name, limit)}
	}
	return nil
}

func validDate(name, value string) error {
	if !dateRE.MatchString(value) {
		return InvalidRecord{Reason: fmt.Sprintf("invalid %v format, use YYYY-MM-DD", name)}
	}
	return nil
}
