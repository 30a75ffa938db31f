// Package parse holds the pure field parsers for the semi-structured
// text cagematch puts in its profile and listing tables. Every parser
// fails soft: unparseable input yields a nil result, never an error.
package parse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	heightRe      = regexp.MustCompile(`\((\d+)\s*cm\)`)
	weightRe      = regexp.MustCompile(`\((\d+)\s*kg\)`)
	firstIntRe    = regexp.MustCompile(`\d+`)
	promotionIDRe = regexp.MustCompile(`id=8&nr=(\d+)`)
	wrestlerIDRe  = regexp.MustCompile(`id=2&nr=(\d+)`)
)

// Height extracts the metric figure from strings like `6'2" (188 cm)`.
func Height(s string) *int {
	return matchedInt(heightRe, s)
}

// Weight extracts the metric figure from strings like `245 lbs (111 kg)`.
func Weight(s string) *int {
	return matchedInt(weightRe, s)
}

// YearsActive takes the first integer token from an experience
// description like "23 years".
func YearsActive(s string) *int {
	if m := firstIntRe.FindString(s); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return &n
		}
	}
	return nil
}

// Age reads the leading number of an age value like "58 years".
func Age(s string) *int {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	if n, err := strconv.Atoi(fields[0]); err == nil {
		return &n
	}
	return nil
}

// dateFormats are tried most-specific first so a full date is never
// misread as a bare year.
var dateFormats = []string{"02.01.2006", "01.2006", "2006"}

// Date parses cagematch date strings, which come as DD.MM.YYYY, MM.YYYY
// or a bare year.
func Date(s string) *time.Time {
	s = strings.TrimSpace(s)
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return &t
		}
	}
	return nil
}

// Country takes the segment after the last comma of a "City, Country"
// location string. A string without a comma is returned as-is.
func Country(location string) string {
	if idx := strings.LastIndex(location, ","); idx >= 0 {
		return strings.TrimSpace(location[idx+1:])
	}
	return strings.TrimSpace(location)
}

// FoundedYears is the result of parsing a founding-year range like
// "1990-2005" or "1990-". A missing end year means the promotion is
// still active.
type FoundedYears struct {
	Founded     *int
	Disbanded   *int
	IsActive    bool
	YearsActive *int
}

// FoundedRange parses a founding-year range, normalizing the en-dash
// the site uses to a plain hyphen first.
func FoundedRange(s string) FoundedYears {
	s = strings.TrimSpace(strings.ReplaceAll(s, "–", "-"))
	parts := strings.Split(s, "-")

	out := FoundedYears{}
	if n, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil {
		out.Founded = &n
	}

	if len(parts) == 1 || strings.TrimSpace(parts[1]) == "" {
		out.IsActive = true
	} else if n, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
		out.Disbanded = &n
	} else {
		out.IsActive = true
	}

	switch {
	case out.IsActive && out.Founded != nil:
		years := time.Now().Year() - *out.Founded
		out.YearsActive = &years
	case out.Founded != nil && out.Disbanded != nil:
		years := *out.Disbanded - *out.Founded
		out.YearsActive = &years
	}
	return out
}

// PromotionID pulls the numeric id out of a promotion profile href
// (?id=8&nr=N).
func PromotionID(href string) *int64 {
	return matchedID(promotionIDRe, href)
}

// WrestlerID pulls the numeric id out of a wrestler profile href
// (?id=2&nr=N).
func WrestlerID(href string) *int64 {
	return matchedID(wrestlerIDRe, href)
}

func matchedInt(re *regexp.Regexp, s string) *int {
	if m := re.FindStringSubmatch(s); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return &n
		}
	}
	return nil
}

func matchedID(re *regexp.Regexp, s string) *int64 {
	if m := re.FindStringSubmatch(s); m != nil {
		if n, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			return &n
		}
	}
	return nil
}
