// Package classify decides whether a people entry names a person.
//
// The uncurated wiki's people section mixes genuine person pages with
// MoinMoin leftovers: project pages, sprint notes, SIG material. Curated
// exclusion sets catch the known offenders; shape heuristics handle the
// rest. Every key gets a verdict, and anything not recognizably a person
// is treated as non-person content.
package classify

import (
	"regexp"
	"strings"
)

var (
	// Spelled-out names: "Guido van Rossum", "Anne-Marie Smith".
	quotedName = regexp.MustCompile(`^[A-Z][a-z]+(?:[-'][A-Za-z]+)* [A-Z][a-z]+.*$`)

	// Camel shape: two or more capitalized runs, no separators.
	camelShape = regexp.MustCompile(`^(?:[A-Z][a-z]*){2,}$`)

	// A name word inside a camel key: a capital followed by lowercase.
	camelWord = regexp.MustCompile(`[A-Z][a-z]+`)

	capital = regexp.MustCompile(`[A-Z]`)

	// MoinMoin-era usernames: lowercase, optionally with digits and
	// dots, e.g. "barry" or "tim.peters".
	userName = regexp.MustCompile(`^[a-z][a-z0-9._]+$`)
)

// maxUsernameLen bounds the username heuristic; longer lowercase strings
// are almost always slugs, not login names.
const maxUsernameLen = 25

// Classifier decides person versus non-person for people entry keys.
type Classifier struct {
	dirs  map[string]bool
	exact map[string]bool
	camel map[string]bool
	aux   map[string]map[string]string
}

// New builds a classifier from the embedded curated data.
func New() (*Classifier, error) {
	data, err := loadCurated()
	if err != nil {
		return nil, err
	}
	return &Classifier{
		dirs:  toSet(data.NonPersonDirs),
		exact: toSet(data.NonPersonExact),
		camel: toSet(data.NonPersonCamelcase),
		aux:   data.AuxRoutes,
	}, nil
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

// IsPerson reports whether key names a person. The curated exclusion sets
// are consulted before any shape heuristic.
func (c *Classifier) IsPerson(key string) bool {
	if c.dirs[key] || c.exact[key] || c.camel[key] {
		return false
	}
	return looksLikePerson(key)
}

// AuxRoute returns the destination section for a known non-person entry
// in an otherwise-trusted wiki.
func (c *Classifier) AuxRoute(wiki, key string) (string, bool) {
	dest, ok := c.aux[wiki][key]
	return dest, ok
}

// looksLikePerson applies the shape heuristics in order: spelled-out
// name, camel-cased name, lowercase username, dotted handle.
func looksLikePerson(key string) bool {
	if quotedName.MatchString(key) {
		return true
	}
	if camelShape.MatchString(key) {
		// Exactly two capitals is the classic FirstLast shape. Longer
		// keys need at least two full name words, so JohnVanRossum
		// qualifies but PyPI does not.
		if len(capital.FindAllString(key, -1)) == 2 {
			return true
		}
		return len(camelWord.FindAllString(key, -1)) >= 2
	}
	if userName.MatchString(key) && len(key) < maxUsernameLen {
		return true
	}
	if strings.Contains(key, ".") && !strings.HasPrefix(key, "Example") && !strings.HasPrefix(key, "PSF") {
		return true
	}
	return false
}
