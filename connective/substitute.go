package connective

import (
	"strconv"
	"strings"
)

// Substitute takes a connective with rule names and replaces each rule
// name with its result.
//
//	input:  [myRule] && ([yourRule] || [herRule])
//	output: true && (false || true)
//
// Everything outside the square brackets is copied unchanged. If a name is
// missing from results, Substitute returns an *UnknownNameError.
func Substitute(results map[string]bool, connective string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(connective))

	rest := connective
	for {
		open := strings.IndexByte(rest, '[')
		if open < 0 {
			break
		}
		end := strings.IndexByte(rest[open+1:], ']')
		if end < 0 {
			break
		}
		name := rest[open+1 : open+1+end]
		res, ok := results[name]
		if !ok {
			return "", &UnknownNameError{Name: name}
		}
		sb.WriteString(rest[:open])
		sb.WriteString(strconv.FormatBool(res))
		rest = rest[open+1+end+1:]
	}
	sb.WriteString(rest)
	return sb.String(), nil
}

// Names returns the rule names referenced in the connective, in order of
// first appearance. Each name is listed once.
func Names(connective string) []string {
	var names []string
	seen := map[string]bool{}

	rest := connective
	for {
		open := strings.IndexByte(rest, '[')
		if open < 0 {
			return names
		}
		end := strings.IndexByte(rest[open+1:], ']')
		if end < 0 {
			return names
		}
		name := rest[open+1 : open+1+end]
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		rest = rest[open+1+end+1:]
	}
}
