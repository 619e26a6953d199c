// Package ignore evaluates walk-root-relative paths against an ordered set of
// ignore rules with gitignore-style precedence.
package ignore

import (
	"path"
	"strings"
)

const (
	negationPrefix       = "!"
	directorySuffix      = "/"
	pathSegmentSeparator = "/"
	commentPrefix        = "#"
	hiddenNamePrefix     = "."
)

// ruleKind enumerates the supported rule variants. Modeling each pattern as an
// explicit tagged variant keeps evaluation in a single matcher function
// instead of ad hoc string probing at match time.
type ruleKind int

const (
	// ruleLiteral matches a name or relative path exactly.
	ruleLiteral ruleKind = iota
	// ruleGlob matches a name or relative path with path.Match semantics.
	ruleGlob
	// ruleDirectory matches directories only (pattern carried a trailing slash).
	ruleDirectory
	// ruleHiddenDirectory matches any directory whose base name starts with a dot.
	ruleHiddenDirectory
)

// rule is one parsed ignore pattern.
type rule struct {
	kind     ruleKind
	pattern  string
	anchored bool
	negated  bool
}

// Matcher holds an immutable ordered rule list. Rules are evaluated in
// insertion order and the last matching rule decides, so a later negation
// pattern re-includes a path that an earlier rule excluded.
type Matcher struct {
	rules []rule
}

// NewMatcher compiles the provided pattern lines into a Matcher. Comment lines
// and blank lines are skipped. When suppressHiddenDirectories is true, a
// hidden-directory rule is inserted ahead of all user rules; because later
// rules win, a user negation pattern can re-include a specific hidden
// directory. Pattern compilation never fails: a glob rejected by path.Match is
// degraded to a literal substring rule at evaluation time.
func NewMatcher(patternLines []string, suppressHiddenDirectories bool) *Matcher {
	var rules []rule
	if suppressHiddenDirectories {
		rules = append(rules, rule{kind: ruleHiddenDirectory})
	}
	for _, patternLine := range patternLines {
		parsedRule, usable := parsePatternLine(patternLine)
		if usable {
			rules = append(rules, parsedRule)
		}
	}
	return &Matcher{rules: rules}
}

// parsePatternLine classifies a single pattern line into a rule.
// The second return value is false for blank lines and comments.
func parsePatternLine(patternLine string) (rule, bool) {
	trimmedLine := strings.TrimSpace(patternLine)
	if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
		return rule{}, false
	}

	parsedRule := rule{}
	if strings.HasPrefix(trimmedLine, negationPrefix) {
		parsedRule.negated = true
		trimmedLine = strings.TrimPrefix(trimmedLine, negationPrefix)
		if trimmedLine == "" {
			return rule{}, false
		}
	}

	trimmedLine = strings.ReplaceAll(trimmedLine, "\\", pathSegmentSeparator)

	if strings.HasSuffix(trimmedLine, directorySuffix) {
		parsedRule.kind = ruleDirectory
		trimmedLine = strings.TrimSuffix(trimmedLine, directorySuffix)
	} else if strings.ContainsAny(trimmedLine, "*?[") {
		parsedRule.kind = ruleGlob
	} else {
		parsedRule.kind = ruleLiteral
	}

	parsedRule.anchored = strings.Contains(trimmedLine, pathSegmentSeparator)
	parsedRule.pattern = trimmedLine
	return parsedRule, true
}

// Ignores reports whether the entry at relativePath should be excluded.
// relativePath must be relative to the walk root and forward-slash separated.
func (matcher *Matcher) Ignores(relativePath string, isDirectory bool) bool {
	normalizedPath := strings.TrimPrefix(strings.ReplaceAll(relativePath, "\\", pathSegmentSeparator), "./")
	baseName := path.Base(normalizedPath)

	ignored := false
	for _, currentRule := range matcher.rules {
		if matchRule(currentRule, normalizedPath, baseName, isDirectory) {
			ignored = !currentRule.negated
		}
	}
	return ignored
}

// matchRule evaluates one rule against a path. Anchored rules (patterns
// containing a slash) are matched against the full relative path; all other
// rules are matched against the base name, so they apply at any depth.
func matchRule(currentRule rule, normalizedPath string, baseName string, isDirectory bool) bool {
	switch currentRule.kind {
	case ruleHiddenDirectory:
		return isDirectory && strings.HasPrefix(baseName, hiddenNamePrefix) && baseName != "." && baseName != ".."
	case ruleDirectory:
		if !isDirectory {
			return false
		}
		return matchTarget(currentRule, normalizedPath, baseName)
	case ruleGlob, ruleLiteral:
		return matchTarget(currentRule, normalizedPath, baseName)
	}
	return false
}

func matchTarget(currentRule rule, normalizedPath string, baseName string) bool {
	candidate := baseName
	if currentRule.anchored {
		candidate = normalizedPath
	}
	literalPattern := currentRule.kind == ruleLiteral ||
		(currentRule.kind == ruleDirectory && !strings.ContainsAny(currentRule.pattern, "*?["))
	if literalPattern {
		return candidate == currentRule.pattern
	}
	matched, matchError := path.Match(currentRule.pattern, candidate)
	if matchError != nil {
		// Malformed globs degrade to literal substrings, never to a failure.
		return strings.Contains(candidate, currentRule.pattern)
	}
	return matched
}
