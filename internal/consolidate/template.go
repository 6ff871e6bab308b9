package consolidate

import "regexp"

// templatePattern matches $$, $name, ${name} and a lone $, in that order.
var templatePattern = regexp.MustCompile(`\$(?:\$|([_A-Za-z][_A-Za-z0-9]*)|\{([_A-Za-z][_A-Za-z0-9]*)\}|)`)

// TemplateIdentifiers returns the variable names referenced by value as
// $name or ${name}, in order of appearance. $$ is an escaped dollar sign.
func TemplateIdentifiers(value string) []string {
	var identifiers []string
	for _, match := range templatePattern.FindAllStringSubmatch(value, -1) {
		switch {
		case match[1] != "":
			identifiers = append(identifiers, match[1])
		case match[2] != "":
			identifiers = append(identifiers, match[2])
		}
	}
	return identifiers
}

// SubstituteIdentifiers replaces every $name and ${name} in value with
// replace(name) and every $$ with $. Any other $ is kept as is.
func SubstituteIdentifiers(value string, replace func(name string) string) string {
	return templatePattern.ReplaceAllStringFunc(value, func(token string) string {
		match := templatePattern.FindStringSubmatch(token)
		switch {
		case match[1] != "":
			return replace(match[1])
		case match[2] != "":
			return replace(match[2])
		case token == "$$":
			return "$"
		}
		return token
	})
}
