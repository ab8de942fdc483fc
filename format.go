package loginfield

import "regexp"

// EmailPattern matches a whole value shaped like local@label.tld: a local
// part without "@" or whitespace, one or more dot terminated labels and a
// final alphabetic label of at least two characters. Case insensitive.
const EmailPattern = `(?i)\A([^@\s]+)@((?:[-a-z0-9]+\.)+[a-z]{2,})\z`

// EmailFormat is the compiled EmailPattern attached to the standard
// email identifier
var EmailFormat = regexp.MustCompile(EmailPattern)

// IsEmail reports whether value satisfies EmailFormat
func IsEmail(value string) bool {
	return EmailFormat.MatchString(value)
}
