package urlutil

import "regexp"

// Redacted replaces secret query values in logged or printed text.
const Redacted = "REDACTED"

var secretParam = regexp.MustCompile(`([?&])(key)=[^&\s"']*`)

// RedactSecrets masks the value of every "key" query parameter found in s.
// s may be a bare URL or free text that embeds one, such as an error message.
func RedactSecrets(s string) string {
	return secretParam.ReplaceAllString(s, "${1}${2}="+Redacted)
}
