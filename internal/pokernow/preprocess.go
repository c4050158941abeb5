package pokernow

import (
	"regexp"
	"strings"
)

var quotedPlayerRe = regexp.MustCompile(`"(.*?@.*?)"`)

// NormalizeIdentity rewrites a quoted "name @ id" token so the name part has
// no whitespace or quote characters. Older logs are inconsistent about
// spacing inside names, which breaks exact key lookups later on.
func NormalizeIdentity(token string) string {
	name, id, ok := SplitKey(token)
	if !ok {
		return token
	}
	name = strings.NewReplacer(" ", "", `"`, "").Replace(name)
	return name + " @ " + id
}

// Preprocess normalizes every player identity embedded in the rows. It
// returns new rows and leaves the input untouched.
func Preprocess(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, row := range rows {
		out[i] = row
		out[i].Text = quotedPlayerRe.ReplaceAllStringFunc(row.Text, func(m string) string {
			inner := m[1 : len(m)-1]
			return `"` + NormalizeIdentity(inner) + `"`
		})
	}
	return out
}
