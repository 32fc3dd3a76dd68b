package vanilla

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/flosch/pongo2/v6"
)

// templateFilters are the wizard specific filters the bundled templates use.
func templateFilters() map[string]pongo2.FilterFunction {
	return map[string]pongo2.FilterFunction{
		"ideanumber": filterIdeaNumber,
		"charcount":  filterCharCount,
	}
}

// filterIdeaNumber renders 482 (482.0 after the JSON round trip) as "#482".
func filterIdeaNumber(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsValue(""), nil
	}
	if in.IsNumber() {
		return pongo2.AsValue(fmt.Sprintf("#%d", in.Integer())), nil
	}
	s := strings.TrimSpace(in.String())
	if s == "" || strings.HasPrefix(s, "#") {
		return pongo2.AsValue(s), nil
	}
	return pongo2.AsValue("#" + s), nil
}

// filterCharCount counts characters, not bytes, matching the length limits.
func filterCharCount(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(utf8.RuneCountInString(in.String())), nil
}
