package derive

import "strings"

// apiCategories groups imported API names by behavioural intent. A name
// belongs to a category when it contains any of the category's keywords,
// compared case-insensitively; one name may fall into several categories.
// The table is fixed configuration, built once at startup.
var apiCategories = map[string][]string{
	"network":  {"socket", "connect", "send", "recv", "bind", "listen", "accept", "inet", "http", "ftp"},
	"file":     {"file", "read", "write", "create", "delete", "move", "copy", "find"},
	"registry": {"reg", "registry", "hkey"},
	"process":  {"process", "thread", "virtual", "memory", "alloc", "free"},
	"crypto":   {"crypt", "decrypt", "encrypt", "hash", "rc4", "aes", "rsa"},
	"ui":       {"window", "dialog", "gui", "menu", "button", "display"},
}

// categoryRatioKey returns the derived feature name for an API category.
func categoryRatioKey(category string) string {
	return "derived_" + category + "ApisRatio"
}

// containsAnyKeyword reports whether the (already lowercased) name
// contains at least one of the keywords.
func containsAnyKeyword(name string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(name, keyword) {
			return true
		}
	}
	return false
}
