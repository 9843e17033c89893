package modules

// Placeholder tokens replaced verbatim during template instantiation. These
// are literal markers in template files, not patterns.
const (
	TokenMod         = "__MOD__"
	TokenName        = "__NAME__"
	TokenDescription = "__DESCRIPTION__"
	TokenBrand       = "__BRAND__"
	TokenAuthor      = "__AUTHOR__"
	TokenEmail       = "__EMAIL__"
	TokenURL         = "__URL__"
)

// Attribute is one placeholder token and its replacement value.
type Attribute struct {
	Token string
	Value string
}

// AttributeSet is the ordered token-to-value mapping baked into a module's
// generated files. It is consumed once, at instantiation time.
type AttributeSet []Attribute

// Value returns the replacement for token, if present.
func (s AttributeSet) Value(token string) (string, bool) {
	for _, a := range s {
		if a.Token == token {
			return a.Value, true
		}
	}
	return "", false
}

// ModuleInfo holds creation-time metadata for a module. Empty fields fall
// back to the defaults the generated sources expect.
type ModuleInfo struct {
	ID          string
	Name        string
	Description string
	Brand       string
	Author      string
	Email       string
	Website     string
}

// Attributes expands the info into the full substitution set. Name falls
// back to the identifier and Description to the name, matching what the
// interactive prompts offer.
func (mi ModuleInfo) Attributes() AttributeSet {
	name := mi.Name
	if name == "" {
		name = mi.ID
	}
	description := mi.Description
	if description == "" {
		description = name
	}
	return AttributeSet{
		{TokenMod, mi.ID},
		{TokenName, name},
		{TokenDescription, description},
		{TokenBrand, orDefault(mi.Brand, "YourBrand")},
		{TokenAuthor, orDefault(mi.Author, "Unknown")},
		{TokenEmail, orDefault(mi.Email, "unknown@example.com")},
		{TokenURL, orDefault(mi.Website, "https://example.com")},
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
