package mapping

import "strings"

// Role identifies a canonical column in the normalized schema.
type Role int

const (
	// RoleEnglish is the English game name column.
	RoleEnglish Role = iota
	// RoleChinese is the Chinese game name column.
	RoleChinese
	// RoleID is the opaque source identifier column.
	RoleID
)

// roleAliases maps each role to its accepted header spellings, covering
// the normalized names, the structured-endpoint keys, and the site's
// native column labels. Matching is case-insensitive and trimmed; the
// first alias that hits a header wins.
var roleAliases = map[Role][]string{
	RoleEnglish: {"english_name", "game_name", "英文名", "英文名称"},
	RoleChinese: {"chinese_name", "ch_name", "中文名", "中文名称"},
	RoleID:      {"id", "game_id", "umd_id"},
}

// Roles holds the resolved zero-based column index per role. An index of
// -1 means the table has no column for that role; downstream treats the
// role as empty for every row.
type Roles struct {
	English int
	Chinese int
	ID      int
}

// ResolveRoles maps observed headers onto canonical roles by alias
// lookup. It is a pure function of the header list and never fails:
// unmatched roles simply resolve to -1.
func ResolveRoles(headers []string) Roles {
	lowered := make([]string, len(headers))
	for i, h := range headers {
		lowered[i] = strings.ToLower(strings.TrimSpace(h))
	}

	return Roles{
		English: findAlias(lowered, roleAliases[RoleEnglish]),
		Chinese: findAlias(lowered, roleAliases[RoleChinese]),
		ID:      findAlias(lowered, roleAliases[RoleID]),
	}
}

// IsRoleColumn reports whether column i resolved to any canonical role.
// Columns that did not become entries in the record's extras map.
func (r Roles) IsRoleColumn(i int) bool {
	return i == r.English || i == r.Chinese || i == r.ID
}

func findAlias(lowered []string, aliases []string) int {
	for _, alias := range aliases {
		a := strings.ToLower(strings.TrimSpace(alias))
		for i, h := range lowered {
			if h == a {
				return i
			}
		}
	}
	return -1
}
