package repository

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike 转义LIKE通配符并转为小写
func escapeLike(s string) string {
	return likeEscaper.Replace(strings.ToLower(s))
}
