package repository

import (
	sq "github.com/Masterminds/squirrel"
)

// DistinctTagNames 重複を除いたタグ名を最初に現れた順で返す
func DistinctTagNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// allTagsMatchQuery 指定されたタグをすべて持つ作品IDを返すサブクエリを組み立てる。
// names は重複除去済みであること。HAVING の件数はリクエストされた異なるタグ名の数と一致させる
func allTagsMatchQuery(names []string) (string, []interface{}, error) {
	return sq.Select("work_tags.work_id").
		From("work_tags").
		Join("tags ON tags.id = work_tags.tag_id").
		Where(sq.Eq{"tags.name": names}).
		GroupBy("work_tags.work_id").
		Having("COUNT(DISTINCT tags.name) = ?", len(names)).
		ToSql()
}
