package tabular

import "github.com/rickb777/date/v2"

// ArticlesTable is the smoke-test table: an integer key assigned on insert
// and a required publication date.
var ArticlesTable = Table{
	Name: "articles",
	Columns: []Column{
		{Name: "id", Type: Integer, PrimaryKey: true},
		{Name: "date", Type: Text, NotNull: true},
	},
}

// ArticleRow is an articles row dated d, stored as an ISO 8601 date.
func ArticleRow(d date.Date) Row {
	return Row{"date": d.String()}
}
