// Package models declares the blog tables.
package models

import (
	"time"

	"github.com/dmitrymomot/awesome/pkg/id"
	"github.com/dmitrymomot/awesome/pkg/orm"
)

// Models holds the table mappings for one SQL dialect.
type Models struct {
	Users    *orm.Model
	Blogs    *orm.Model
	Comments *orm.Model
}

// New defines the blog models for dialect d.
func New(d orm.Dialect) (*Models, error) {
	users, err := orm.DefineWith(d, "users",
		orm.String("id", orm.PrimaryKey(), orm.Default(id.Next), orm.DDL("varchar(50)")),
		orm.String("email", orm.DDL("varchar(50)")),
		orm.String("passwd", orm.DDL("varchar(64)")),
		orm.Boolean("admin"),
		orm.String("name", orm.DDL("varchar(50)")),
		orm.String("image", orm.DDL("varchar(500)"), orm.Default("")),
		orm.Float("created_at", orm.Default(Now)),
	)
	if err != nil {
		return nil, err
	}

	blogs, err := orm.DefineWith(d, "blogs",
		orm.String("id", orm.PrimaryKey(), orm.Default(id.Next), orm.DDL("varchar(50)")),
		orm.String("user_id", orm.DDL("varchar(50)")),
		orm.String("user_name", orm.DDL("varchar(50)")),
		orm.String("user_image", orm.DDL("varchar(500)"), orm.Default("")),
		orm.String("name", orm.DDL("varchar(50)")),
		orm.String("summary", orm.DDL("varchar(200)")),
		orm.Text("content"),
		orm.Float("created_at", orm.Default(Now)),
	)
	if err != nil {
		return nil, err
	}

	comments, err := orm.DefineWith(d, "comments",
		orm.String("id", orm.PrimaryKey(), orm.Default(id.Next), orm.DDL("varchar(50)")),
		orm.String("blog_id", orm.DDL("varchar(50)")),
		orm.String("user_id", orm.DDL("varchar(50)")),
		orm.String("user_name", orm.DDL("varchar(50)")),
		orm.String("user_image", orm.DDL("varchar(500)"), orm.Default("")),
		orm.Text("content"),
		orm.Float("created_at", orm.Default(Now)),
	)
	if err != nil {
		return nil, err
	}

	return &Models{Users: users, Blogs: blogs, Comments: comments}, nil
}

// Now returns the current unix time in seconds with fractional part.
func Now() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}

// Schema returns the create table statements for all models.
func (m *Models) Schema() []string {
	return []string{
		m.Users.CreateTableSQL(),
		m.Blogs.CreateTableSQL(),
		m.Comments.CreateTableSQL(),
	}
}
