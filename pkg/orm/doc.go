// Package orm maps relational tables to declared models.
//
// A model is a table name plus a list of field descriptors, exactly one of
// which is the primary key. Define derives the select, insert, update and
// delete statements once; instances are plain records bound to their model.
//
//	var Users = orm.MustDefine("users",
//		orm.String("id", orm.PrimaryKey(), orm.Default(id.Next), orm.DDL("varchar(50)")),
//		orm.String("email", orm.DDL("varchar(50)")),
//		orm.Boolean("admin"),
//		orm.Float("created_at", orm.Default(now)),
//	)
//
//	conn := orm.NewDB(sqlDB, orm.WithLogger(log))
//	u := Users.New(orm.Record{"email": "a@example.com"})
//	if err := u.Save(ctx, conn); err != nil {
//		return err
//	}
//
//	users, err := Users.FindAll(ctx, conn, orm.Where("admin=?", true), orm.OrderBy("created_at desc"), orm.Limit(10))
//	found, err := Users.Find(ctx, conn, u.Value("id"))
//
// Statements use ? placeholders. Models defined with DefineWith(orm.Postgres, ...)
// quote identifiers with double quotes and rebind placeholders to $n.
//
// The package has no identity map and does not track changes: Update writes
// every field of the instance.
package orm
