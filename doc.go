// Package sqlmapper executes SQL statements, named or inline, and coerces
// every result row into a caller-chosen shape.
//
// A Mapper pairs a Connection with a registry.Registry of named statements:
//
//	reg := registry.New()
//	reg.Register("foos", "SELECT id, name FROM foos WHERE id > ?", shape.ObjectOf[Foo]())
//
//	m := sqlmapper.New(database.NewExecutor(db, dialect.NewSQLiteDialect()), reg)
//	foos, err := sqlmapper.FetchAs[Foo](ctx, m, sqlmapper.Request{
//	    Query:  sqlmapper.Named("foos"),
//	    Params: 10,
//	})
//
// The shape of a fetch is, in order of precedence, the Request's Shape, the
// Shape the named statement was registered with, and the registry default
// (shape.GeneratedStruct unless changed). Parameters are substituted into ?
// placeholders as escaped literals by the connection before execution.
package sqlmapper
