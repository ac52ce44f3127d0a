// Command gen writes gorm/gen query helpers for every persistence model.
// The repositories use plain GORM chains; the generated package is for ad hoc tooling and is not committed.
package main

import (
	"flag"

	"tastebud/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	out := flag.String("out", "./internal/infra/persistence/query", "output directory")
	flag.Parse()

	g := gen.NewGenerator(gen.Config{
		OutPath:       *out,
		Mode:          gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable: true,
	})
	g.ApplyBasic(model.All()...)
	g.Execute()
}
