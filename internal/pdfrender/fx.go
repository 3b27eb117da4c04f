package pdfrender

import "go.uber.org/fx"

var Module = fx.Module("pdfrender",
	fx.Provide(New),
)
