package leetcode

import "go.uber.org/fx"

func Module() fx.Option {
	return fx.Module("leetcode",
		fx.Provide(
			NewRepo,
			NewCache,
			NewService,
		),
	)
}
