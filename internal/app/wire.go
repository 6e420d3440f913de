//go:build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/vidit-app/vidit/internal/conf"
	"github.com/vidit-app/vidit/internal/data"
	"github.com/vidit-app/vidit/internal/web/api"
)

func wireApp(bc *conf.Bootstrap) (*App, func(), error) {
	panic(wire.Build(data.ProviderSet, api.ProviderVersionSet, api.ProviderSet, wire.Struct(new(App), "*")))
}
