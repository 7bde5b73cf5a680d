package source

import (
	"context"
	"fmt"

	"github.com/RahilKothari9/supplier-analysis/pkg/core/config"
	"github.com/RahilKothari9/supplier-analysis/pkg/core/store"
)

// Open builds the source selected by cfg.Source.Kind. The returned close
// func releases the database pool when one was opened.
func Open(ctx context.Context, cfg *config.Config) (Source, func(), error) {
	noop := func() {}
	sc := cfg.Source

	switch sc.Kind {
	case config.SourceFile:
		return NewFileSource(sc.Dir), noop, nil
	case config.SourceXLSX:
		return NewXLSXSource(sc.Dir), noop, nil
	case config.SourceHTTP:
		return NewHTTPSource(sc.BaseURL,
			WithAPIKey(sc.APIKey),
			WithRateLimit(sc.RateLimit),
			WithTimeout(sc.Timeout),
		), noop, nil
	case config.SourcePostgres:
		if err := store.InitDB(ctx, cfg.Database.URL); err != nil {
			return nil, noop, err
		}
		return NewPostgresSource(store.GetPool()), store.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown source kind %q", sc.Kind)
	}
}
