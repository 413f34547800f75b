package events

import (
	"github.com/atomicstack/popular-movies/internal/logging"
	"github.com/atomicstack/popular-movies/internal/tmdb"
)

type CatalogTracer struct{}

type DetailTracer struct{}

type ConnectivityTracer struct{}

var (
	Catalog      = CatalogTracer{}
	Detail       = DetailTracer{}
	Connectivity = ConnectivityTracer{}
)

func (CatalogTracer) LoadStart(sort string, generation uint64) {
	logging.Trace("catalog.load.start", map[string]interface{}{"sort": sort, "generation": generation})
}

func (CatalogTracer) LoadSuccess(sort string, generation uint64, count int) {
	logging.Trace("catalog.load.success", map[string]interface{}{"sort": sort, "generation": generation, "count": count})
}

// LoadError always reaches the log; the error view does not say why a load
// failed, so this entry is the only record of the kind.
func (CatalogTracer) LoadError(sort string, generation uint64, err error) {
	if err == nil {
		return
	}
	l := logging.Logger()
	l.Error().
		Str("event", "catalog.load.error").
		Str("sort", sort).
		Uint64("generation", generation).
		Str("kind", tmdb.KindOf(err).String()).
		Err(err).
		Send()
}

func (CatalogTracer) Stale(kind string, generation, current uint64) {
	logging.Trace("catalog.stale", map[string]interface{}{"kind": kind, "generation": generation, "current": current})
}

func (DetailTracer) LoadStart(id string, generation uint64) {
	logging.Trace("detail.load.start", map[string]interface{}{"id": id, "generation": generation})
}

func (DetailTracer) LoadSuccess(id string, bytes int) {
	logging.Trace("detail.load.success", map[string]interface{}{"id": id, "bytes": bytes})
}

func (DetailTracer) LoadError(id string, err error) {
	if err == nil {
		return
	}
	l := logging.Logger()
	l.Error().
		Str("event", "detail.load.error").
		Str("id", id).
		Str("kind", tmdb.KindOf(err).String()).
		Err(err).
		Send()
}

func (ConnectivityTracer) Offline(op string) {
	logging.Trace("connectivity.offline", map[string]interface{}{"op": op})
}

func (ConnectivityTracer) Changed(online bool) {
	l := logging.Logger()
	l.Info().Str("event", "connectivity.changed").Bool("online", online).Send()
}
