package app

import (
	"log/slog"
	"time"

	"github.com/justinhuang159/Grubble/internal/config"
	http_init "github.com/justinhuang159/Grubble/internal/delivery/http/init"
	http_session "github.com/justinhuang159/Grubble/internal/delivery/http/session"
	http_voting "github.com/justinhuang159/Grubble/internal/delivery/http/voting"
	ws_room "github.com/justinhuang159/Grubble/internal/delivery/ws/room"
	infra_pg_init "github.com/justinhuang159/Grubble/internal/infra/postgres/init"
	infra_postgres_querycache "github.com/justinhuang159/Grubble/internal/infra/postgres/querycache"
	infra_postgres_restaurant "github.com/justinhuang159/Grubble/internal/infra/postgres/restaurant"
	infra_postgres_session "github.com/justinhuang159/Grubble/internal/infra/postgres/session"
	infra_postgres_vote "github.com/justinhuang159/Grubble/internal/infra/postgres/vote"
	infra_redis_init "github.com/justinhuang159/Grubble/internal/infra/redis/init"
	infra_redis_querycache "github.com/justinhuang159/Grubble/internal/infra/redis/querycache"
	infra_yelp "github.com/justinhuang159/Grubble/internal/infra/yelp"
	usecase_session "github.com/justinhuang159/Grubble/internal/usecase/session"
	usecase_vote "github.com/justinhuang159/Grubble/internal/usecase/vote"
)

func Go(cfg *config.Config) {
	pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)

	sessionRepository := infra_postgres_session.New(pgConn)
	restaurantRepository := infra_postgres_restaurant.New(pgConn)
	voteRepository := infra_postgres_vote.New(pgConn)

	cacheTTL := time.Duration(cfg.Cache.TTLMinutes) * time.Minute

	var queryCache usecase_session.QueryCache
	if cfg.Cache.Backend == "redis" {
		redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
		queryCache = infra_redis_querycache.New(redisConn, "yelp_query_cache", cacheTTL)
	} else {
		queryCache = infra_postgres_querycache.New(pgConn)
	}

	var source usecase_session.RestaurantSource
	if cfg.Yelp.UseMock {
		source = infra_yelp.NewSynthetic()
	} else {
		source = infra_yelp.New(cfg.Yelp)
	}

	sessionUC := usecase_session.New(sessionRepository, restaurantRepository, source, queryCache, cacheTTL)
	voteUC := usecase_vote.New(voteRepository, voteRepository, voteRepository)

	hub := ws_room.New(slog.Default())

	controllerPool := http_init.NewControllerPool(cfg.CORS.AllowedOrigins)
	controllerPool.Add(http_session.New(sessionUC, hub))
	controllerPool.Add(http_voting.New(voteUC))
	controllerPool.Add(ws_room.NewController(hub, sessionUC))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Port)
}
