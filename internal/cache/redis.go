package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/qs-lzh/cinema-booking/internal/model"
)

var ctx = context.Background()

// RedisCache is a read-through cache in front of the movie catalog and
// showtime lookups. Every write path invalidates; booking correctness
// never depends on cache contents.
type RedisCache struct {
	Client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(url string) (*RedisCache, error) {
	client := redis.NewClient(
		&redis.Options{
			Addr:     url,
			Password: "",
			DB:       0,
		},
	)
	return &RedisCache{Client: client, ttl: DefaultTTL}, nil
}

func (r *RedisCache) Set(key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, key, data, expiration).Err()
}

func (r *RedisCache) Get(key string, dest any) error {
	data, err := r.Client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

/*
* movie catalog
 */

// GetMovies returns the cached catalog, or (nil, nil) on a cache miss.
func (r *RedisCache) GetMovies() ([]model.Movie, error) {
	var movies []model.Movie
	if err := r.Get(MoviesCatalogKey, &movies); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return movies, nil
}

func (r *RedisCache) SetMovies(movies []model.Movie) error {
	return r.Set(MoviesCatalogKey, movies, r.ttl)
}

func (r *RedisCache) InvalidateMovies() error {
	return r.Client.Del(ctx, MoviesCatalogKey).Err()
}

/*
* showtime lookups
 */

// GetShowtime returns the cached showtime, or (nil, nil) on a cache miss.
func (r *RedisCache) GetShowtime(showtimeID uint) (*model.Showtime, error) {
	var showtime model.Showtime
	if err := r.Get(MakeShowtimeKey(showtimeID), &showtime); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return &showtime, nil
}

func (r *RedisCache) SetShowtime(showtime *model.Showtime) error {
	return r.Set(MakeShowtimeKey(showtime.ID), showtime, r.ttl)
}

func (r *RedisCache) InvalidateShowtime(showtimeID uint) error {
	return r.Client.Del(ctx, MakeShowtimeKey(showtimeID)).Err()
}
