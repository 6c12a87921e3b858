package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

const (
	keyAllProducts = "products:all"
	defaultTTL     = 5 * time.Minute

	// fillHold tras una invalidación no se aceptan rellenos de la clave durante este tiempo.
	// Una lectura que leyó la BD antes del commit y tarda más que fillHold en escribir
	// todavía puede dejar el valor viejo hasta que venza el ttl.
	fillHold = 5 * time.Second
)

// setUnlessHeld escribe KEYS[1] solo si no existe la marca KEYS[2].
var setUnlessHeld = redis.NewScript(`
if redis.call('EXISTS', KEYS[2]) == 1 then
	return 0
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[2])
return 1
`)

func holdKey(key string) string { return key + ":hold" }

var (
	_ repository.ProductRepository = (*CachedProductRepository)(nil)
	_ inventory.CacheInvalidator   = (*CachedProductRepository)(nil)
)

func productKey(id int64) string { return fmt.Sprintf("product:%d", id) }

// CachedProductRepository decora un ProductRepository cacheando GetByID y GetAll.
// Cualquier error de Redis se registra y se continúa contra la base de datos.
type CachedProductRepository struct {
	repo  repository.ProductRepository
	redis *redis.Client
	ttl   time.Duration
	log   zerolog.Logger
}

// NewCachedProductRepository construye el decorador. ttl <= 0 usa 5 minutos.
func NewCachedProductRepository(repo repository.ProductRepository, rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *CachedProductRepository {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &CachedProductRepository{repo: repo, redis: rdb, ttl: ttl, log: log.With().Str("component", "product_cache").Logger()}
}

func (c *CachedProductRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	key := productKey(id)
	var cached entity.Product
	if c.get(ctx, key, &cached) {
		return &cached, nil
	}

	product, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, product)
	return product, nil
}

func (c *CachedProductRepository) GetAll(ctx context.Context) ([]*entity.Product, error) {
	var cached []*entity.Product
	if c.get(ctx, keyAllProducts, &cached) {
		return cached, nil
	}

	list, err := c.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, keyAllProducts, list)
	return list, nil
}

// InvalidateProduct borra la entrada del producto y el listado completo, y bloquea
// su relleno durante fillHold para que una lectura concurrente con la escritura no
// vuelva a cachear la fila anterior.
func (c *CachedProductRepository) InvalidateProduct(ctx context.Context, id int64) {
	key := productKey(id)
	_, err := c.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, holdKey(key), 1, fillHold)
		pipe.Set(ctx, holdKey(keyAllProducts), 1, fillHold)
		pipe.Del(ctx, key, keyAllProducts)
		return nil
	})
	if err != nil {
		c.log.Warn().Err(err).Int64("product_id", id).Msg("no se pudo invalidar la caché")
	}
}

// ─── Sin caché: delegan en el repositorio real ───────────────────────────────

func (c *CachedProductRepository) Create(ctx context.Context, p *entity.Product) error {
	if err := c.repo.Create(ctx, p); err != nil {
		return err
	}
	c.InvalidateProduct(ctx, p.ID)
	return nil
}

func (c *CachedProductRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return c.repo.GetByIDForUpdate(ctx, id)
}

func (c *CachedProductRepository) Search(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	return c.repo.Search(ctx, f)
}

func (c *CachedProductRepository) GetExpiring(ctx context.Context, from, to time.Time) ([]*entity.Product, error) {
	return c.repo.GetExpiring(ctx, from, to)
}

func (c *CachedProductRepository) Update(ctx context.Context, p *entity.Product) error {
	if err := c.repo.Update(ctx, p); err != nil {
		return err
	}
	c.InvalidateProduct(ctx, p.ID)
	return nil
}

func (c *CachedProductRepository) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	if err := c.repo.UpdateQuantity(ctx, id, quantity); err != nil {
		return err
	}
	c.InvalidateProduct(ctx, id)
	return nil
}

func (c *CachedProductRepository) SoftDelete(ctx context.Context, id int64) error {
	if err := c.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	c.InvalidateProduct(ctx, id)
	return nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (c *CachedProductRepository) get(ctx context.Context, key string, dst any) bool {
	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if err := json.Unmarshal(data, dst); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("entrada de caché corrupta, se consulta la BD")
			return false
		}
		return true
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn().Err(err).Str("key", key).Msg("error de redis, se consulta la BD")
	}
	return false
}

func (c *CachedProductRepository) set(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("no se pudo serializar para caché")
		return
	}
	keys := []string{key, holdKey(key)}
	if err := setUnlessHeld.Run(ctx, c.redis, keys, data, c.ttl.Milliseconds()).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("no se pudo escribir en caché")
	}
}
