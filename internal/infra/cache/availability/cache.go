package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/CAJINC/buy-locals-booking/internal/domain"
)

// keyPrefix префикс ключей кеша доступности; задаётся константой пакета,
// а не изменяемым полем
const keyPrefix = "availability"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Cache короткоживущий read-through кеш доступных слотов.
//
// Все варианты (service, duration) одной пары (business, date) хранятся
// полями одного Redis-хеша, поэтому инвалидация при создании или отмене
// бронирования - это один DEL, без сканирования ключей по маске.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    Logger
}

// New создает кеш доступности с фиксированным TTL
func New(client *redis.Client, ttl time.Duration, log Logger) *Cache {
	return &Cache{client: client, ttl: ttl, log: log}
}

// cacheKey ключ хеша для пары (business, date)
func cacheKey(businessID int64, date time.Time) string {
	return fmt.Sprintf("%s:%d:%s", keyPrefix, businessID, date.Format(domain.DateFormat))
}

// VariantKey поле хеша для измерения (service, duration)
func VariantKey(serviceID *int64, durationMinutes *int) string {
	service := "all"
	if serviceID != nil {
		service = strconv.FormatInt(*serviceID, 10)
	}
	duration := "default"
	if durationMinutes != nil {
		duration = strconv.Itoa(*durationMinutes)
	}
	return service + ":" + duration
}

// Get возвращает закешированные слоты для варианта или (nil, false) при
// промахе. Любая ошибка Redis логируется и трактуется как промах.
func (c *Cache) Get(ctx context.Context, businessID int64, date time.Time, variant string) ([]domain.TimeSlot, bool) {
	key := cacheKey(businessID, date)

	data, err := c.client.HGet(ctx, key, variant).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn("availability cache: get %s/%s failed, falling back to live computation: %v", key, variant, err)
		return nil, false
	}

	var slots []domain.TimeSlot
	if err := json.Unmarshal([]byte(data), &slots); err != nil {
		c.log.Warn("availability cache: corrupted entry %s/%s, treating as miss: %v", key, variant, err)
		return nil, false
	}

	return slots, true
}

// Put сохраняет рассчитанные слоты для варианта. Ошибки записи логируются
// и проглатываются: неудавшееся кеширование не должно ломать запрос.
func (c *Cache) Put(ctx context.Context, businessID int64, date time.Time, variant string, slots []domain.TimeSlot) {
	key := cacheKey(businessID, date)

	data, err := json.Marshal(slots)
	if err != nil {
		c.log.Error("availability cache: encode %s/%s: %v", key, variant, err)
		return
	}

	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key, variant, data)
	// TTL на весь хеш: обновляется при каждой записи варианта
	pipe.Expire(ctx, key, c.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warn("availability cache: put %s/%s failed: %v", key, variant, err)
	}
}

// Invalidate сбрасывает ВСЕ варианты (business, date) одним DEL.
// Вызывается синхронно в той же логической операции, что изменила
// состояние бронирований: новое бронирование влияет на слоты любой
// комбинации service/duration на эту дату.
func (c *Cache) Invalidate(ctx context.Context, businessID int64, date time.Time) {
	key := cacheKey(businessID, date)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.log.Error("availability cache: invalidate %s failed: %v", key, err)
	}
}
