package cache

import (
	"github.com/pkg/errors"

	"go.uber.org/zap"

	"max.ks1230/expense-tracker/internal/logger"

	"github.com/bradfitz/gomemcache/memcache"
)

type MemcacheClient struct {
	client *memcache.Client
}

type config interface {
	Hosts() []string
}

func NewMemcache(config config) (*MemcacheClient, error) {
	logger.Info("memcached hosts", zap.Strings("hosts", config.Hosts()))
	mc := memcache.New(config.Hosts()...)
	return &MemcacheClient{mc}, mc.Ping()
}

func formatKey(owner, period string) string {
	return owner + ":" + period
}

func (mc *MemcacheClient) CacheReport(owner, period, report string) error {
	logger.Info("cache report", zap.String("owner", owner), zap.String("period", period))
	return mc.client.Set(&memcache.Item{
		Key:   formatKey(owner, period),
		Value: []byte(report)},
	)
}

func (mc *MemcacheClient) GetReport(owner, period string) (string, error) {
	item, err := mc.client.Get(formatKey(owner, period))
	if err != nil {
		return "", err
	}
	return string(item.Value), nil
}

// InvalidateCache drops the cached reports of the owner. Called after
// every successful create or delete so summaries are never stale.
func (mc *MemcacheClient) InvalidateCache(owner string, periods []string) error {
	logger.Info("invalidate cache", zap.String("owner", owner))

	for _, period := range periods {
		err := mc.client.Delete(formatKey(owner, period))
		if err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
			return err
		}
	}
	return nil
}
