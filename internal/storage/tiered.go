package storage

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"taskVault/internal/logger"
)

// Tiered перебирает уровни по порядку: отказ уровня логируется и не
// отдаётся вызывающему, пока отвечает хотя бы один уровень. Двухуровневая
// стратегия вместо ветвления по исключениям: [долговечный, в памяти].
type Tiered struct {
	tiers []Store
}

func NewTiered(tiers ...Store) *Tiered {
	return &Tiered{tiers: tiers}
}

// Get — побеждает первый ответивший уровень. ErrNotFound одного уровня
// не останавливает перебор: значение могло осесть в резервном уровне,
// пока основной был недоступен.
func (t *Tiered) Get(ctx context.Context, collection string) ([]byte, error) {
	for _, tier := range t.tiers {
		value, err := tier.Get(ctx, collection)
		if err == nil {
			return value, nil
		}

		if !errors.Is(err, ErrNotFound) {
			logger.Warn("Storage: Уровень не отвечает на чтение",
				zap.String("collection", collection),
				zap.Error(err))
		}
	}

	return nil, ErrNotFound
}

// Put — запись уходит на первый рабочий уровень, остальные пропускаются
// до следующего отказа. Ошибка возвращается только если отказали все.
func (t *Tiered) Put(ctx context.Context, collection string, value []byte) error {
	var lastErr error

	for _, tier := range t.tiers {
		err := tier.Put(ctx, collection, value)
		if err == nil {
			return nil
		}

		logger.Warn("Storage: Уровень не принял запись, переключение на резервный",
			zap.String("collection", collection),
			zap.Error(err))
		lastErr = err
	}

	return lastErr
}

// Delete чистит коллекцию на каждом уровне. Частичный отказ оставляет
// уровни рассогласованными — принятое ограничение, не скрываем его.
func (t *Tiered) Delete(ctx context.Context, collection string) error {
	var errs []error

	for _, tier := range t.tiers {
		if err := tier.Delete(ctx, collection); err != nil {
			logger.Warn("Storage: Уровень не удалил коллекцию",
				zap.String("collection", collection),
				zap.Error(err))
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// ClearAll вычищает все именованные коллекции на всех уровнях
func (t *Tiered) ClearAll(ctx context.Context, collections []string) error {
	var errs []error

	for _, collection := range collections {
		if err := t.Delete(ctx, collection); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (t *Tiered) Close() error {
	var errs []error
	for _, tier := range t.tiers {
		if err := tier.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
