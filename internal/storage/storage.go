// Package storage — хранилище именованных коллекций. Каждая коллекция
// держит ровно одно JSON-значение (объект или массив) под фиксированным
// именем; интерпретация байтов — забота репозиториев.
package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("коллекция не найдена")

type Store interface {
	Get(ctx context.Context, collection string) ([]byte, error)
	Put(ctx context.Context, collection string, value []byte) error
	Delete(ctx context.Context, collection string) error
	Close() error
}
