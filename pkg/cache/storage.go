package cache

import (
	"github.com/xh3b4sd/redigo"
	"github.com/xh3b4sd/tracer"
)

// Storage is the key value surface the cache needs from redis.
type Storage interface {
	Create(key string, value string) error
	Delete(key string) error
	Exists(key string) (bool, error)
	Search(key string) (string, error)
}

type RedigoStorage struct {
	redigo redigo.Interface
}

func NewRedigoStorage(r redigo.Interface) *RedigoStorage {
	return &RedigoStorage{redigo: r}
}

func (s *RedigoStorage) Create(key string, value string) error {
	err := s.redigo.Simple().Create().Element(key, value)
	if err != nil {
		return tracer.Mask(err)
	}

	return nil
}

func (s *RedigoStorage) Delete(key string) error {
	err := s.redigo.Simple().Delete().Element(key)
	if err != nil {
		return tracer.Mask(err)
	}

	return nil
}

func (s *RedigoStorage) Exists(key string) (bool, error) {
	ok, err := s.redigo.Simple().Exists().Element(key)
	if err != nil {
		return false, tracer.Mask(err)
	}

	return ok, nil
}

func (s *RedigoStorage) Search(key string) (string, error) {
	v, err := s.redigo.Simple().Search().Value(key)
	if err != nil {
		return "", tracer.Mask(err)
	}

	return v, nil
}
