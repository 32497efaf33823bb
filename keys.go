package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/hoisie/redis"
)

type KeySourceError struct {
	source string
	err    error
}

func (e KeySourceError) Error() string {
	return fmt.Sprintf("read keys from %s failed: %v", e.source, e.err)
}

func (e KeySourceError) Unwrap() error {
	return e.err
}

type KeySource interface {
	Name() string
	Keys() ([]string, error)
}

/*
Keys merges the key file with the optional redis set. A source that fails
is logged and skipped so the remaining ones still produce a tree.
*/
type Keys struct {
	sources []KeySource
}

func NewKeys(ks KeysSettings, rs RedisSettings) *Keys {
	keys := &Keys{}
	if ks.KeysFile != "" {
		keys.sources = append(keys.sources, &FileKeys{file: ks.KeysFile, domain: ks.Domain})
	}

	if ks.RedisEnable {
		rc := &redis.Client{Addr: rs.Addr(), Db: rs.DB, Password: rs.Password}
		keys.sources = append(keys.sources, &RedisKeys{redis: rc, key: ks.RedisKey, domain: ks.Domain})
	}
	return keys
}

func (k *Keys) All() ([]string, error) {
	seen := make(map[string]bool)
	var all []string
	var errs []error

	for _, source := range k.sources {
		keys, err := source.Keys()
		if err != nil {
			logger.Warn("%s", err)
			errs = append(errs, err)
			continue
		}
		logger.Debug("read %d keys from %s", len(keys), source.Name())

		for _, key := range keys {
			if seen[key] {
				continue
			}
			seen[key] = true
			all = append(all, key)
		}
	}

	if len(errs) > 0 && len(errs) == len(k.sources) {
		return nil, errs[0]
	}
	sort.Strings(all)
	return all, nil
}

type FileKeys struct {
	file   string
	domain bool
}

func (f *FileKeys) Name() string {
	return f.file
}

/*
One key per line. Blank lines and lines starting with # are skipped.
In domain mode every key must be a domain name and is stored lower-cased
without the trailing dot.
*/
func (f *FileKeys) Keys() ([]string, error) {
	buf, err := os.Open(f.file)
	if err != nil {
		return nil, KeySourceError{f.file, err}
	}
	defer buf.Close()

	var keys []string
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "#") || line == "" {
			continue
		}

		key, ok := normalizeKey(line, f.domain)
		if !ok {
			logger.Debug("skip invalid domain key %s in %s", line, f.file)
			continue
		}
		keys = append(keys, key)
	}

	if err := scanner.Err(); err != nil {
		return nil, KeySourceError{f.file, err}
	}
	return keys, nil
}

type RedisKeys struct {
	redis  *redis.Client
	key    string
	domain bool
}

func (r *RedisKeys) Name() string {
	return "redis set " + r.key
}

func (r *RedisKeys) Keys() ([]string, error) {
	members, err := r.redis.Smembers(r.key)
	if err != nil {
		return nil, KeySourceError{r.Name(), err}
	}

	keys := make([]string, 0, len(members))
	for _, m := range members {
		key, ok := normalizeKey(string(m), r.domain)
		if !ok {
			continue
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func normalizeKey(key string, domain bool) (string, bool) {
	if !domain {
		return key, true
	}
	key = strings.ToLower(UnFqdn(key))
	if !isDomain(key) {
		return "", false
	}
	return key, true
}
