package main

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMemoryCache(t *testing.T) {
	Convey("Memory cache should store depths", t, func() {
		cache := &MemoryCache{
			Backend:  make(map[string]Mesg),
			Expire:   time.Minute,
			Maxcount: 2,
		}

		So(cache.Set("banana", 3), ShouldBeNil)
		So(cache.Set("ban", -1), ShouldBeNil)

		depth, err := cache.Get("banana")
		So(err, ShouldBeNil)
		So(depth, ShouldEqual, 3)

		depth, err = cache.Get("ban")
		So(err, ShouldBeNil)
		So(depth, ShouldEqual, -1)

		Convey("a full cache should refuse new keys but update old ones", func() {
			So(cache.Full(), ShouldBeTrue)
			So(cache.Set("apple", 1), ShouldHaveSameTypeAs, CacheIsFull{})
			So(cache.Set("banana", 4), ShouldBeNil)
		})

		Convey("removed keys should not be found", func() {
			So(cache.Remove("banana"), ShouldBeNil)
			So(cache.Exists("banana"), ShouldBeFalse)
			_, err := cache.Get("banana")
			So(err, ShouldHaveSameTypeAs, KeyNotFound{})
		})
	})

	Convey("Expired entries should be dropped", t, func() {
		cache := &MemoryCache{
			Backend: make(map[string]Mesg),
			Expire:  -time.Second,
		}
		So(cache.Set("banana", 3), ShouldBeNil)
		_, err := cache.Get("banana")
		So(err, ShouldHaveSameTypeAs, KeyExpired{})
		So(cache.Exists("banana"), ShouldBeFalse)
	})
}

func TestKeyGen(t *testing.T) {
	Convey("Keys should differ across generations", t, func() {
		So(KeyGen(1, "banana"), ShouldEqual, KeyGen(1, "banana"))
		So(KeyGen(1, "banana"), ShouldNotEqual, KeyGen(2, "banana"))
		So(KeyGen(1, "banana"), ShouldHaveLength, 32)
	})
}

func TestDepthPacking(t *testing.T) {
	Convey("Packed depths should unpack unchanged", t, func() {
		for _, depth := range []int{-1, 0, 7} {
			got, err := unpackDepth(packDepth(depth))
			So(err, ShouldBeNil)
			So(got, ShouldEqual, depth)
		}

		_, err := unpackDepth([]byte("nil"))
		So(err, ShouldHaveSameTypeAs, SerializerError{})
	})
}

func TestNewCache(t *testing.T) {
	Convey("Unknown cache backends should be rejected", t, func() {
		_, err := NewCache(CacheSettings{Backend: "disk"}, RedisSettings{}, MemcacheSettings{})
		So(err, ShouldNotBeNil)

		cache, err := NewCache(CacheSettings{Backend: "memory", Expire: 60}, RedisSettings{}, MemcacheSettings{})
		So(err, ShouldBeNil)
		So(cache, ShouldHaveSameTypeAs, &MemoryCache{})
	})
}
