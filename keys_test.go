package main

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func writeKeysFile(t testing.TB, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "keys.txt")
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return file
}

func TestFileKeys(t *testing.T) {
	file := writeKeysFile(t, `
# fruits
banana
  apple
banana

Www.Google.COM.
1.1.1.1
`)

	Convey("Plain key files should keep every line", t, func() {
		keys, err := (&FileKeys{file: file}).Keys()
		So(err, ShouldBeNil)
		So(keys, ShouldResemble, []string{"banana", "apple", "banana", "Www.Google.COM.", "1.1.1.1"})
	})

	Convey("Domain key files should keep normalized domains only", t, func() {
		keys, err := (&FileKeys{file: file, domain: true}).Keys()
		So(err, ShouldBeNil)
		So(keys, ShouldResemble, []string{"www.google.com"})
	})

	Convey("Missing key files should fail", t, func() {
		_, err := (&FileKeys{file: filepath.Join(t.TempDir(), "missing")}).Keys()
		So(err, ShouldHaveSameTypeAs, KeySourceError{})
	})
}

func TestKeysAll(t *testing.T) {
	first := writeKeysFile(t, "banana\napple\n")
	second := writeKeysFile(t, "cherry\nbanana\n")

	Convey("Keys from every source should be merged once", t, func() {
		keys := &Keys{sources: []KeySource{&FileKeys{file: first}, &FileKeys{file: second}}}
		all, err := keys.All()
		So(err, ShouldBeNil)
		So(all, ShouldResemble, []string{"apple", "banana", "cherry"})
	})

	Convey("A failing source should be skipped while another works", t, func() {
		keys := &Keys{sources: []KeySource{&FileKeys{file: first}, &FileKeys{file: first + ".missing"}}}
		all, err := keys.All()
		So(err, ShouldBeNil)
		So(all, ShouldResemble, []string{"apple", "banana"})
	})

	Convey("All sources failing should be an error", t, func() {
		keys := &Keys{sources: []KeySource{&FileKeys{file: first + ".missing"}}}
		_, err := keys.All()
		So(err, ShouldNotBeNil)
	})

	Convey("No sources should give no keys", t, func() {
		all, err := NewKeys(KeysSettings{}, RedisSettings{}).All()
		So(err, ShouldBeNil)
		So(all, ShouldBeEmpty)
	})
}
