package main

import (
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestIndexRebuild(t *testing.T) {
	file := writeKeysFile(t, "banana\ncar\ncarpet\n")
	keys := &Keys{sources: []KeySource{&FileKeys{file: file}}}

	Convey("An index should start empty", t, func() {
		idx := NewIndex(keys, TreeSettings{})
		tree, gen := idx.Current()
		So(gen, ShouldEqual, uint64(0))
		So(tree.NodeCount(), ShouldEqual, 1)
		So(idx.Lookup("banana"), ShouldEqual, -1)
	})

	Convey("A rebuild should publish a new generation", t, func() {
		idx := NewIndex(keys, TreeSettings{Compressed: true})
		So(idx.Rebuild(), ShouldBeNil)

		tree, gen := idx.Current()
		So(gen, ShouldEqual, uint64(1))
		So(tree.Compressed(), ShouldBeTrue)
		So(idx.Lookup("banana"), ShouldEqual, 1)
		So(idx.Lookup("carpet"), ShouldEqual, 2)
		So(idx.Lookup("nana"), ShouldEqual, -1)

		So(idx.Rebuild(), ShouldBeNil)
		_, gen = idx.Current()
		So(gen, ShouldEqual, uint64(1))
	})

	Convey("Only a changed key set should publish a new tree", t, func() {
		changing := writeKeysFile(t, "banana\n")
		idx := NewIndex(&Keys{sources: []KeySource{&FileKeys{file: changing}}}, TreeSettings{})

		var published []uint64
		idx.OnPublish(func(gen uint64) { published = append(published, gen) })

		So(idx.Rebuild(), ShouldBeNil)
		So(idx.Rebuild(), ShouldBeNil)
		So(published, ShouldResemble, []uint64{1})

		So(os.WriteFile(changing, []byte("banana\ncherry\n"), 0644), ShouldBeNil)
		So(idx.Rebuild(), ShouldBeNil)
		So(published, ShouldResemble, []uint64{1, 2})
		So(idx.Lookup("cherry"), ShouldEqual, 6)
	})

	Convey("A suffix index should find suffixes", t, func() {
		idx := NewIndex(keys, TreeSettings{Suffix: true})
		So(idx.Rebuild(), ShouldBeNil)
		So(idx.Lookup("nana"), ShouldEqual, 4)
		So(idx.Lookup("pet"), ShouldEqual, 3)
		So(idx.Lookup("carp"), ShouldEqual, -1)
	})

	Convey("A failed rebuild should keep the old tree", t, func() {
		idx := NewIndex(keys, TreeSettings{})
		So(idx.Rebuild(), ShouldBeNil)

		idx.keys = &Keys{sources: []KeySource{&FileKeys{file: file + ".missing"}}}
		So(idx.Rebuild(), ShouldNotBeNil)

		_, gen := idx.Current()
		So(gen, ShouldEqual, uint64(1))
		So(idx.Lookup("car"), ShouldEqual, 3)
	})
}
