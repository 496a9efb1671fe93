/*
Package docboost provides typed, null-aware access to the entries of ordered,
key-repeating documents. The documents wrap a multimap.Map, which keeps its
entries in insertion order and allows the same key more than once, the way
many message and configuration formats do.

Entries are the unit of access. An entry names one key of a document and
converts its value to a Go type on every read and write:

	doc := docboost.New()

	port := doc.IntEntry("port")
	if err := port.PutConverted("8080"); err != nil {
		// handle error
	}
	n, err := port.Val() // 8080

	timeout, err := doc.IntEntry("timeout").ValOrDefault(30) // 30, key absent

There are three kinds of entry:

 1. Entry reads and writes the first occurrence of a key.
 2. CollectionEntry reads the first occurrence of a key as a list. A stored
    scalar reads as a one-element list.
 3. SplitEntry treats every occurrence of a key as one element of a list,
    so a document holding "tag" three times yields a three-element list.

Reads distinguish a missing key (an InexistentEntryError) from a key holding
null. What a null yields is chosen by the caller with NullValHandling:

	name, err := doc.StringEntry("name").ValOr("anonymous", docboost.Fail)

Nested documents are entries too. DocEntry returns a Document that shares
storage with its parent, so changes through it show up in the parent:

	sub, err := doc.DocEntry("server").Val()
	if err != nil {
		// handle error
	}
	err = sub.StringEntry("host").Put("localhost")

Documents can be parsed from and written to MAML, JSON and YAML. All three
codecs keep entry order and repeated keys:

	parsed, err := docboost.ParseMAML([]byte(`{ tag: "a", tag: "b" }`))
	if err != nil {
		// handle error
	}
	tags, err := parsed.StringsSplitEntry("tag").Val() // [a b]

	out, err := parsed.MarshalMAML(docboost.Indent(2))

A Factory holds the converter registry, logger and storage constructor that
its documents share. The package-level functions use Default.
*/
package docboost
