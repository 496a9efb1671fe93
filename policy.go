package docboost

// NullValHandling selects what an accessor does when the entry exists but
// holds null.
type NullValHandling int

const (
	// ReturnNull reports the null value (the zero value of the entry type).
	ReturnNull NullValHandling = iota
	// ReturnDefault reports the caller's default instead.
	ReturnDefault
	// Fail returns an UnexpectedValueError.
	Fail
)

func (h NullValHandling) String() string {
	switch h {
	case ReturnNull:
		return "ReturnNull"
	case ReturnDefault:
		return "ReturnDefault"
	case Fail:
		return "Fail"
	}
	return "NullValHandling(invalid)"
}

func (h NullValHandling) valid() bool { return h >= ReturnNull && h <= Fail }

// RemoveOption selects what Remove does when the entry does not exist.
type RemoveOption int

const (
	// Strict fails with an InexistentEntryError.
	Strict RemoveOption = iota
	// Lenient does nothing.
	Lenient
)

func (o RemoveOption) valid() bool { return o == Strict || o == Lenient }

// NormaliseOption selects whether values are normalised on the way in and
// out of a document. See Document for what normalisation does.
type NormaliseOption int

const (
	Normalise NormaliseOption = iota
	DontNormalise
)

func (o NormaliseOption) valid() bool { return o == Normalise || o == DontNormalise }
