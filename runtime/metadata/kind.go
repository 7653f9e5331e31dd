package metadata

// DefaultFunc produces a kind's default value. It is invoked on every lookup
// that finds no override binding, so implementations must be cheap and must
// not return shared mutable state they care about.
type DefaultFunc func() interface{}

// Kind is a named metadata category with one default expression and an
// independent per-(record, field) override table. Kinds are created once
// during the load phase and never change afterwards.
type Kind struct {
	Name    string
	Default DefaultFunc
}
